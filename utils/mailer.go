package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender is the slice of the SES client SESMailer needs.
type EmailSender interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends plain-text mail from one verified address.
type SESMailer struct {
	client EmailSender
	from   string
}

func NewSESMailer(client EmailSender, from string) (*SESMailer, error) {
	if client == nil || from == "" {
		return nil, errors.New("ses: client and sender address are required")
	}
	return &SESMailer{client: client, from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendWelcome greets a newly registered user.
func (m *SESMailer) SendWelcome(ctx context.Context, to, username string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log meals and workouts to see your daily progress.", username)
	return m.Send(ctx, to, "Welcome to FitTrack", body)
}
