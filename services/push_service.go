package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher is the slice of the SNS client PushService needs.
type SNSPublisher interface {
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

// PushService publishes user notifications to one SNS topic. Subscribers
// filter on the userId message attribute.
type PushService struct {
	sns      SNSPublisher
	topicARN string
}

func NewPushService(client SNSPublisher, topicARN string) (*PushService, error) {
	if client == nil {
		return nil, errors.New("push: nil SNS client")
	}
	if topicARN == "" {
		return nil, errors.New("push: SNS_TOPIC_ARN not set")
	}
	return &PushService{sns: client, topicARN: topicARN}, nil
}

// PushToUser publishes title/body with data as the GCM payload.
func (p *PushService) PushToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	gcm, err := json.Marshal(map[string]any{
		"notification": map[string]string{"title": title, "body": body},
		"data":         data,
	})
	if err != nil {
		return fmt.Errorf("push: encode: %w", err)
	}
	raw, err := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})
	if err != nil {
		return fmt.Errorf("push: encode: %w", err)
	}

	_, err = p.sns.Publish(ctx, &awssns.PublishInput{
		TopicArn:         aws.String(p.topicARN),
		MessageStructure: aws.String("json"),
		Message:          aws.String(string(raw)),
		Subject:          aws.String(title),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"userId": {DataType: aws.String("String"), StringValue: aws.String(userID)},
		},
	})
	if err != nil {
		return fmt.Errorf("push: publish: %w", err)
	}
	return nil
}
