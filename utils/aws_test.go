package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png"))

func TestParseDataURI(t *testing.T) {
	ct, data, err := ParseDataURI(pngURI)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte("fake-png"), data)

	for _, bad := range []string{
		"",
		"no-comma",
		"data:image/png,plain",
		"data:text/plain;base64,aGk=",
		"data:image/png;base64,!!!",
	} {
		_, _, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestImageUploader(t *testing.T) {
	client := &fakeS3{}
	up, err := NewImageUploader(client, "bucket", "https://cdn.example.com/", "ap-south-1")
	require.NoError(t, err)
	up.now = func() time.Time { return time.Unix(0, 42) }

	url, err := up.UploadDataURI(context.Background(), pngURI, "profile-pictures/user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profile-pictures/user-1-42.png", url)
	assert.Equal(t, "bucket", aws.ToString(client.in.Bucket))
	assert.Equal(t, "image/png", aws.ToString(client.in.ContentType))
	assert.Equal(t, []byte("fake-png"), client.body)

	client.err = errors.New("denied")
	_, err = up.UploadDataURI(context.Background(), pngURI, "x")
	assert.Error(t, err)

	_, err = up.UploadDataURI(context.Background(), "garbage", "x")
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	_, err = NewImageUploader(client, "", "", "")
	assert.Error(t, err)
}

func TestImageUploader_DefaultURL(t *testing.T) {
	up, err := NewImageUploader(&fakeS3{}, "pics", "", "eu-west-1")
	require.NoError(t, err)
	url, err := up.UploadDataURI(context.Background(), pngURI, "p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://pics.s3.eu-west-1.amazonaws.com/p-"))
}

type fakeSES struct{ in *ses.SendEmailInput }

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{}, nil
}

func TestSESMailer_SendWelcome(t *testing.T) {
	client := &fakeSES{}
	m, err := NewSESMailer(client, "noreply@fitness.app")
	require.NoError(t, err)

	require.NoError(t, m.SendWelcome(context.Background(), "alex@fitness.app", "alex"))
	assert.Equal(t, []string{"alex@fitness.app"}, client.in.Destination.ToAddresses)
	assert.Equal(t, "noreply@fitness.app", aws.ToString(client.in.Source))
	assert.Contains(t, aws.ToString(client.in.Message.Body.Text.Data), "Hi alex")

	_, err = NewSESMailer(client, "")
	assert.Error(t, err)
}

type fakeRekognition struct{ labels []string }

func (f *fakeRekognition) DetectLabels(_ context.Context, _ *rekognition.DetectLabelsInput, _ ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	out := &rekognition.DetectLabelsOutput{}
	for _, l := range f.labels {
		out.Labels = append(out.Labels, rektypes.Label{Name: aws.String(l)})
	}
	return out, nil
}

func TestRekognitionDetector_Labels(t *testing.T) {
	d := NewRekognitionDetector(&fakeRekognition{labels: []string{"Food", "Paneer"}})
	labels, err := d.Labels(context.Background(), pngURI)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Paneer"}, labels)

	_, err = d.Labels(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidDataURI)
}
