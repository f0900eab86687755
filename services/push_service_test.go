package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct{ in *awssns.PublishInput }

func (f *fakeSNS) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	f.in = in
	return &awssns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestPushService_PublishesToTopicWithUserAttribute(t *testing.T) {
	client := &fakeSNS{}
	p, err := NewPushService(client, "arn:aws:sns:ap-south-1:123:alerts")
	require.NoError(t, err)

	require.NoError(t, p.PushToUser(context.Background(), "user-1", "New Alert", "Daily protein goal reached", map[string]string{"type": "goal"}))

	assert.Equal(t, "arn:aws:sns:ap-south-1:123:alerts", aws.ToString(client.in.TopicArn))
	assert.Equal(t, "json", aws.ToString(client.in.MessageStructure))
	assert.Equal(t, "user-1", aws.ToString(client.in.MessageAttributes["userId"].StringValue))

	var msg map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.in.Message)), &msg))
	assert.Equal(t, "Daily protein goal reached", msg["default"])
	assert.Contains(t, msg["GCM"], `"type":"goal"`)

	_, err = NewPushService(client, "")
	assert.Error(t, err)
	_, err = NewPushService(nil, "arn")
	assert.Error(t, err)
}
