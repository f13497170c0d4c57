// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSService is the subset of the SNS client used by the workers.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewSNSClient(cfg aws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

// Event is a JSON payload published to a topic. EventType is also sent as a
// message attribute so subscribers can filter on it.
type Event struct {
	TopicARN  string
	EventType string
	Payload   interface{}
}

// PublishInput builds the SNS request for ev.
func (ev Event) PublishInput() (*sns.PublishInput, error) {
	body, err := json.Marshal(ev.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", ev.EventType, err)
	}

	return &sns.PublishInput{
		TopicArn: aws.String(ev.TopicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(ev.EventType),
			},
		},
	}, nil
}

// Publish sends ev and returns the SNS message id.
func Publish(ctx context.Context, svc SNSService, ev Event) (string, error) {
	input, err := ev.PublishInput()
	if err != nil {
		return "", err
	}
	out, err := svc.Publish(ctx, input)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
