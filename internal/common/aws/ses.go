// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the subset of the SES client used by the workers.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LoadConfig loads the default AWS credential chain for region.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

func NewSESClient(cfg aws.Config) *ses.Client {
	return ses.NewFromConfig(cfg)
}

// Email is a plain-text message with an optional HTML body.
type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

// SendEmailInput builds the SES request for e.
func (e Email) SendEmailInput() *ses.SendEmailInput {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(e.Text), Charset: aws.String("UTF-8")},
	}
	if e.HTML != "" {
		body.Html = &types.Content{Data: aws.String(e.HTML), Charset: aws.String("UTF-8")}
	}

	return &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: e.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
		Source: aws.String(e.From),
	}
}

// SendEmail sends e and returns the SES message id.
func SendEmail(ctx context.Context, svc SESService, e Email) (string, error) {
	out, err := svc.SendEmail(ctx, e.SendEmailInput())
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
