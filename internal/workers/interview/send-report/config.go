// internal/workers/interview/send-report/config.go
package sendreport

import "time"

type Config struct {
	SESEnabled bool
	FromEmail  string
	Subject    string

	SNSEnabled bool
	TopicARN   string

	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Subject: "Your interview performance report",
		Timeout: 30 * time.Second,
	}
}
