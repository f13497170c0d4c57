// internal/workers/interview/select-questions/config.go
package selectquestions

import "time"

type Config struct {
	QuestionBankPath string
	Domains          []string
	CacheTTL         time.Duration
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Domains:  []string{"IT", "HR", "Marketing"},
		CacheTTL: 5 * time.Minute,
		Timeout:  10 * time.Second,
	}
}
