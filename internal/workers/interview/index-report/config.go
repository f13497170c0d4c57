// internal/workers/interview/index-report/config.go
package indexreport

import "time"

type Config struct {
	Index   string
	Refresh bool
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "interview-reports",
		Timeout: 15 * time.Second,
	}
}
