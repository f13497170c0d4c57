// internal/workers/interview/build-report/config.go
package buildreport

import "time"

const DefaultTitle = "AI Powered Interview Bot - Performance Report"

type Config struct {
	Title     string
	ReportTTL time.Duration
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Title:     DefaultTitle,
		ReportTTL: 7 * 24 * time.Hour,
		Timeout:   10 * time.Second,
	}
}
