// internal/workers/interview/classify-performance/config.go
package classifyperformance

import (
	"time"

	"interview-workers/internal/scoring"
)

type Config struct {
	Bands   scoring.Bands
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Bands:   scoring.DefaultBands(),
		Timeout: 5 * time.Second,
	}
}
