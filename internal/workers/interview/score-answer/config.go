// internal/workers/interview/score-answer/config.go
package scoreanswer

import (
	"time"

	"interview-workers/internal/scoring"
)

type Config struct {
	Scoring          scoring.Config
	VoicePlaceholder string
	MaxAnswerLength  int
	CacheTTL         time.Duration
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Scoring:          scoring.DefaultConfig(),
		VoicePlaceholder: "[Live voice response recorded]",
		MaxAnswerLength:  10000,
		CacheTTL:         time.Hour,
		Timeout:          10 * time.Second,
	}
}
