// internal/workers/interview/classify-performance/handler_test.go
package classifyperformance

import (
	"context"
	"testing"

	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/scoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name       string
		scores     []float64
		average    float64
		confidence int
		level      scoring.Level
	}{
		{"no answers", nil, 0, 0, scoring.LevelBeginner},
		{"single beginner", []float64{3.99}, 3.99, 40, scoring.LevelBeginner},
		{"boundary intermediate", []float64{4, 4}, 4, 40, scoring.LevelIntermediate},
		{"mixed session", []float64{4.65, 7.2, 8.1, 4.05}, 6, 60, scoring.LevelIntermediate},
		{"advanced", []float64{7, 7.5}, 7.25, 73, scoring.LevelAdvanced},
		{"perfect", []float64{10, 10, 10, 10}, 10, 100, scoring.LevelAdvanced},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := h.Execute(context.Background(), &Input{SessionID: "s-1", TotalScores: tt.scores})
			assert.Equal(t, "s-1", output.SessionID)
			assert.Equal(t, len(tt.scores), output.AnswerCount)
			assert.InDelta(t, tt.average, output.AverageScore, 0.001)
			assert.Equal(t, tt.confidence, output.ConfidencePercent)
			assert.Equal(t, string(tt.level), output.PerformanceLevel)
		})
	}
}

func TestHandler_Execute_CountsLevels(t *testing.T) {
	h := newTestHandler(t)
	before := testutil.ToFloat64(metrics.PerformanceLevels.WithLabelValues("Advanced"))

	h.Execute(context.Background(), &Input{SessionID: "s-2", TotalScores: []float64{9}})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PerformanceLevels.WithLabelValues("Advanced")))
}

func TestConfidencePercent_Clamps(t *testing.T) {
	assert.Equal(t, 0, ConfidencePercent(-2))
	assert.Equal(t, 78, ConfidencePercent(7.8))
	assert.Equal(t, 100, ConfidencePercent(12))
}

func TestNewHandler_RejectsBadBands(t *testing.T) {
	cfg := LoadConfig()
	cfg.Bands = scoring.Bands{{Level: "Low", Min: 0, Max: 3}, {Level: "High", Min: 5, Max: 10}}

	_, err := NewHandler(cfg, logger.NewTestLogger(t))
	assert.ErrorIs(t, err, scoring.ErrInvalidBands)
}

func TestInputSchema(t *testing.T) {
	assert.True(t, schema.ValidateJSON(`{"sessionId":"s","totalScores":[1.5,7]}`).Valid)
	assert.True(t, schema.ValidateJSON(`{"sessionId":"s","totalScores":[]}`).Valid)
	assert.False(t, schema.ValidateJSON(`{"sessionId":"s"}`).Valid)
	assert.False(t, schema.ValidateJSON(`{"sessionId":"s","totalScores":["7"]}`).Valid)
}
