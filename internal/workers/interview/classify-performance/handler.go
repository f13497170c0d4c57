// internal/workers/interview/classify-performance/handler.go
package classifyperformance

import (
	"context"
	"fmt"
	"math"

	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/validation"
	"interview-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "classify-interview-performance"

var schema = validation.MustCompileSchema(inputSchema)

type Handler struct {
	config *Config
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Bands.Validate(); err != nil {
		return nil, fmt.Errorf("performance bands: %w", err)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		logger: log,
		errors: apperrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	done := metrics.TrackJob(TaskType)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if result := validation.Decode(schema, job.Variables, &input); !result.Valid {
		bpmnErr := h.errors.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(result.Error()))
		done(bpmnErr.Code)
		return
	}

	output := h.Execute(ctx, &input)
	h.completeJob(ctx, client, job, output)
	done("")
}

// Execute averages the session's answer totals and classifies the result.
// A session without answers is a Beginner with zero confidence.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	var sum float64
	for _, s := range input.TotalScores {
		sum += s
	}

	var avg float64
	if n := len(input.TotalScores); n > 0 {
		avg = scoring.Round2(sum / float64(n))
	}

	level := h.config.Bands.Classify(avg)
	metrics.PerformanceLevels.WithLabelValues(string(level)).Inc()

	output := &Output{
		SessionID:         input.SessionID,
		AnswerCount:       len(input.TotalScores),
		AverageScore:      avg,
		ConfidencePercent: ConfidencePercent(avg),
		PerformanceLevel:  string(level),
	}

	h.logger.Info("performance classified", map[string]interface{}{
		"sessionId":  input.SessionID,
		"average":    avg,
		"level":      output.PerformanceLevel,
		"confidence": output.ConfidencePercent,
	})
	return output
}

// ConfidencePercent converts a 0-10 average into a 0-100 percentage.
func ConfidencePercent(avg float64) int {
	pct := int(math.Round(avg * 10))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
