// internal/workers/interview/build-report/handler.go
package buildreport

import (
	"context"
	"fmt"
	"time"

	"interview-workers/internal/common/database"
	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const TaskType = "build-interview-report"

var (
	schema       = validation.MustCompileSchema(inputSchema)
	outputSchema = validation.MustCompileSchema(summarySchema)
)

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

// NewHandler builds the handler. With a nil redis client reports are
// rendered but not stored for download.
func NewHandler(config *Config, redis *redis.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		redis:  redis,
		logger: log,
		errors: apperrors.NewErrorHandler(log),
	}
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

	output, err := h.Execute(ctx, &input)
	if err != nil {
		bpmnErr := h.errors.HandleJobError(ctx, client, job, err)
		done(bpmnErr.Code)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

// Execute renders the report, validates its summary and stores both under
// interview:report:<reportId>.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	reportID := uuid.New().String()
	now := time.Now().UTC()

	text, err := RenderText(h.config.Title, input)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("render report: %w", err))
	}

	summary := Summary{
		ReportID:          reportID,
		SessionID:         input.SessionID,
		CandidateName:     input.CandidateName,
		CandidateEmail:    input.CandidateEmail,
		Domain:            input.Domain,
		PerformanceLevel:  input.PerformanceLevel,
		AverageScore:      input.AverageScore,
		ConfidencePercent: input.ConfidencePercent,
		AnswerCount:       len(input.Answers),
		ResumeSkills:      input.ResumeSkills,
		CreatedAt:         now.Format(time.RFC3339),
	}
	if result := outputSchema.Validate(summary); !result.Valid {
		return nil, apperrors.NewReportValidationFailedError(result.Error())
	}

	output := &Output{
		ReportID:   reportID,
		SessionID:  input.SessionID,
		ReportText: text,
		Summary:    summary,
	}

	if h.redis != nil {
		key := ReportKey(reportID)
		if err := database.SetJSON(ctx, h.redis, key, output, h.config.ReportTTL); err != nil {
			return nil, apperrors.NewReportStoreFailedError(err)
		}
		output.ReportKey = key
		output.ExpiresAt = now.Add(h.config.ReportTTL).Format(time.RFC3339)
	} else {
		h.logger.Warn("report store not configured, report will not be downloadable", map[string]interface{}{
			"reportId": reportID,
		})
	}

	h.logger.Info("report built", map[string]interface{}{
		"reportId":    reportID,
		"sessionId":   input.SessionID,
		"answerCount": summary.AnswerCount,
		"level":       summary.PerformanceLevel,
	})
	return output, nil
}

// ReportKey is the Redis key a stored report is downloadable from.
func ReportKey(reportID string) string {
	return "interview:report:" + reportID
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
