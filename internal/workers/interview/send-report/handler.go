// internal/workers/interview/send-report/handler.go
package sendreport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsclient "interview-workers/internal/common/aws"
	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	TaskType = "send-interview-report"

	channelEmail = "email"
	channelEvent = "event"
)

type Handler struct {
	config *Config
	ses    awsclient.SESService
	sns    awsclient.SNSService
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

// NewHandler builds the handler. A nil service disables its channel
// regardless of config.
func NewHandler(config *Config, ses awsclient.SESService, sns awsclient.SNSService, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		ses:    ses,
		sns:    sns,
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
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		bpmnErr := h.errors.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
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

func (h *Handler) emailEnabled() bool { return h.config.SESEnabled && h.ses != nil }
func (h *Handler) eventEnabled() bool { return h.config.SNSEnabled && h.sns != nil }

// Execute e-mails the report to the candidate and publishes the completion
// event concurrently. The first failure cancels the other channel.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if result := validation.ValidateStruct(input); !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Error())
	}
	if h.emailEnabled() && !validation.ValidateEmail(input.CandidateEmail) {
		return nil, apperrors.NewInvalidInputError("candidateEmail: required when e-mail delivery is enabled")
	}

	now := time.Now().UTC()
	output := &Output{
		NotificationID: uuid.New().String(),
		SessionID:      input.SessionID,
		EmailStatus:    StatusDisabled,
		EventStatus:    StatusDisabled,
		SentAt:         now.Format(time.RFC3339),
	}

	g, gctx := errgroup.WithContext(ctx)

	if h.emailEnabled() {
		g.Go(func() error {
			id, err := awsclient.SendEmail(gctx, h.ses, awsclient.Email{
				From:    h.config.FromEmail,
				To:      []string{input.CandidateEmail},
				Subject: h.config.Subject,
				Text:    input.ReportText,
			})
			if err != nil {
				metrics.ReportDeliveries.WithLabelValues(channelEmail, "failed").Inc()
				return apperrors.NewNotificationSendFailedError(channelEmail, err)
			}
			metrics.ReportDeliveries.WithLabelValues(channelEmail, StatusSent).Inc()
			output.EmailStatus = StatusSent
			output.EmailMessageID = id
			return nil
		})
	}

	if h.eventEnabled() {
		g.Go(func() error {
			id, err := awsclient.Publish(gctx, h.sns, awsclient.Event{
				TopicARN:  h.config.TopicARN,
				EventType: EventReportCompleted,
				Payload: CompletedEvent{
					NotificationID:    output.NotificationID,
					SessionID:         input.SessionID,
					ReportID:          input.ReportID,
					Domain:            input.Domain,
					PerformanceLevel:  input.PerformanceLevel,
					AverageScore:      input.AverageScore,
					ConfidencePercent: input.ConfidencePercent,
					ReportKey:         input.ReportKey,
					OccurredAt:        output.SentAt,
				},
			})
			if err != nil {
				metrics.ReportDeliveries.WithLabelValues(channelEvent, "failed").Inc()
				return apperrors.NewNotificationSendFailedError(channelEvent, err)
			}
			metrics.ReportDeliveries.WithLabelValues(channelEvent, StatusSent).Inc()
			output.EventStatus = StatusSent
			output.EventMessageID = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if output.EmailStatus == StatusDisabled && output.EventStatus == StatusDisabled {
		h.logger.Warn("no notification channel enabled", map[string]interface{}{
			"sessionId": input.SessionID,
		})
	}

	h.logger.Info("report notification processed", map[string]interface{}{
		"notificationId": output.NotificationID,
		"sessionId":      input.SessionID,
		"emailStatus":    output.EmailStatus,
		"eventStatus":    output.EventStatus,
	})
	return output, nil
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
