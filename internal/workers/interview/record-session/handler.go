// internal/workers/interview/record-session/handler.go
package recordsession

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
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
	"github.com/lib/pq"
)

const (
	TaskType = "record-interview-session"

	pqUniqueViolation = "23505"
)

const (
	sessionExistsQuery = `SELECT EXISTS(SELECT 1 FROM interview_sessions WHERE session_id = $1)`

	insertSessionQuery = `
		INSERT INTO interview_sessions
			(session_id, candidate_name, candidate_email, domain, resume_skills,
			 average_score, confidence_percent, performance_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	insertAnswerQuery = `
		INSERT INTO interview_answers
			(id, session_id, question_index, question_text, answer_text, answer_mode,
			 response_time_seconds, relevance, clarity, grammar, confidence,
			 response_time_score, resume_alignment, total_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	insertAuditQuery = `
		INSERT INTO interview_audit_log (id, session_id, event_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
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

// Execute stores the session, its answers and an audit row in one transaction.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if result := validation.ValidateStruct(input); !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Error())
	}

	skills, err := json.Marshal(nonNil(input.ResumeSkills))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewDatabaseConnectionFailedError(err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, sessionExistsQuery, input.SessionID).Scan(&exists); err != nil {
		return nil, apperrors.NewDatabaseConnectionFailedError(err)
	}
	if exists {
		return nil, apperrors.NewDuplicateSessionError(input.SessionID)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, insertSessionQuery,
		input.SessionID, input.CandidateName, input.CandidateEmail, input.Domain, string(skills),
		input.AverageScore, input.ConfidencePercent, input.PerformanceLevel, now,
	); err != nil {
		return nil, h.insertError(database.TableSessions, input.SessionID, err)
	}

	for _, a := range input.Answers {
		mode := a.AnswerMode
		if mode == "" {
			mode = "text"
		}
		if _, err := tx.ExecContext(ctx, insertAnswerQuery,
			uuid.New().String(), input.SessionID, a.QuestionIndex, a.QuestionText, a.AnswerText, mode,
			a.ResponseTimeSeconds, a.Scores.Relevance, a.Scores.Clarity, a.Scores.Grammar, a.Scores.Confidence,
			a.Scores.ResponseTime, a.Scores.ResumeAlignment, a.Scores.TotalScore,
		); err != nil {
			return nil, h.insertError(database.TableAnswers, input.SessionID, err)
		}
	}

	details, err := json.Marshal(map[string]interface{}{
		"answerCount":      len(input.Answers),
		"performanceLevel": input.PerformanceLevel,
		"averageScore":     input.AverageScore,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	auditID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, insertAuditQuery,
		auditID, input.SessionID, "session_recorded", string(details), now,
	); err != nil {
		return nil, h.insertError(database.TableAuditLog, input.SessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewDatabaseInsertFailedError(database.TableSessions, err)
	}

	h.logger.Info("interview session recorded", map[string]interface{}{
		"sessionId":   input.SessionID,
		"answerCount": len(input.Answers),
	})

	return &Output{
		SessionID:   input.SessionID,
		AnswerCount: len(input.Answers),
		AuditID:     auditID,
		RecordedAt:  now.Format(time.RFC3339),
	}, nil
}

// insertError maps unique violations to DUPLICATE_SESSION; anything else is
// a retryable insert failure.
func (h *Handler) insertError(table, sessionID string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return apperrors.NewDuplicateSessionError(sessionID)
	}
	return apperrors.NewDatabaseInsertFailedError(table, err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
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
