// internal/workers/interview/select-questions/handler.go
package selectquestions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"interview-workers/internal/common/database"
	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/validation"
	"interview-workers/pkg/questionbank"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "select-interview-questions"

	cacheName = "questions"
)

var schema = validation.MustCompileSchema(inputSchema)

type Handler struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

// NewHandler builds the handler. redis may be nil to disable caching.
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

// Execute selects the scripted questions for the input's domain.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	domain, ok := h.canonicalDomain(input.Domain)
	if !ok {
		return nil, apperrors.NewInvalidDomainError(input.Domain, h.config.Domains)
	}

	cacheKey, err := h.cacheKey(domain, input.Limit)
	if err != nil {
		return nil, err
	}
	if h.redis != nil {
		var cached Output
		found, err := database.GetJSON(ctx, h.redis, cacheKey, &cached)
		if err != nil {
			h.logger.Warn("question cache read failed", map[string]interface{}{"error": err})
		}
		metrics.CacheResult(cacheName, found)
		if found {
			cached.SessionID = input.SessionID
			return &cached, nil
		}
	}

	bank, err := h.loadBank()
	if err != nil {
		return nil, err
	}

	questions := bank.Select(domain, input.Limit)
	if len(questions) == 0 {
		return nil, apperrors.NewQuestionBankUnavailableError(h.config.QuestionBankPath,
			fmt.Errorf("no questions for domain %s", domain))
	}

	output := &Output{
		SessionID:      input.SessionID,
		Domain:         domain,
		Questions:      questions,
		TotalQuestions: len(questions),
		BankVersion:    bank.Version,
	}

	if h.redis != nil {
		if err := database.SetJSON(ctx, h.redis, cacheKey, output, h.config.CacheTTL); err != nil {
			h.logger.Warn("question cache write failed", map[string]interface{}{"error": err})
		}
	}

	h.logger.Info("questions selected", map[string]interface{}{
		"sessionId": input.SessionID,
		"domain":    domain,
		"count":     len(questions),
	})
	return output, nil
}

// cacheKey scopes cached selections to the current bank file, so an edited
// or replaced bank is picked up without waiting for the TTL.
func (h *Handler) cacheKey(domain string, limit int) (string, error) {
	bankID := "default"
	if path := h.config.QuestionBankPath; path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", apperrors.NewQuestionBankUnavailableError(path, err)
		}
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d", path, info.ModTime().UnixNano(), info.Size())))
		bankID = hex.EncodeToString(sum[:6])
	}
	return fmt.Sprintf("interview:questions:%s:%s:%d", bankID, strings.ToLower(domain), limit), nil
}

func (h *Handler) loadBank() (*questionbank.Bank, error) {
	if h.config.QuestionBankPath == "" {
		return questionbank.Default(), nil
	}
	bank, err := questionbank.Load(h.config.QuestionBankPath)
	if err != nil {
		return nil, apperrors.NewQuestionBankUnavailableError(h.config.QuestionBankPath, err)
	}
	return bank, nil
}

// canonicalDomain matches domain against the configured list ignoring case
// and returns the configured spelling.
func (h *Handler) canonicalDomain(domain string) (string, bool) {
	domain = strings.TrimSpace(domain)
	for _, d := range h.config.Domains {
		if strings.EqualFold(d, domain) {
			return d, true
		}
	}
	return "", false
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
