// internal/workers/interview/score-answer/handler.go
package scoreanswer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"interview-workers/internal/common/database"
	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/observability"
	"interview-workers/internal/common/validation"
	"interview-workers/internal/resume"
	"interview-workers/internal/scoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "score-interview-answer"

	cacheName = "scores"
)

var schema = validation.MustCompileSchema(inputSchema)

type Handler struct {
	config    *Config
	engine    *scoring.Engine
	redis     *redis.Client
	obs       *observability.Observability
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
	configKey string
}

// NewHandler validates the scoring config and builds the handler. redis and
// obs may be nil.
func NewHandler(config *Config, redis *redis.Client, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	engine, err := scoring.NewEngine(config.Scoring, resume.NewKeywordAligner())
	if err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}

	fingerprint, err := json.Marshal(config.Scoring)
	if err != nil {
		return nil, fmt.Errorf("fingerprint scoring config: %w", err)
	}
	sum := sha256.Sum256(fingerprint)

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		engine:    engine,
		redis:     redis,
		obs:       obs,
		logger:    log,
		errors:    apperrors.NewErrorHandler(log),
		configKey: hex.EncodeToString(sum[:4]),
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

	output, err := h.Execute(ctx, &input)
	if err != nil {
		bpmnErr := h.errors.HandleJobError(ctx, client, job, err)
		done(bpmnErr.Code)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

// Execute scores one answer, consulting the score cache first.
func (h *Handler) Execute(ctx context.Context, input *Input) (output *Output, err error) {
	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("sessionId", input.SessionID),
		attribute.Int("questionIndex", input.QuestionIndex),
	)
	defer func() { observability.EndSpan(span, err) }()

	mode := input.AnswerMode
	if mode == "" {
		mode = AnswerModeText
	}
	if mode != AnswerModeText && mode != AnswerModeVoice {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("answerMode must be text or voice, got %q", mode))
	}

	answer := input.AnswerText
	if mode == AnswerModeVoice && strings.TrimSpace(answer) == "" {
		answer = h.config.VoicePlaceholder
	}
	if h.config.MaxAnswerLength > 0 && utf8.RuneCountInString(answer) > h.config.MaxAnswerLength {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("answerText exceeds %d characters", h.config.MaxAnswerLength))
	}

	skills := resume.NormalizeSkills(input.ResumeSkills)
	key := h.cacheKey(input.QuestionText, answer, input.ResponseTimeSeconds, skills)

	var scores scoring.ScoreResult
	cached := false
	if h.redis != nil {
		found, cacheErr := database.GetJSON(ctx, h.redis, key, &scores)
		if cacheErr != nil {
			h.logger.Warn("score cache read failed", map[string]interface{}{"error": cacheErr})
		}
		metrics.CacheResult(cacheName, found)
		cached = found
	}

	if !cached {
		scores = h.engine.ScoreAnswer(answer, input.QuestionText, input.ResponseTimeSeconds, skills)
		if h.redis != nil {
			if cacheErr := database.SetJSON(ctx, h.redis, key, scores, h.config.CacheTTL); cacheErr != nil {
				h.logger.Warn("score cache write failed", map[string]interface{}{"error": cacheErr})
			}
		}
	}

	level := h.engine.Classify(scores.TotalScore)
	metrics.AnswerTotalScore.Observe(scores.TotalScore)
	h.obs.RecordAnswerScore(ctx, scores.TotalScore, mode)
	span.SetAttributes(attribute.Float64("totalScore", scores.TotalScore))

	h.logger.Info("answer scored", map[string]interface{}{
		"sessionId":     input.SessionID,
		"questionIndex": input.QuestionIndex,
		"totalScore":    scores.TotalScore,
		"cached":        cached,
	})

	return &Output{
		SessionID:     input.SessionID,
		QuestionIndex: input.QuestionIndex,
		AnswerText:    answer,
		AnswerMode:    mode,
		Scores:        scores,
		TotalScore:    scores.TotalScore,
		AnswerLevel:   string(level),
		MatchedSkills: resume.MatchedSkills(answer, skills),
		Cached:        cached,
	}, nil
}

// cacheKey hashes every input that affects the score together with the
// scoring config fingerprint.
func (h *Handler) cacheKey(question, answer string, responseTime float64, skills []string) string {
	sorted := append([]string(nil), skills...)
	sort.Strings(sorted)

	hash := sha256.New()
	fmt.Fprintf(hash, "%s\x00%s\x00%s\x00%g\x00%s", h.configKey, question, answer, responseTime, strings.Join(sorted, ","))
	return "interview:score:" + hex.EncodeToString(hash.Sum(nil))
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
