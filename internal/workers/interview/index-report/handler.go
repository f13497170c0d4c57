// internal/workers/interview/index-report/handler.go
package indexreport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/metrics"
	"interview-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const TaskType = "index-interview-report"

var schema = validation.MustCompileSchema(inputSchema)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
	errors *apperrors.ErrorHandler
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		client: client,
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

// Execute upserts the report document under the session id, so re-indexing a
// session replaces its previous report.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	doc := Document{ReportSummary: input.Summary, ReportText: input.ReportText}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	req := esapi.IndexRequest{
		Index:      h.config.Index,
		DocumentID: input.Summary.SessionID,
		Body:       bytes.NewReader(body),
		Refresh:    strconv.FormatBool(h.config.Refresh),
	}

	res, err := req.Do(ctx, h.client)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("elasticsearch", err)
		}
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, h.responseError(res)
	}

	var indexed indexResponse
	if err := json.NewDecoder(res.Body).Decode(&indexed); err != nil {
		return nil, apperrors.NewIndexingFailedError(h.config.Index, fmt.Errorf("decode response: %w", err))
	}

	h.logger.Info("report indexed", map[string]interface{}{
		"sessionId": input.Summary.SessionID,
		"reportId":  input.Summary.ReportID,
		"index":     indexed.Index,
		"result":    indexed.Result,
		"version":   indexed.Version,
	})

	return &Output{
		SessionID:  input.Summary.SessionID,
		ReportID:   input.Summary.ReportID,
		Index:      indexed.Index,
		DocumentID: indexed.ID,
		Result:     indexed.Result,
		Version:    indexed.Version,
	}, nil
}

// responseError turns an Elasticsearch error response into a StandardError.
// Client errors other than 429 will not succeed on retry.
func (h *Handler) responseError(res *esapi.Response) error {
	var e errorResponse
	reason := res.Status()
	if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error.Reason != "" {
		reason = fmt.Sprintf("%s: %s", e.Error.Type, e.Error.Reason)
	}

	cause := fmt.Errorf("elasticsearch returned %d: %s", res.StatusCode, reason)
	if res.StatusCode >= 400 && res.StatusCode < 500 && res.StatusCode != http.StatusTooManyRequests {
		return apperrors.NewBusinessRuleError("Report document rejected by index", cause.Error()).
			WithMetadata("statusCode", res.StatusCode)
	}
	return apperrors.NewIndexingFailedError(h.config.Index, cause).WithMetadata("statusCode", res.StatusCode)
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
