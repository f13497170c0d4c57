// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sort"
	"time"

	"interview-workers/internal/common/config"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// WorkerManager opens and tracks one job worker per task type.
type WorkerManager struct {
	client  zbc.Client
	obs     *observability.Observability
	logger  logger.Logger
	workers map[string]worker.JobWorker
}

// NewWorkerManager returns a manager for client. obs and log may be nil.
func NewWorkerManager(client zbc.Client, obs *observability.Observability, log logger.Logger) *WorkerManager {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &WorkerManager{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Register opens a job worker for taskType unless it is disabled. It reports
// whether a worker was started.
func (m *WorkerManager) Register(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return false
	}
	if _, exists := m.workers[taskType]; exists {
		m.logger.Warn("worker already registered", map[string]interface{}{"taskType": taskType})
		return false
	}

	m.workers[taskType] = m.client.NewJobWorker().
		JobType(taskType).
		Handler(m.instrument(taskType, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return true
}

// instrument records every handled job on the OpenTelemetry meter.
func (m *WorkerManager) instrument(taskType string, handler worker.JobHandler) worker.JobHandler {
	if m.obs == nil {
		return handler
	}
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler(client, job)

		ctx := context.Background()
		m.obs.RecordJobProcessed(ctx, taskType, "handled")
		m.obs.RecordJobDuration(ctx, taskType, time.Since(start), "handled")
	}
}

// TaskTypes lists the registered task types in sorted order.
func (m *WorkerManager) TaskTypes() []string {
	types := make([]string, 0, len(m.workers))
	for t := range m.workers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Close stops every worker and waits for in-flight jobs.
func (m *WorkerManager) Close() {
	for taskType, w := range m.workers {
		m.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
	}
}
