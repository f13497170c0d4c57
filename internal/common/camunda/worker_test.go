// internal/common/camunda/worker_test.go
package camunda

import (
	"testing"

	"interview-workers/internal/common/config"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
)

func TestWorkerManager_RegisterDisabled(t *testing.T) {
	m := NewWorkerManager(nil, nil, logger.NewTestLogger(t))

	started := m.Register("score-interview-answer", config.WorkerConfig{Enabled: false}, func(worker.JobClient, entities.Job) {})

	assert.False(t, started)
	assert.Empty(t, m.TaskTypes())
}

func TestWorkerManager_NilLogger(t *testing.T) {
	m := NewWorkerManager(nil, nil, nil)

	assert.NotPanics(t, func() {
		m.Register("build-interview-report", config.WorkerConfig{Enabled: false}, func(worker.JobClient, entities.Job) {})
		m.Close()
	})
}

func TestWorkerManager_Instrument(t *testing.T) {
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, Type: "score-interview-answer"}}

	for name, obs := range map[string]*observability.Observability{
		"without observability": nil,
		"with observability":    observability.New("worker-manager-test"),
	} {
		t.Run(name, func(t *testing.T) {
			m := NewWorkerManager(nil, obs, logger.NewTestLogger(t))

			var seen []int64
			handler := m.instrument(job.Type, func(_ worker.JobClient, j entities.Job) {
				seen = append(seen, j.Key)
			})
			handler(nil, job)

			assert.Equal(t, []int64{42}, seen)
		})
	}
}
