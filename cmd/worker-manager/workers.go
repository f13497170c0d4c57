// cmd/worker-manager/workers.go
package main

import (
	"fmt"

	awsclient "interview-workers/internal/common/aws"
	"interview-workers/internal/common/camunda"
	"interview-workers/internal/common/config"
	"interview-workers/internal/common/database"
	"interview-workers/internal/common/logger"
	"interview-workers/internal/common/observability"

	br "interview-workers/internal/workers/interview/build-report"
	cp "interview-workers/internal/workers/interview/classify-performance"
	ir "interview-workers/internal/workers/interview/index-report"
	rs "interview-workers/internal/workers/interview/record-session"
	sa "interview-workers/internal/workers/interview/score-answer"
	sq "interview-workers/internal/workers/interview/select-questions"
	sr "interview-workers/internal/workers/interview/send-report"
)

// dependencies are the shared clients handed to the workers. ses and sns are
// nil when their integration is disabled.
type dependencies struct {
	postgres *database.PostgresClient
	redis    *database.RedisClient
	es       *database.ElasticsearchClient
	obs      *observability.Observability
	ses      awsclient.SESService
	sns      awsclient.SNSService
}

func registerWorkers(m *camunda.WorkerManager, cfg *config.Config, deps *dependencies, log logger.Logger) error {
	engineCfg, err := cfg.Scoring.EngineConfig()
	if err != nil {
		return fmt.Errorf("scoring config: %w", err)
	}
	interview := cfg.Interview
	rdb := deps.redis.GetClient()

	// --- select-interview-questions ---
	{
		wcfg := config.GetWorkerConfig(cfg, sq.TaskType)
		handler := sq.NewHandler(&sq.Config{
			QuestionBankPath: interview.QuestionBankPath,
			Domains:          interview.Domains,
			CacheTTL:         config.Seconds(interview.QuestionCacheTTL),
			Timeout:          config.GetDuration(wcfg.Timeout),
		}, rdb, log)
		m.Register(sq.TaskType, wcfg, handler.Handle)
	}

	// --- score-interview-answer ---
	{
		wcfg := config.GetWorkerConfig(cfg, sa.TaskType)
		handler, err := sa.NewHandler(&sa.Config{
			Scoring:          engineCfg,
			VoicePlaceholder: interview.VoicePlaceholder,
			MaxAnswerLength:  interview.MaxAnswerLength,
			CacheTTL:         config.Seconds(interview.ScoreCacheTTL),
			Timeout:          config.GetDuration(wcfg.Timeout),
		}, rdb, deps.obs, log)
		if err != nil {
			return fmt.Errorf("%s: %w", sa.TaskType, err)
		}
		m.Register(sa.TaskType, wcfg, handler.Handle)
	}

	// --- classify-interview-performance ---
	{
		wcfg := config.GetWorkerConfig(cfg, cp.TaskType)
		handler, err := cp.NewHandler(&cp.Config{
			Bands:   engineCfg.Bands,
			Timeout: config.GetDuration(wcfg.Timeout),
		}, log)
		if err != nil {
			return fmt.Errorf("%s: %w", cp.TaskType, err)
		}
		m.Register(cp.TaskType, wcfg, handler.Handle)
	}

	// --- record-interview-session ---
	{
		wcfg := config.GetWorkerConfig(cfg, rs.TaskType)
		handler := rs.NewHandler(&rs.Config{
			Timeout: config.GetDuration(wcfg.Timeout),
		}, deps.postgres.GetDB(), log)
		m.Register(rs.TaskType, wcfg, handler.Handle)
	}

	// --- build-interview-report ---
	{
		wcfg := config.GetWorkerConfig(cfg, br.TaskType)
		handler := br.NewHandler(&br.Config{
			Title:     interview.ReportTitle,
			ReportTTL: config.Seconds(interview.ReportTTL),
			Timeout:   config.GetDuration(wcfg.Timeout),
		}, rdb, log)
		m.Register(br.TaskType, wcfg, handler.Handle)
	}

	// --- index-interview-report ---
	{
		wcfg := config.GetWorkerConfig(cfg, ir.TaskType)
		handler := ir.NewHandler(&ir.Config{
			Index:   interview.ReportIndex,
			Timeout: config.GetDuration(wcfg.Timeout),
		}, deps.es.Client, log)
		m.Register(ir.TaskType, wcfg, handler.Handle)
	}

	// --- send-interview-report ---
	{
		aws := cfg.Integrations.AWS
		wcfg := config.GetWorkerConfig(cfg, sr.TaskType)
		srCfg := sr.LoadConfig()
		srCfg.SESEnabled = aws.SES.Enabled
		srCfg.FromEmail = aws.SES.FromEmail
		srCfg.SNSEnabled = aws.SNS.Enabled
		srCfg.TopicARN = aws.SNS.TopicARN
		srCfg.Timeout = config.GetDuration(wcfg.Timeout)

		if config.IsWorkerEnabled(cfg, sr.TaskType) && !aws.SES.Enabled && !aws.SNS.Enabled {
			log.Warn("report delivery worker enabled without SES or SNS", map[string]interface{}{
				"taskType": sr.TaskType,
			})
		}

		handler := sr.NewHandler(srCfg, deps.ses, deps.sns, log)
		m.Register(sr.TaskType, wcfg, handler.Handle)
	}

	return nil
}
