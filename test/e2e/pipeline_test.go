// test/e2e/pipeline_test.go
package e2e

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"interview-workers/internal/common/logger"
	buildreport "interview-workers/internal/workers/interview/build-report"
	classifyperformance "interview-workers/internal/workers/interview/classify-performance"
	indexreport "interview-workers/internal/workers/interview/index-report"
	recordsession "interview-workers/internal/workers/interview/record-session"
	scoreanswer "interview-workers/internal/workers/interview/score-answer"
	selectquestions "interview-workers/internal/workers/interview/select-questions"
	sendreport "interview-workers/internal/workers/interview/send-report"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fakes
// ==========================

type esTransport struct {
	body string
}

func (f *esTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	header := http.Header{}
	header.Set("X-Elastic-Product", "Elasticsearch")
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: http.StatusCreated,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Request:    req,
	}, nil
}

type sesStub struct{ sent []*ses.SendEmailInput }

func (s *sesStub) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	s.sent = append(s.sent, params)
	return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

type snsStub struct{ published []*sns.PublishInput }

func (s *snsStub) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.published = append(s.published, params)
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

type answer struct {
	text  string
	mode  string
	secs  float64
	total float64
}

// ==========================
// Pipeline
// ==========================

// TestInterviewPipeline drives one IT interview through every worker in the
// order the process model calls them.
func TestInterviewPipeline(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	const sessionID = "session-e2e"

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	// --- select-interview-questions ---
	selectHandler := selectquestions.NewHandler(selectquestions.LoadConfig(), rdb, log)
	selected, err := selectHandler.Execute(ctx, &selectquestions.Input{SessionID: sessionID, Domain: "it"})
	require.NoError(t, err)
	require.Equal(t, 4, selected.TotalQuestions)
	assert.Equal(t, "IT", selected.Domain)

	// --- score-interview-answer ---
	answers := []answer{
		{"", scoreanswer.AnswerModeVoice, 20, 4.05},
		{"My technical skills are Go and Postgres", scoreanswer.AnswerModeText, 15, 4.65},
		{"I faced a challenging outage and handled it by leading the incident call, writing a fix, and adding tests so the same situation could not happen again in production", scoreanswer.AnswerModeText, 30, 6.4},
		{"You should hire me because I deliver", scoreanswer.AnswerModeText, 50, 4.25},
	}

	scoreHandler, err := scoreanswer.NewHandler(scoreanswer.LoadConfig(), rdb, nil, log)
	require.NoError(t, err)

	var (
		totals       []float64
		recorded     []recordsession.AnswerRecord
		reportAnswer []buildreport.ReportAnswer
	)
	for i, q := range selected.Questions {
		a := answers[i]
		scored, err := scoreHandler.Execute(ctx, &scoreanswer.Input{
			SessionID:           sessionID,
			QuestionIndex:       i,
			QuestionText:        q.Text,
			AnswerText:          a.text,
			AnswerMode:          a.mode,
			ResponseTimeSeconds: a.secs,
			ResumeSkills:        []string{"Golang", "PostgreSQL"},
		})
		require.NoError(t, err)
		assert.InDelta(t, a.total, scored.TotalScore, 0.001, "question %d", i+1)

		totals = append(totals, scored.TotalScore)
		recorded = append(recorded, recordsession.AnswerRecord{
			QuestionIndex:       i,
			QuestionText:        q.Text,
			AnswerText:          scored.AnswerText,
			AnswerMode:          scored.AnswerMode,
			ResponseTimeSeconds: a.secs,
			Scores:              scored.Scores,
		})
		reportAnswer = append(reportAnswer, buildreport.ReportAnswer{
			QuestionIndex: i,
			QuestionText:  q.Text,
			AnswerText:    scored.AnswerText,
			TotalScore:    scored.TotalScore,
		})
	}
	assert.Equal(t, "[Live voice response recorded]", recorded[0].AnswerText)

	// --- classify-interview-performance ---
	classifyHandler, err := classifyperformance.NewHandler(classifyperformance.LoadConfig(), log)
	require.NoError(t, err)
	classified := classifyHandler.Execute(ctx, &classifyperformance.Input{SessionID: sessionID, TotalScores: totals})
	assert.InDelta(t, 4.84, classified.AverageScore, 0.011)
	assert.Equal(t, 48, classified.ConfidencePercent)
	assert.Equal(t, "Intermediate", classified.PerformanceLevel)

	// --- record-interview-session ---
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO interview_sessions`).WillReturnResult(sqlmock.NewResult(1, 1))
	for range recorded {
		mock.ExpectExec(`INSERT INTO interview_answers`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec(`INSERT INTO interview_audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	recordHandler := recordsession.NewHandler(recordsession.LoadConfig(), db, log)
	stored, err := recordHandler.Execute(ctx, &recordsession.Input{
		SessionID:         sessionID,
		CandidateName:     "Jane Doe",
		CandidateEmail:    "jane@example.com",
		Domain:            selected.Domain,
		ResumeSkills:      []string{"go", "postgres"},
		AverageScore:      classified.AverageScore,
		ConfidencePercent: classified.ConfidencePercent,
		PerformanceLevel:  classified.PerformanceLevel,
		Answers:           recorded,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, stored.AnswerCount)
	assert.NoError(t, mock.ExpectationsWereMet())

	// --- build-interview-report ---
	buildHandler := buildreport.NewHandler(buildreport.LoadConfig(), rdb, log)
	report, err := buildHandler.Execute(ctx, &buildreport.Input{
		SessionID:         sessionID,
		CandidateName:     "Jane Doe",
		CandidateEmail:    "jane@example.com",
		Domain:            selected.Domain,
		AverageScore:      classified.AverageScore,
		ConfidencePercent: classified.ConfidencePercent,
		PerformanceLevel:  classified.PerformanceLevel,
		Answers:           reportAnswer,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.ReportText, "AI Powered Interview Bot - Performance Report\n"))
	assert.Contains(t, report.ReportText, "Confidence Level: Intermediate\nConfidence Score: 48%")
	assert.Contains(t, report.ReportText, "Q4: Why should we hire you?")
	assert.True(t, mr.Exists(report.ReportKey))

	// --- index-interview-report ---
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.local:9200"},
		Transport: &esTransport{body: `{"_index":"interview-reports","_id":"session-e2e","_version":1,"result":"created"}`},
	})
	require.NoError(t, err)

	summary := report.Summary
	indexHandler := indexreport.NewHandler(indexreport.LoadConfig(), esClient, log)
	indexed, err := indexHandler.Execute(ctx, &indexreport.Input{
		ReportText: report.ReportText,
		Summary: indexreport.ReportSummary{
			ReportID:          summary.ReportID,
			SessionID:         summary.SessionID,
			CandidateName:     summary.CandidateName,
			CandidateEmail:    summary.CandidateEmail,
			Domain:            summary.Domain,
			PerformanceLevel:  summary.PerformanceLevel,
			AverageScore:      summary.AverageScore,
			ConfidencePercent: summary.ConfidencePercent,
			AnswerCount:       summary.AnswerCount,
			CreatedAt:         summary.CreatedAt,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "created", indexed.Result)

	// --- send-interview-report ---
	sendCfg := sendreport.LoadConfig()
	sendCfg.SESEnabled, sendCfg.FromEmail = true, "interviews@example.com"
	sendCfg.SNSEnabled, sendCfg.TopicARN = true, "arn:aws:sns:us-east-1:123456789012:interview-events"
	sesMock, snsMock := &sesStub{}, &snsStub{}

	sendHandler := sendreport.NewHandler(sendCfg, sesMock, snsMock, log)
	sent, err := sendHandler.Execute(ctx, &sendreport.Input{
		SessionID:         sessionID,
		ReportID:          report.ReportID,
		CandidateName:     "Jane Doe",
		CandidateEmail:    "jane@example.com",
		Domain:            selected.Domain,
		PerformanceLevel:  classified.PerformanceLevel,
		AverageScore:      classified.AverageScore,
		ConfidencePercent: classified.ConfidencePercent,
		ReportText:        report.ReportText,
		ReportKey:         report.ReportKey,
	})
	require.NoError(t, err)
	assert.Equal(t, sendreport.StatusSent, sent.EmailStatus)
	assert.Equal(t, sendreport.StatusSent, sent.EventStatus)
	require.Len(t, sesMock.sent, 1)
	require.Len(t, snsMock.published, 1)
	assert.Equal(t, report.ReportText, aws.ToString(sesMock.sent[0].Message.Body.Text.Data))
}

func TestInterviewPipeline_ScoresAreCached(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	handler, err := scoreanswer.NewHandler(scoreanswer.LoadConfig(), rdb, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	input := &scoreanswer.Input{
		SessionID:           "session-cache",
		QuestionText:        "What are your technical skills?",
		AnswerText:          "My technical skills are Go and Postgres",
		ResponseTimeSeconds: 15,
	}
	first, err := handler.Execute(ctx, input)
	require.NoError(t, err)
	second, err := handler.Execute(ctx, input)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Scores, second.Scores)
}
