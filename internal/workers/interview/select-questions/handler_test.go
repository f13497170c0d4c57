// internal/workers/interview/select-questions/handler_test.go
package selectquestions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "interview-workers/internal/common/errors"
	"interview-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func createTestConfig(bankPath string) *Config {
	cfg := LoadConfig()
	cfg.QuestionBankPath = bankPath
	cfg.CacheTTL = time.Minute
	return cfg
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func assertErrorCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.Normalize(err).Code)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_DefaultScript(t *testing.T) {
	h := NewHandler(createTestConfig(""), nil, &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "it"})
	require.NoError(t, err)

	assert.Equal(t, "s-1", output.SessionID)
	assert.Equal(t, "IT", output.Domain)
	assert.Equal(t, 4, output.TotalQuestions)
	assert.Equal(t, 0, output.CurrentQuestionIndex)
	assert.Equal(t, "Tell me about yourself.", output.Questions[0].Text)
	assert.Equal(t, "Why should we hire you?", output.Questions[3].Text)
}

func TestHandler_Execute_Limit(t *testing.T) {
	h := NewHandler(createTestConfig(""), nil, &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "HR", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, output.TotalQuestions)
	assert.Equal(t, "intro", output.Questions[0].ID)
	assert.Equal(t, "technical-skills", output.Questions[1].ID)
}

func TestHandler_Execute_DomainSpecificBank(t *testing.T) {
	path := writeBank(t, `
version: 3.1.0
questions:
  - {id: intro, text: Tell me about yourself., order: 1}
  - {id: brand, text: How do you measure brand lift?, order: 2, domains: [Marketing]}
`)
	h := NewHandler(createTestConfig(path), nil, &testLogger{t: t})

	marketing, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "Marketing"})
	require.NoError(t, err)
	assert.Equal(t, 2, marketing.TotalQuestions)
	assert.Equal(t, "3.1.0", marketing.BankVersion)

	it, err := h.Execute(context.Background(), &Input{SessionID: "s-2", Domain: "IT"})
	require.NoError(t, err)
	assert.Equal(t, 1, it.TotalQuestions)
}

// ==========================
// Error Tests
// ==========================

func TestHandler_Execute_InvalidDomain(t *testing.T) {
	h := NewHandler(createTestConfig(""), nil, &testLogger{t: t})

	_, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "Finance"})
	assertErrorCode(t, err, apperrors.ErrCodeInvalidDomain)
}

func TestHandler_Execute_MissingBank(t *testing.T) {
	h := NewHandler(createTestConfig(filepath.Join(t.TempDir(), "missing.yaml")), nil, &testLogger{t: t})

	_, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "IT"})
	assertErrorCode(t, err, apperrors.ErrCodeQuestionBankUnavailable)
	assert.True(t, apperrors.Normalize(err).Retryable)
}

func TestHandler_Execute_NoQuestionsForDomain(t *testing.T) {
	path := writeBank(t, "questions:\n  - {id: brand, text: Brand?, order: 1, domains: [Marketing]}\n")
	h := NewHandler(createTestConfig(path), nil, &testLogger{t: t})

	_, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "HR"})
	assertErrorCode(t, err, apperrors.ErrCodeQuestionBankUnavailable)
}

func TestInputSchema(t *testing.T) {
	assert.True(t, schema.ValidateJSON(`{"sessionId":"s","domain":"IT","limit":3}`).Valid)
	assert.False(t, schema.ValidateJSON(`{"sessionId":"s"}`).Valid)
	assert.False(t, schema.ValidateJSON(`{"sessionId":"s","domain":"IT","limit":-1}`).Valid)
}

// ==========================
// Cache Tests
// ==========================

func TestHandler_Execute_CachesSelection(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	path := writeBank(t, "questions:\n  - {id: a, text: First?, order: 1}\n")
	h := NewHandler(createTestConfig(path), rdb, &testLogger{t: t})

	first, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "IT"})
	require.NoError(t, err)

	key, err := h.cacheKey("IT", 0)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	second, err := h.Execute(context.Background(), &Input{SessionID: "s-2", Domain: "IT"})
	require.NoError(t, err)
	assert.Equal(t, "s-2", second.SessionID)
	assert.Equal(t, first.Questions, second.Questions)
	assert.Len(t, mr.Keys(), 1)
}

func TestHandler_Execute_BankChangeBypassesCache(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	path := writeBank(t, "version: 1.0.0\nquestions:\n  - {id: a, text: First?, order: 1}\n")
	h := NewHandler(createTestConfig(path), rdb, &testLogger{t: t})

	before, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "IT"})
	require.NoError(t, err)
	assert.Equal(t, "First?", before.Questions[0].Text)

	require.NoError(t, os.WriteFile(path, []byte("version: 1.1.0\nquestions:\n  - {id: a, text: Revised first?, order: 1}\n"), 0o600))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	after, err := h.Execute(context.Background(), &Input{SessionID: "s-2", Domain: "IT"})
	require.NoError(t, err)
	assert.Equal(t, "Revised first?", after.Questions[0].Text)
	assert.Equal(t, "1.1.0", after.BankVersion)
	assert.Len(t, mr.Keys(), 2)
}

func TestHandler_Execute_BankRemovedAfterCaching(t *testing.T) {
	_, rdb := setupMiniRedis(t)
	path := writeBank(t, "questions:\n  - {id: a, text: First?, order: 1}\n")
	h := NewHandler(createTestConfig(path), rdb, &testLogger{t: t})

	_, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "IT"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = h.Execute(context.Background(), &Input{SessionID: "s-2", Domain: "IT"})
	assertErrorCode(t, err, apperrors.ErrCodeQuestionBankUnavailable)
}

func TestHandler_Execute_CacheUnavailable(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	mr.Close()

	h := NewHandler(createTestConfig(""), rdb, &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{SessionID: "s-1", Domain: "IT"})
	require.NoError(t, err)
	assert.Equal(t, 4, output.TotalQuestions)
}
