// internal/workers/interview/record-session/models.go
package recordsession

import "interview-workers/internal/scoring"

type Input struct {
	SessionID         string         `json:"sessionId" validate:"required"`
	CandidateName     string         `json:"candidateName"`
	CandidateEmail    string         `json:"candidateEmail" validate:"omitempty,email"`
	Domain            string         `json:"domain" validate:"required"`
	ResumeSkills      []string       `json:"resumeSkills"`
	AverageScore      float64        `json:"averageScore" validate:"gte=0,lte=10"`
	ConfidencePercent int            `json:"confidencePercent" validate:"gte=0,lte=100"`
	PerformanceLevel  string         `json:"performanceLevel" validate:"required"`
	Answers           []AnswerRecord `json:"answers" validate:"dive"`
}

type AnswerRecord struct {
	QuestionIndex       int                 `json:"questionIndex" validate:"gte=0"`
	QuestionText        string              `json:"questionText" validate:"required"`
	AnswerText          string              `json:"answerText"`
	AnswerMode          string              `json:"answerMode" validate:"omitempty,oneof=text voice"`
	ResponseTimeSeconds float64             `json:"responseTimeSeconds"`
	Scores              scoring.ScoreResult `json:"scores"`
}

type Output struct {
	SessionID   string `json:"sessionId"`
	AnswerCount int    `json:"answerCount"`
	AuditID     string `json:"auditId"`
	RecordedAt  string `json:"recordedAt"`
}
