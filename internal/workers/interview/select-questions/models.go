// internal/workers/interview/select-questions/models.go
package selectquestions

import "interview-workers/pkg/questionbank"

type Input struct {
	SessionID string `json:"sessionId"`
	Domain    string `json:"domain"`
	Limit     int    `json:"limit,omitempty"`
}

type Output struct {
	SessionID            string                  `json:"sessionId"`
	Domain               string                  `json:"domain"`
	Questions            []questionbank.Question `json:"questions"`
	TotalQuestions       int                     `json:"totalQuestions"`
	CurrentQuestionIndex int                     `json:"currentQuestionIndex"`
	BankVersion          string                  `json:"bankVersion,omitempty"`
}

const inputSchema = `{
	"type": "object",
	"required": ["sessionId", "domain"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"domain":    {"type": "string", "minLength": 1},
		"limit":     {"type": "integer", "minimum": 0}
	}
}`
