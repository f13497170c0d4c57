// internal/workers/interview/score-answer/models.go
package scoreanswer

import "interview-workers/internal/scoring"

const (
	AnswerModeText  = "text"
	AnswerModeVoice = "voice"
)

type Input struct {
	SessionID           string   `json:"sessionId"`
	QuestionIndex       int      `json:"questionIndex"`
	QuestionText        string   `json:"questionText"`
	AnswerText          string   `json:"answerText"`
	AnswerMode          string   `json:"answerMode,omitempty"`
	ResponseTimeSeconds float64  `json:"responseTimeSeconds"`
	ResumeSkills        []string `json:"resumeSkills,omitempty"`
}

type Output struct {
	SessionID     string              `json:"sessionId"`
	QuestionIndex int                 `json:"questionIndex"`
	AnswerText    string              `json:"answerText"`
	AnswerMode    string              `json:"answerMode"`
	Scores        scoring.ScoreResult `json:"scores"`
	TotalScore    float64             `json:"totalScore"`
	AnswerLevel   string              `json:"answerLevel"`
	MatchedSkills []string            `json:"matchedSkills,omitempty"`
	Cached        bool                `json:"cached"`
}

// responseTimeSeconds has no lower bound: the engine treats negative times
// as fast answers.
const inputSchema = `{
	"type": "object",
	"required": ["sessionId", "questionText", "answerText", "responseTimeSeconds"],
	"properties": {
		"sessionId":           {"type": "string", "minLength": 1},
		"questionIndex":       {"type": "integer", "minimum": 0},
		"questionText":        {"type": "string"},
		"answerText":          {"type": "string"},
		"answerMode":          {"type": "string", "enum": ["text", "voice"]},
		"responseTimeSeconds": {"type": "number"},
		"resumeSkills":        {"type": "array", "items": {"type": "string"}}
	}
}`
