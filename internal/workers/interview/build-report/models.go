// internal/workers/interview/build-report/models.go
package buildreport

type Input struct {
	SessionID         string         `json:"sessionId"`
	CandidateName     string         `json:"candidateName,omitempty"`
	CandidateEmail    string         `json:"candidateEmail,omitempty"`
	Domain            string         `json:"domain"`
	AverageScore      float64        `json:"averageScore"`
	ConfidencePercent int            `json:"confidencePercent"`
	PerformanceLevel  string         `json:"performanceLevel"`
	ResumeSkills      []string       `json:"resumeSkills,omitempty"`
	Answers           []ReportAnswer `json:"answers"`
}

type ReportAnswer struct {
	QuestionIndex int     `json:"questionIndex"`
	QuestionText  string  `json:"questionText"`
	AnswerText    string  `json:"answerText"`
	TotalScore    float64 `json:"totalScore"`
}

// Summary is the structured half of a report. It is also the document
// indexed by index-interview-report.
type Summary struct {
	ReportID          string   `json:"reportId"`
	SessionID         string   `json:"sessionId"`
	CandidateName     string   `json:"candidateName,omitempty"`
	CandidateEmail    string   `json:"candidateEmail,omitempty"`
	Domain            string   `json:"domain"`
	PerformanceLevel  string   `json:"performanceLevel"`
	AverageScore      float64  `json:"averageScore"`
	ConfidencePercent int      `json:"confidencePercent"`
	AnswerCount       int      `json:"answerCount"`
	ResumeSkills      []string `json:"resumeSkills,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

type Output struct {
	ReportID   string  `json:"reportId"`
	SessionID  string  `json:"sessionId"`
	ReportText string  `json:"reportText"`
	Summary    Summary `json:"summary"`
	ReportKey  string  `json:"reportKey,omitempty"`
	ExpiresAt  string  `json:"expiresAt,omitempty"`
}

const inputSchema = `{
	"type": "object",
	"required": ["sessionId", "domain", "averageScore", "confidencePercent", "performanceLevel", "answers"],
	"properties": {
		"sessionId":         {"type": "string", "minLength": 1},
		"candidateName":     {"type": "string"},
		"candidateEmail":    {"type": "string"},
		"domain":            {"type": "string", "minLength": 1},
		"averageScore":      {"type": "number"},
		"confidencePercent": {"type": "integer"},
		"performanceLevel":  {"type": "string"},
		"resumeSkills":      {"type": "array", "items": {"type": "string"}},
		"answers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["questionIndex", "questionText", "answerText"],
				"properties": {
					"questionIndex": {"type": "integer", "minimum": 0},
					"questionText":  {"type": "string"},
					"answerText":    {"type": "string"},
					"totalScore":    {"type": "number"}
				}
			}
		}
	}
}`

// summarySchema guards the generated summary before it leaves the worker.
const summarySchema = `{
	"type": "object",
	"required": ["reportId", "sessionId", "domain", "performanceLevel", "averageScore", "confidencePercent", "answerCount", "createdAt"],
	"properties": {
		"reportId":          {"type": "string", "minLength": 1},
		"sessionId":         {"type": "string", "minLength": 1},
		"domain":            {"type": "string", "minLength": 1},
		"performanceLevel":  {"type": "string", "minLength": 1},
		"averageScore":      {"type": "number", "minimum": 0, "maximum": 10},
		"confidencePercent": {"type": "integer", "minimum": 0, "maximum": 100},
		"answerCount":       {"type": "integer", "minimum": 0},
		"createdAt":         {"type": "string", "format": "date-time"}
	}
}`
