// internal/workers/interview/index-report/models.go
package indexreport

type Input struct {
	ReportText string        `json:"reportText"`
	Summary    ReportSummary `json:"summary"`
}

type ReportSummary struct {
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

// Document is the body stored in the report index, keyed by session id.
type Document struct {
	ReportSummary
	ReportText string `json:"reportText"`
}

type Output struct {
	SessionID  string `json:"sessionId"`
	ReportID   string `json:"reportId"`
	Index      string `json:"index"`
	DocumentID string `json:"documentId"`
	Result     string `json:"result"`
	Version    int64  `json:"version"`
}

// indexResponse is the subset of the Elasticsearch index API response we read.
type indexResponse struct {
	Index   string `json:"_index"`
	ID      string `json:"_id"`
	Version int64  `json:"_version"`
	Result  string `json:"result"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

const inputSchema = `{
	"type": "object",
	"required": ["summary"],
	"properties": {
		"reportText": {"type": "string"},
		"summary": {
			"type": "object",
			"required": ["reportId", "sessionId", "domain", "performanceLevel"],
			"properties": {
				"reportId":          {"type": "string", "minLength": 1},
				"sessionId":         {"type": "string", "minLength": 1},
				"domain":            {"type": "string"},
				"performanceLevel":  {"type": "string"},
				"averageScore":      {"type": "number"},
				"confidencePercent": {"type": "integer"},
				"answerCount":       {"type": "integer"},
				"resumeSkills":      {"type": "array", "items": {"type": "string"}},
				"createdAt":         {"type": "string"}
			}
		}
	}
}`
