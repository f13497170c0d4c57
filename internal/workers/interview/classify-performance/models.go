// internal/workers/interview/classify-performance/models.go
package classifyperformance

type Input struct {
	SessionID   string    `json:"sessionId"`
	TotalScores []float64 `json:"totalScores"`
}

type Output struct {
	SessionID         string  `json:"sessionId"`
	AnswerCount       int     `json:"answerCount"`
	AverageScore      float64 `json:"averageScore"`
	ConfidencePercent int     `json:"confidencePercent"`
	PerformanceLevel  string  `json:"performanceLevel"`
}

const inputSchema = `{
	"type": "object",
	"required": ["sessionId", "totalScores"],
	"properties": {
		"sessionId":   {"type": "string", "minLength": 1},
		"totalScores": {"type": "array", "items": {"type": "number"}}
	}
}`
