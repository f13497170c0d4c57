// internal/workers/interview/send-report/models.go
package sendreport

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"

	EventReportCompleted = "interview.report.completed"
)

type Input struct {
	SessionID         string  `json:"sessionId" validate:"required"`
	ReportID          string  `json:"reportId" validate:"required"`
	CandidateName     string  `json:"candidateName"`
	CandidateEmail    string  `json:"candidateEmail" validate:"omitempty,email"`
	Domain            string  `json:"domain"`
	PerformanceLevel  string  `json:"performanceLevel" validate:"required"`
	AverageScore      float64 `json:"averageScore" validate:"gte=0,lte=10"`
	ConfidencePercent int     `json:"confidencePercent" validate:"gte=0,lte=100"`
	ReportText        string  `json:"reportText" validate:"required"`
	ReportKey         string  `json:"reportKey,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	SessionID      string `json:"sessionId"`
	EmailStatus    string `json:"emailStatus"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	EventStatus    string `json:"eventStatus"`
	EventMessageID string `json:"eventMessageId,omitempty"`
	SentAt         string `json:"sentAt"`
}

// CompletedEvent is the payload published when a report has been delivered.
type CompletedEvent struct {
	NotificationID    string  `json:"notificationId"`
	SessionID         string  `json:"sessionId"`
	ReportID          string  `json:"reportId"`
	Domain            string  `json:"domain,omitempty"`
	PerformanceLevel  string  `json:"performanceLevel"`
	AverageScore      float64 `json:"averageScore"`
	ConfidencePercent int     `json:"confidencePercent"`
	ReportKey         string  `json:"reportKey,omitempty"`
	OccurredAt        string  `json:"occurredAt"`
}
