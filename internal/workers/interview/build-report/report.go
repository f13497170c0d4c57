// internal/workers/interview/build-report/report.go
package buildreport

import (
	"sort"
	"strings"
	"text/template"
)

var reportTemplate = template.Must(template.New("report").Parse(`{{.Title}}

{{if .CandidateName}}Candidate: {{.CandidateName}}
{{end}}Domain: {{.Domain}}
Confidence Level: {{.PerformanceLevel}}
Confidence Score: {{.ConfidencePercent}}%
Average Score: {{printf "%.2f" .AverageScore}}
{{range .Answers}}
Q{{.Number}}: {{.QuestionText}}
Answer: {{.AnswerText}}
Score: {{printf "%.2f" .TotalScore}}
{{end}}`))

type reportView struct {
	Title             string
	CandidateName     string
	Domain            string
	PerformanceLevel  string
	ConfidencePercent int
	AverageScore      float64
	Answers           []answerView
}

type answerView struct {
	Number       int
	QuestionText string
	AnswerText   string
	TotalScore   float64
}

// RenderText renders the plain-text report. Answers are listed in question
// order and numbered from 1.
func RenderText(title string, input *Input) (string, error) {
	answers := append([]ReportAnswer(nil), input.Answers...)
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})

	view := reportView{
		Title:             title,
		CandidateName:     input.CandidateName,
		Domain:            input.Domain,
		PerformanceLevel:  input.PerformanceLevel,
		ConfidencePercent: input.ConfidencePercent,
		AverageScore:      input.AverageScore,
		Answers:           make([]answerView, len(answers)),
	}
	for i, a := range answers {
		view.Answers[i] = answerView{
			Number:       i + 1,
			QuestionText: a.QuestionText,
			AnswerText:   a.AnswerText,
			TotalScore:   a.TotalScore,
		}
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}
