// internal/scoring/engine.go
package scoring

import (
	"math"
	"strings"
	"unicode"
)

// AlignmentScorer rates how well an answer reflects a candidate's resume skills.
type AlignmentScorer interface {
	Score(answer string, skills []string) float64
}

// AlignmentFunc adapts a plain function to AlignmentScorer.
type AlignmentFunc func(answer string, skills []string) float64

func (f AlignmentFunc) Score(answer string, skills []string) float64 {
	return f(answer, skills)
}

var noAlignment = AlignmentFunc(func(string, []string) float64 { return 0 })

// ScoreResult is the outcome of scoring one answer.
type ScoreResult struct {
	Relevance       int     `json:"relevance"`
	Confidence      int     `json:"confidence"`
	ResponseTime    int     `json:"response_time"`
	Clarity         int     `json:"clarity"`
	Grammar         int     `json:"grammar"`
	ResumeAlignment float64 `json:"resume_alignment"`
	TotalScore      float64 `json:"total_score"`
}

// Map returns the seven named values of the result.
func (r ScoreResult) Map() map[string]float64 {
	m := r.WeightedMetrics()
	m[MetricResumeAlignment] = r.ResumeAlignment
	m[MetricTotalScore] = r.TotalScore
	return m
}

// WeightedMetrics returns the five sub-metrics that feed the total.
func (r ScoreResult) WeightedMetrics() map[string]float64 {
	return map[string]float64{
		MetricRelevance:    float64(r.Relevance),
		MetricConfidence:   float64(r.Confidence),
		MetricResponseTime: float64(r.ResponseTime),
		MetricClarity:      float64(r.Clarity),
		MetricGrammar:      float64(r.Grammar),
	}
}

// Engine scores interview answers. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	cfg     Config
	aligner AlignmentScorer
}

// NewEngine validates cfg and returns an engine using aligner for resume
// alignment. A nil aligner scores alignment as 0.
func NewEngine(cfg Config, aligner AlignmentScorer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if aligner == nil {
		aligner = noAlignment
	}
	return &Engine{cfg: cfg.clone(), aligner: aligner}, nil
}

// NewDefaultEngine returns an engine with the stock weight and threshold tables.
func NewDefaultEngine(aligner AlignmentScorer) *Engine {
	if aligner == nil {
		aligner = noAlignment
	}
	return &Engine{cfg: DefaultConfig(), aligner: aligner}
}

// Config returns a copy of the engine's tables.
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// ScoreConfidence uses answer length as a proxy for confidence.
func (e *Engine) ScoreConfidence(answer string) int {
	words := len(splitWords(answer))
	for _, bucket := range e.cfg.ConfidenceBuckets {
		if words < bucket.Below {
			return bucket.Score
		}
	}
	return e.cfg.ConfidenceDefault
}

// ScoreResponseTime favours faster answers. Negative times land in the
// fastest bucket.
func (e *Engine) ScoreResponseTime(seconds float64) int {
	for _, bucket := range e.cfg.ResponseTimeBuckets {
		if seconds <= bucket.AtMost {
			return bucket.Score
		}
	}
	return e.cfg.ResponseTimeDefault
}

// ScoreRelevance counts distinct lowercase tokens shared by answer and
// question, capped at the relevance cap.
func (e *Engine) ScoreRelevance(answer, question string) int {
	answerTokens := tokenSet(answer)
	overlap := 0
	for token := range tokenSet(question) {
		if _, ok := answerTokens[token]; ok {
			overlap++
		}
	}
	if overlap > e.cfg.RelevanceCap {
		return e.cfg.RelevanceCap
	}
	return overlap
}

// CalculateTotalScore applies the weight table to scores. Missing metrics count
// as 0 and metrics outside the table are ignored.
func (e *Engine) CalculateTotalScore(scores map[string]float64) float64 {
	var total float64
	for _, weight := range e.cfg.Weights {
		total += scores[weight.Metric] * weight.Value
	}
	return Round2(total)
}

// ScoreAnswer computes every sub-metric for one answer plus the weighted total.
// resume_alignment is reported but does not contribute to the total.
func (e *Engine) ScoreAnswer(answer, question string, responseTime float64, resumeSkills []string) ScoreResult {
	result := ScoreResult{
		Relevance:    e.ScoreRelevance(answer, question),
		Confidence:   e.ScoreConfidence(answer),
		ResponseTime: e.ScoreResponseTime(responseTime),
		Clarity:      e.cfg.ClarityScore,
		Grammar:      e.cfg.GrammarScore,
	}
	result.ResumeAlignment = e.aligner.Score(answer, resumeSkills)
	result.TotalScore = e.CalculateTotalScore(result.WeightedMetrics())
	return result
}

// Classify maps an aggregate score onto a performance level.
func (e *Engine) Classify(score float64) Level {
	return e.cfg.Bands.Classify(score)
}

func tokenSet(s string) map[string]struct{} {
	fields := splitWords(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// splitWords splits on Unicode white space and the ASCII information
// separators 0x1C-0x1F, which also delimit words in answer transcripts.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, isWordSeparator)
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Round2 rounds to two decimal places. Exact halves go to the even neighbour.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
