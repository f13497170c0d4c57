// internal/scoring/config.go
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Metric names used as keys in score mappings.
const (
	MetricRelevance       = "relevance"
	MetricClarity         = "clarity"
	MetricGrammar         = "grammar"
	MetricConfidence      = "confidence"
	MetricResponseTime    = "response_time"
	MetricResumeAlignment = "resume_alignment"
	MetricTotalScore      = "total_score"
)

const weightSumTolerance = 0.001

var (
	ErrInvalidWeights = errors.New("INVALID_WEIGHTS")
	ErrInvalidBands   = errors.New("INVALID_LEVEL_BANDS")
)

// weightedMetrics is the canonical summation order.
var weightedMetrics = []string{
	MetricRelevance,
	MetricClarity,
	MetricGrammar,
	MetricConfidence,
	MetricResponseTime,
}

// Weight is the contribution of one metric to the total score.
type Weight struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// Weights is an ordered weight table. Summation always follows table order so
// totals are reproducible bit for bit.
type Weights []Weight

func DefaultWeights() Weights {
	return Weights{
		{Metric: MetricRelevance, Value: 0.30},
		{Metric: MetricClarity, Value: 0.25},
		{Metric: MetricGrammar, Value: 0.20},
		{Metric: MetricConfidence, Value: 0.15},
		{Metric: MetricResponseTime, Value: 0.10},
	}
}

// WeightsFromMap builds a table from a metric->weight map, ordering entries by
// the canonical metric order. Unknown metrics are rejected.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	known := make(map[string]int, len(weightedMetrics))
	for i, name := range weightedMetrics {
		known[name] = i
	}

	w := make(Weights, 0, len(m))
	for metric, value := range m {
		if _, ok := known[metric]; !ok {
			return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidWeights, metric)
		}
		w = append(w, Weight{Metric: metric, Value: value})
	}
	sort.Slice(w, func(i, j int) bool {
		return known[w[i].Metric] < known[w[j].Metric]
	})

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w Weights) Sum() float64 {
	var total float64
	for _, weight := range w {
		total += weight.Value
	}
	return total
}

// Get returns the weight for a metric.
func (w Weights) Get(metric string) (float64, bool) {
	for _, weight := range w {
		if weight.Metric == metric {
			return weight.Value, true
		}
	}
	return 0, false
}

// Validate checks every weight is in [0,1], metrics are unique and the table
// sums to 1.0.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: empty weight table", ErrInvalidWeights)
	}
	seen := make(map[string]bool, len(w))
	for _, weight := range w {
		if weight.Metric == "" {
			return fmt.Errorf("%w: weight without metric name", ErrInvalidWeights)
		}
		if seen[weight.Metric] {
			return fmt.Errorf("%w: duplicate metric %q", ErrInvalidWeights, weight.Metric)
		}
		seen[weight.Metric] = true
		if weight.Value < 0 || weight.Value > 1 {
			return fmt.Errorf("%w: %s weight %.3f outside [0,1]", ErrInvalidWeights, weight.Metric, weight.Value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, expected 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// WordBucket scores answers with fewer than Below words.
type WordBucket struct {
	Below int
	Score int
}

// TimeBucket scores responses taking at most AtMost seconds.
type TimeBucket struct {
	AtMost float64
	Score  int
}

// Config holds every table the engine reads. A Config is treated as a value:
// the engine copies its slices on construction.
type Config struct {
	Weights Weights
	Bands   Bands

	ConfidenceBuckets []WordBucket
	ConfidenceDefault int

	ResponseTimeBuckets []TimeBucket
	ResponseTimeDefault int

	RelevanceCap int

	// Clarity and grammar are not derived from the answer text.
	ClarityScore int
	GrammarScore int
}

func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Bands:   DefaultBands(),
		ConfidenceBuckets: []WordBucket{
			{Below: 10, Score: 3},
			{Below: 25, Score: 6},
		},
		ConfidenceDefault: 8,
		ResponseTimeBuckets: []TimeBucket{
			{AtMost: 20, Score: 9},
			{AtMost: 40, Score: 7},
		},
		ResponseTimeDefault: 5,
		RelevanceCap:        10,
		ClarityScore:        6,
		GrammarScore:        6,
	}
}

func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Bands.Validate(); err != nil {
		return err
	}
	for i := 1; i < len(c.ConfidenceBuckets); i++ {
		if c.ConfidenceBuckets[i].Below <= c.ConfidenceBuckets[i-1].Below {
			return fmt.Errorf("confidence buckets must be strictly ascending")
		}
	}
	for i := 1; i < len(c.ResponseTimeBuckets); i++ {
		if c.ResponseTimeBuckets[i].AtMost <= c.ResponseTimeBuckets[i-1].AtMost {
			return fmt.Errorf("response time buckets must be strictly ascending")
		}
	}
	if c.RelevanceCap <= 0 {
		return fmt.Errorf("relevance cap must be positive, got %d", c.RelevanceCap)
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.Weights = append(Weights(nil), c.Weights...)
	out.Bands = append(Bands(nil), c.Bands...)
	out.ConfidenceBuckets = append([]WordBucket(nil), c.ConfidenceBuckets...)
	out.ResponseTimeBuckets = append([]TimeBucket(nil), c.ResponseTimeBuckets...)
	return out
}
