// internal/scoring/engine_test.go
package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func newTestEngine(t *testing.T, aligner AlignmentScorer) *Engine {
	engine, err := NewEngine(DefaultConfig(), aligner)
	require.NoError(t, err)
	return engine
}

// ==========================
// Sub-metric Tests
// ==========================

func TestEngine_ScoreConfidence(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name     string
		answer   string
		expected int
	}{
		{"empty answer", "", 3},
		{"nine words", words(9), 3},
		{"ten words", words(10), 6},
		{"twenty four words", words(24), 6},
		{"twenty five words", words(25), 8},
		{"long answer", words(200), 8},
		{"whitespace only", "   \t\n  ", 3},
		{"irregular spacing", "one  two\tthree\nfour", 3},
		{"information separators split words", strings.Repeat("word\x1f", 10), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ScoreConfidence(tt.answer))
		})
	}
}

func TestEngine_ScoreConfidence_Monotonic(t *testing.T) {
	engine := newTestEngine(t, nil)

	prev := 0
	for n := 0; n <= 40; n++ {
		score := engine.ScoreConfidence(words(n))
		assert.GreaterOrEqual(t, score, prev, "word count %d", n)
		prev = score
	}
}

func TestEngine_ScoreResponseTime(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name     string
		seconds  float64
		expected int
	}{
		{"instant", 0, 9},
		{"negative accepted", -5, 9},
		{"twenty seconds", 20, 9},
		{"just over twenty", 20.01, 7},
		{"twenty one seconds", 21, 7},
		{"forty seconds", 40, 7},
		{"forty one seconds", 41, 5},
		{"very slow", 600, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ScoreResponseTime(tt.seconds))
		})
	}
}

func TestEngine_ScoreRelevance(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name     string
		answer   string
		question string
		expected int
	}{
		{"shared words", "the cat sat", "what did the cat do", 2},
		{"case insensitive", "The CAT sat", "what did the cat do", 2},
		{"empty answer", "", "Tell me about yourself.", 0},
		{"empty question", "I like Go", "", 0},
		{"duplicates counted once", "cat cat cat", "cat", 1},
		{"unit separator splits tokens", "the\x1ccat\x1esat", "what did the cat do", 2},
		{"non-breaking space splits tokens", "the\u00a0cat", "the cat", 2},
		{"punctuation is part of the token", "yourself", "Tell me about yourself.", 0},
		{
			"capped at ten",
			"a b c d e f g h i j k l m n o",
			"a b c d e f g h i j k l m n o",
			10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ScoreRelevance(tt.answer, tt.question))
		})
	}
}

// ==========================
// Total Score Tests
// ==========================

func TestEngine_CalculateTotalScore(t *testing.T) {
	engine := newTestEngine(t, nil)

	tests := []struct {
		name     string
		scores   map[string]float64
		expected float64
	}{
		{
			name: "all tens",
			scores: map[string]float64{
				MetricRelevance: 10, MetricClarity: 10, MetricGrammar: 10,
				MetricConfidence: 10, MetricResponseTime: 10,
			},
			expected: 10.0,
		},
		{
			name:     "empty mapping",
			scores:   map[string]float64{},
			expected: 0.0,
		},
		{
			name:     "nil mapping",
			scores:   nil,
			expected: 0.0,
		},
		{
			name: "partial mapping defaults to zero",
			scores: map[string]float64{
				MetricRelevance: 10,
			},
			expected: 3.0,
		},
		{
			name: "resume alignment ignored",
			scores: map[string]float64{
				MetricRelevance: 2, MetricClarity: 6, MetricGrammar: 6,
				MetricConfidence: 3, MetricResponseTime: 9,
				MetricResumeAlignment: 10,
			},
			expected: 4.65,
		},
		{
			name:     "exact half rounds to even",
			scores:   map[string]float64{MetricClarity: 0.5},
			expected: 0.12,
		},
		{
			name:     "exact half rounds up to even",
			scores:   map[string]float64{MetricClarity: 1.5},
			expected: 0.38,
		},
		{
			name: "unknown metric ignored",
			scores: map[string]float64{
				"enthusiasm": 10,
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, engine.CalculateTotalScore(tt.scores), 1e-9)
		})
	}
}

func TestEngine_CalculateTotalScore_RoundsToTwoDecimals(t *testing.T) {
	engine := newTestEngine(t, nil)

	total := engine.CalculateTotalScore(map[string]float64{
		MetricRelevance: 1, MetricClarity: 1, MetricGrammar: 1,
		MetricConfidence: 1, MetricResponseTime: 1.234,
	})

	assert.InDelta(t, 1.02, total, 1e-9)
}

// ==========================
// ScoreAnswer Tests
// ==========================

func TestEngine_ScoreAnswer_ReturnsSevenKeys(t *testing.T) {
	engine := newTestEngine(t, nil)

	result := engine.ScoreAnswer("I build services in Go", "What are your technical skills?", 15, nil)
	m := result.Map()

	assert.Len(t, m, 7)
	for _, key := range []string{
		MetricRelevance, MetricConfidence, MetricResponseTime, MetricClarity,
		MetricGrammar, MetricResumeAlignment, MetricTotalScore,
	} {
		assert.Contains(t, m, key)
	}
}

func TestEngine_ScoreAnswer_TotalReproducible(t *testing.T) {
	aligner := AlignmentFunc(func(string, []string) float64 { return 9.5 })
	engine := newTestEngine(t, aligner)

	result := engine.ScoreAnswer(
		"My technical skills include Go, Python and distributed systems design",
		"What are your technical skills?",
		32,
		[]string{"go"},
	)

	assert.Equal(t, 6, result.Clarity)
	assert.Equal(t, 6, result.Grammar)
	assert.Equal(t, 7, result.ResponseTime)
	assert.Equal(t, 6, result.Confidence)
	assert.Equal(t, 9.5, result.ResumeAlignment)

	expected := Round2(float64(result.Relevance)*0.30 +
		float64(result.Clarity)*0.25 +
		float64(result.Grammar)*0.20 +
		float64(result.Confidence)*0.15 +
		float64(result.ResponseTime)*0.10)
	assert.InDelta(t, expected, result.TotalScore, 1e-9)
}

func TestEngine_ScoreAnswer_EmptyInputs(t *testing.T) {
	engine := newTestEngine(t, nil)

	result := engine.ScoreAnswer("", "", -3, nil)

	assert.Equal(t, 0, result.Relevance)
	assert.Equal(t, 3, result.Confidence)
	assert.Equal(t, 9, result.ResponseTime)
	assert.Equal(t, 0.0, result.ResumeAlignment)
	// 0*0.30 + 6*0.25 + 6*0.20 + 3*0.15 + 9*0.10
	assert.InDelta(t, 4.05, result.TotalScore, 1e-9)
}

func TestEngine_ScoreAnswer_Idempotent(t *testing.T) {
	engine := newTestEngine(t, AlignmentFunc(func(answer string, skills []string) float64 {
		return float64(len(skills))
	}))

	args := func() ScoreResult {
		return engine.ScoreAnswer("I led the migration to Kubernetes", "Describe a challenging situation", 25, []string{"kubernetes", "go"})
	}

	assert.Equal(t, args(), args())
}

func TestEngine_ScoreAnswer_PassesSkillsToAligner(t *testing.T) {
	var gotAnswer string
	var gotSkills []string
	engine := newTestEngine(t, AlignmentFunc(func(answer string, skills []string) float64 {
		gotAnswer = answer
		gotSkills = skills
		return 4
	}))

	engine.ScoreAnswer("answer text", "question", 10, []string{"sql", "go"})

	assert.Equal(t, "answer text", gotAnswer)
	assert.Equal(t, []string{"sql", "go"}, gotSkills)
}

// ==========================
// Configuration Tests
// ==========================

func TestWeights_DefaultSumsToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultWeights().Sum(), 0.001)
	assert.NoError(t, DefaultWeights().Validate())
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"default", DefaultWeights(), false},
		{"empty", Weights{}, true},
		{"sum too low", Weights{{MetricRelevance, 0.5}, {MetricClarity, 0.3}}, true},
		{"negative", Weights{{MetricRelevance, 1.2}, {MetricClarity, -0.2}}, true},
		{"duplicate", Weights{{MetricRelevance, 0.5}, {MetricRelevance, 0.5}}, true},
		{"within tolerance", Weights{{MetricRelevance, 0.6004}, {MetricClarity, 0.4}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeights)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeightsFromMap(t *testing.T) {
	w, err := WeightsFromMap(map[string]float64{
		MetricResponseTime: 0.10,
		MetricConfidence:   0.15,
		MetricGrammar:      0.20,
		MetricClarity:      0.25,
		MetricRelevance:    0.30,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)

	_, err = WeightsFromMap(map[string]float64{"resume_alignment": 1})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{{MetricRelevance, 0.9}}

	_, err := NewEngine(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidWeights)

	cfg = DefaultConfig()
	cfg.RelevanceCap = 0
	_, err = NewEngine(cfg, nil)
	assert.Error(t, err)
}

func TestEngine_ConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	engine, err := NewEngine(cfg, nil)
	require.NoError(t, err)

	cfg.Weights[0].Value = 0.9
	got := engine.Config()
	got.Weights[1].Value = 0.9

	assert.Equal(t, DefaultWeights(), engine.Config().Weights)
}

func TestNewDefaultEngine(t *testing.T) {
	engine := NewDefaultEngine(nil)
	assert.Equal(t, 2, engine.ScoreRelevance("the cat sat", "what did the cat do"))
	assert.Equal(t, LevelAdvanced, engine.Classify(10))
}
