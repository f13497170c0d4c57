// internal/scoring/levels.go
package scoring

import "fmt"

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Band covers [Min, Max). The last band of a table also includes Max.
type Band struct {
	Level Level   `json:"level"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type Bands []Band

func DefaultBands() Bands {
	return Bands{
		{Level: LevelBeginner, Min: 0, Max: 4},
		{Level: LevelIntermediate, Min: 4, Max: 7},
		{Level: LevelAdvanced, Min: 7, Max: 10},
	}
}

// Validate requires contiguous ascending bands.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidBands)
	}
	for i, band := range b {
		if band.Level == "" {
			return fmt.Errorf("%w: band %d has no level", ErrInvalidBands, i)
		}
		if band.Max <= band.Min {
			return fmt.Errorf("%w: band %s has max %.2f <= min %.2f", ErrInvalidBands, band.Level, band.Max, band.Min)
		}
		if i > 0 && band.Min != b[i-1].Max {
			return fmt.Errorf("%w: gap or overlap between %s and %s", ErrInvalidBands, b[i-1].Level, band.Level)
		}
	}
	return nil
}

// Classify maps a score to its band. Scores outside the table are clamped to
// the first or last band.
func (b Bands) Classify(score float64) Level {
	if len(b) == 0 {
		return ""
	}
	if score < b[0].Min {
		return b[0].Level
	}
	last := len(b) - 1
	for i, band := range b {
		if score >= band.Min && (score < band.Max || i == last) {
			return band.Level
		}
	}
	return b[last].Level
}
