// internal/resume/alignment.go
package resume

import (
	"math"
	"strings"
	"unicode"
)

// MaxAlignmentScore is the score of an answer mentioning every listed skill.
const MaxAlignmentScore = 10.0

var skillSynonyms = map[string]string{
	"golang":                "go",
	"postgresql":            "postgres",
	"javascript":            "js",
	"typescript":            "ts",
	"kubernetes":            "k8s",
	"amazon web services":   "aws",
	"google cloud platform": "gcp",
	"microsoft azure":       "azure",
	"node.js":               "nodejs",
	"c sharp":               "c#",
	"machine learning":      "ml",
}

// NormalizeSkillName lowercases, trims and canonicalizes a skill name.
func NormalizeSkillName(name string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if canonical, ok := skillSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills normalizes, drops blanks and de-duplicates skills, keeping
// first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkillName(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// KeywordAligner scores an answer by the share of resume skills it mentions.
type KeywordAligner struct{}

func NewKeywordAligner() *KeywordAligner {
	return &KeywordAligner{}
}

// Score returns matched/total skills scaled to 0-10 and rounded to two
// decimals. An empty skill list scores 0.
func (a *KeywordAligner) Score(answer string, skills []string) float64 {
	normalized := NormalizeSkills(skills)
	if len(normalized) == 0 {
		return 0
	}

	matched := MatchedSkills(answer, normalized)
	ratio := float64(len(matched)) / float64(len(normalized))
	return math.RoundToEven(ratio*MaxAlignmentScore*100) / 100
}

// MatchedSkills returns the normalized skills mentioned in the answer.
// Single-word skills match whole tokens; multi-word skills match as phrases.
func MatchedSkills(answer string, skills []string) []string {
	tokens := tokenize(answer)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
		if canonical, ok := skillSynonyms[tok]; ok {
			tokenSet[canonical] = true
		}
	}
	phrase := " " + strings.Join(tokens, " ") + " "
	for from, to := range skillSynonyms {
		if strings.Contains(from, " ") && strings.Contains(phrase, " "+from+" ") {
			tokenSet[to] = true
		}
	}

	var matched []string
	for _, skill := range NormalizeSkills(skills) {
		if strings.Contains(skill, " ") {
			if strings.Contains(phrase, " "+skill+" ") {
				matched = append(matched, skill)
			}
			continue
		}
		if tokenSet[skill] {
			matched = append(matched, skill)
		}
	}
	return matched
}

// tokenize lowercases and splits on anything that cannot be part of a skill
// name. '+', '#' and '.' are kept so c++, c# and node.js survive.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
