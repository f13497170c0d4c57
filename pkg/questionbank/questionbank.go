// pkg/questionbank/questionbank.go
package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidBank = errors.New("INVALID_QUESTION_BANK")

// Default returns the built-in four-question script.
func Default() *Bank {
	return &Bank{
		Version: "1.0.0",
		Questions: []Question{
			{ID: "intro", Text: "Tell me about yourself.", Order: 1, Tags: []string{"general"}},
			{ID: "technical-skills", Text: "What are your technical skills?", Order: 2, Tags: []string{"skills"}},
			{ID: "challenge", Text: "Describe a challenging situation you faced and how you handled it.", Order: 3, Tags: []string{"behavioral"}},
			{ID: "why-hire", Text: "Why should we hire you?", Order: 4, Tags: []string{"closing"}},
		},
	}
}

// Load reads a bank file. Files ending in .json are decoded as JSON, anything
// else as YAML. The result is validated.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse decodes and validates a bank document.
func Parse(data []byte, isJSON bool) (*Bank, error) {
	var bank Bank
	var err error
	if isJSON {
		err = json.Unmarshal(data, &bank)
	} else {
		err = yaml.Unmarshal(data, &bank)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return &bank, nil
}

// Validate checks that ids and orders are unique and every question has text.
func (b *Bank) Validate() error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}

	ids := make(map[string]bool, len(b.Questions))
	orders := make(map[int]string, len(b.Questions))
	for i, q := range b.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidBank, i)
		}
		if ids[q.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidBank, q.ID)
		}
		ids[q.ID] = true

		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %q has no text", ErrInvalidBank, q.ID)
		}
		if q.Order <= 0 {
			return fmt.Errorf("%w: question %q order must be positive", ErrInvalidBank, q.ID)
		}
		if other, dup := orders[q.Order]; dup {
			return fmt.Errorf("%w: questions %q and %q share order %d", ErrInvalidBank, other, q.ID, q.Order)
		}
		orders[q.Order] = q.ID
	}
	return nil
}

// Select returns the questions for domain in asking order. A limit of zero or
// less returns all of them.
func (b *Bank) Select(domain string, limit int) []Question {
	selected := make([]Question, 0, len(b.Questions))
	for _, q := range b.Questions {
		if q.AppliesTo(domain) {
			selected = append(selected, q)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Order < selected[j].Order
	})

	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// Domains lists every domain named by a question, sorted.
func (b *Bank) Domains() []string {
	seen := make(map[string]bool)
	var domains []string
	for _, q := range b.Questions {
		for _, d := range q.Domains {
			if !seen[d] {
				seen[d] = true
				domains = append(domains, d)
			}
		}
	}
	sort.Strings(domains)
	return domains
}

// AppliesTo reports whether q is asked in domain. Matching ignores case.
func (q Question) AppliesTo(domain string) bool {
	if len(q.Domains) == 0 {
		return true
	}
	for _, d := range q.Domains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}
