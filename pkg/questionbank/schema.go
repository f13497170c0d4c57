// pkg/questionbank/schema.go
package questionbank

// Bank is the scripted interview question set.
type Bank struct {
	Version     string     `json:"version" yaml:"version"`
	LastUpdated string     `json:"lastUpdated" yaml:"lastUpdated"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Question is asked in ascending Order. An empty Domains list means the
// question applies to every domain.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Order   int      `json:"order" yaml:"order"`
	Domains []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
