// internal/common/config/config.go
package config

import (
	"fmt"

	"interview-workers/internal/scoring"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
	Interview    InterviewConfig         `mapstructure:"interview"`
	Scoring      ScoringConfig           `mapstructure:"scoring"`
	Integrations IntegrationConfig       `mapstructure:"integrations"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Tracing      TracingConfig           `mapstructure:"tracing"`
	Server       ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress          string `mapstructure:"broker_address"`
	UsePlaintextConnection bool   `mapstructure:"use_plaintext"`
	MaxJobsActive          int    `mapstructure:"max_jobs_active"`
	Timeout                int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout         int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
	// AutoMigrate creates the interview tables on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // single-address shorthand
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// GetAddresses returns all configured addresses, folding in URL.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// InterviewConfig holds settings shared by the interview workers.
type InterviewConfig struct {
	QuestionBankPath string   `mapstructure:"question_bank_path"`
	Domains          []string `mapstructure:"domains"`
	ScoreCacheTTL    int      `mapstructure:"score_cache_ttl"`    // seconds
	QuestionCacheTTL int      `mapstructure:"question_cache_ttl"` // seconds
	ReportTTL        int      `mapstructure:"report_ttl"`         // seconds
	ReportIndex      string   `mapstructure:"report_index"`
	ReportTitle      string   `mapstructure:"report_title"`
	VoicePlaceholder string   `mapstructure:"voice_placeholder"`
	MaxAnswerLength  int      `mapstructure:"max_answer_length"` // characters
}

// ScoringConfig overrides the engine tables. Zero values keep the defaults.
type ScoringConfig struct {
	Weights      map[string]float64 `mapstructure:"weights"`
	Levels       []LevelBandConfig  `mapstructure:"levels"`
	ClarityScore *int               `mapstructure:"clarity_score"`
	GrammarScore *int               `mapstructure:"grammar_score"`
	RelevanceCap int                `mapstructure:"relevance_cap"`
}

type LevelBandConfig struct {
	Name string  `mapstructure:"name"`
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
}

// EngineConfig merges the overrides onto scoring.DefaultConfig and validates
// the result.
func (s ScoringConfig) EngineConfig() (scoring.Config, error) {
	cfg := scoring.DefaultConfig()

	if len(s.Weights) > 0 {
		weights, err := scoring.WeightsFromMap(s.Weights)
		if err != nil {
			return scoring.Config{}, err
		}
		cfg.Weights = weights
	}

	if len(s.Levels) > 0 {
		bands := make(scoring.Bands, 0, len(s.Levels))
		for _, l := range s.Levels {
			bands = append(bands, scoring.Band{Level: scoring.Level(l.Name), Min: l.Min, Max: l.Max})
		}
		cfg.Bands = bands
	}

	if s.ClarityScore != nil {
		cfg.ClarityScore = *s.ClarityScore
	}
	if s.GrammarScore != nil {
		cfg.GrammarScore = *s.GrammarScore
	}
	if s.RelevanceCap > 0 {
		cfg.RelevanceCap = s.RelevanceCap
	}

	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, err
	}
	return cfg, nil
}

// IntegrationConfig holds settings for external services.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TracingConfig enables span export to a Jaeger collector.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}
