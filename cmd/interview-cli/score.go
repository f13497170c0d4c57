package main

import (
	"fmt"
	"strings"

	"interview-workers/internal/common/config"
	"interview-workers/internal/resume"
	"interview-workers/internal/scoring"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single interview answer",
	Long:  "Scores an answer against its question and prints the seven score values together with the answer's performance level.",
	RunE:  runScore,
}

var (
	scoreQuestion string
	scoreAnswer   string
	scoreTime     float64
	scoreSkills   []string
	scoreVoice    bool
	scoreConfig   string
)

type scoreOutput struct {
	Scores        map[string]float64 `json:"scores"`
	Level         scoring.Level      `json:"level"`
	MatchedSkills []string           `json:"matchedSkills,omitempty"`
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreQuestion, "question", "q", "", "Question text (required)")
	scoreCmd.Flags().StringVarP(&scoreAnswer, "answer", "a", "", "Answer text")
	scoreCmd.Flags().Float64VarP(&scoreTime, "time", "t", 0, "Response time in seconds")
	scoreCmd.Flags().StringSliceVarP(&scoreSkills, "skill", "s", nil, "Resume skill, repeatable")
	scoreCmd.Flags().BoolVar(&scoreVoice, "voice", false, "Treat the answer as a voice response")
	scoreCmd.Flags().StringVarP(&scoreConfig, "config", "c", "", "Path to config YAML with a scoring section")

	if err := scoreCmd.MarkFlagRequired("question"); err != nil {
		panic(fmt.Sprintf("failed to mark question flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadLocal(scoreConfig)
	if err != nil {
		return err
	}
	engineCfg, err := cfg.Scoring.EngineConfig()
	if err != nil {
		return fmt.Errorf("scoring config: %w", err)
	}
	engine, err := scoring.NewEngine(engineCfg, resume.NewKeywordAligner())
	if err != nil {
		return err
	}

	answer := scoreAnswer
	if scoreVoice && strings.TrimSpace(answer) == "" {
		answer = cfg.Interview.VoicePlaceholder
	}

	skills := resume.NormalizeSkills(scoreSkills)
	result := engine.ScoreAnswer(answer, scoreQuestion, scoreTime, skills)

	return writeJSON(cmd.OutOrStdout(), scoreOutput{
		Scores:        result.Map(),
		Level:         engine.Classify(result.TotalScore),
		MatchedSkills: resume.MatchedSkills(answer, skills),
	})
}
