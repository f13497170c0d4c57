package main

import (
	"fmt"
	"strings"

	"interview-workers/pkg/questionbank"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Preview the questions asked for a domain",
	RunE:  runQuestions,
}

var (
	questionsDomain string
	questionsBank   string
	questionsLimit  int
)

func init() {
	questionsCmd.Flags().StringVarP(&questionsDomain, "domain", "d", "", "Interview domain, e.g. IT, HR, Marketing (required)")
	questionsCmd.Flags().StringVarP(&questionsBank, "bank", "b", "", "Question bank file (YAML or JSON); built-in questions when empty")
	questionsCmd.Flags().IntVarP(&questionsLimit, "limit", "n", 0, "Maximum number of questions, 0 for all")

	if err := questionsCmd.MarkFlagRequired("domain"); err != nil {
		panic(fmt.Sprintf("failed to mark domain flag as required: %v", err))
	}

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	bank := questionbank.Default()
	if questionsBank != "" {
		loaded, err := questionbank.Load(questionsBank)
		if err != nil {
			return err
		}
		bank = loaded
	}

	selected := bank.Select(questionsDomain, questionsLimit)
	if len(selected) == 0 {
		return fmt.Errorf("no questions for domain %q (bank covers: %s)", questionsDomain, strings.Join(bank.Domains(), ", "))
	}
	return writeJSON(cmd.OutOrStdout(), selected)
}
