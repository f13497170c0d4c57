package main

import (
	"fmt"

	"interview-workers/pkg/questionbank"

	"github.com/spf13/cobra"
)

var validateBankCmd = &cobra.Command{
	Use:   "validate-bank",
	Short: "Validate a question bank file",
	Long:  "Loads a YAML or JSON question bank and checks ids, texts and ordering.",
	RunE:  runValidateBank,
}

var validateBankPath string

func init() {
	validateBankCmd.Flags().StringVarP(&validateBankPath, "path", "p", "", "Question bank file (required)")

	if err := validateBankCmd.MarkFlagRequired("path"); err != nil {
		panic(fmt.Sprintf("failed to mark path flag as required: %v", err))
	}

	rootCmd.AddCommand(validateBankCmd)
}

func runValidateBank(cmd *cobra.Command, _ []string) error {
	bank, err := questionbank.Load(validateBankPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: version %s, %d questions, domains: %v\n",
		validateBankPath, bank.Version, len(bank.Questions), bank.Domains())
	return nil
}
