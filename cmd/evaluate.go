package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	evaluateInput  string
	evaluatePretty bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a single trader request and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		handler, log := newHandler(cfg)

		data, err := os.ReadFile(evaluateInput)
		if err != nil {
			return fmt.Errorf("failed to read request: %w", err)
		}
		var raw rawEvaluationRequest
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to decode request: %w", err)
		}

		result := handler.EvaluateTrader(cmd.Context(), raw.resolve(log))
		return writeJSON("", result, evaluatePretty)
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateInput, "input", "i", "", "path to evaluation request JSON")
	evaluateCmd.Flags().BoolVar(&evaluatePretty, "pretty", false, "indent the JSON output")
	_ = evaluateCmd.MarkFlagRequired("input")
}
