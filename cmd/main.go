package main

import (
	"encoding/json"
	"fmt"
	"os"

	"traderscout/config"
	"traderscout/internal/app"
	"traderscout/internal/calculator"
	"traderscout/internal/domain"
	"traderscout/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "traderscout",
	Short: "Trader reliability validation and risk scoring engine",
	Long: `traderscout turns already-fetched trade executions and leaderboard
snapshots into profile-relative trustworthiness and performance scores.
It fetches, stores, and renders nothing itself.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults apply if omitted)")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(batchCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func newHandler(cfg *config.Config) (*app.EvaluationHandler, *zap.SugaredLogger) {
	log := logger.NewWithLevel(cfg.Log.Level)
	return app.NewEvaluationHandler(cfg, log), log
}

// rawEvaluationRequest defers fill decoding so malformed fill records can
// be dropped individually instead of failing the whole request.
type rawEvaluationRequest struct {
	domain.EvaluationRequest
	Fills json.RawMessage `json:"fills"`
}

func (r rawEvaluationRequest) resolve(log *zap.SugaredLogger) domain.EvaluationRequest {
	req := r.EvaluationRequest
	if len(r.Fills) == 0 {
		return req
	}
	fills, dropped, err := calculator.ParseFills(r.Fills)
	if err != nil {
		log.Warnw("fills payload is not a JSON array, evaluating with empty history",
			"accountId", req.AccountID, "error", err)
		return req
	}
	if dropped > 0 {
		log.Infow("dropped malformed fills", "accountId", req.AccountID, "dropped", dropped)
	}
	req.Fills = fills
	return req
}

func writeJSON(path string, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
