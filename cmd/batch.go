package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"traderscout/internal/app"
	"traderscout/internal/domain"
	"traderscout/pkg/copytrade"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	batchInput    string
	batchProfile  string
	batchTop      int
	batchOutput   string
	batchCSV      string
	batchTable    bool
	batchFetchURL string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a batch of trader requests and rank the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		handler, log := newHandler(cfg)

		data, err := os.ReadFile(batchInput)
		if err != nil {
			return fmt.Errorf("failed to read batch input: %w", err)
		}
		var raws []rawEvaluationRequest
		if err := json.Unmarshal(data, &raws); err != nil {
			return fmt.Errorf("failed to decode batch input: %w", err)
		}

		profile := domain.RiskProfile_Moderate
		if batchProfile != "" {
			profile, err = domain.ParseRiskProfile(batchProfile)
			if err != nil {
				return err
			}
		}

		requests := make([]domain.EvaluationRequest, 0, len(raws))
		for _, raw := range raws {
			req := raw.resolve(log)
			if batchProfile != "" || req.RiskProfile == "" {
				req.RiskProfile = profile
			}
			requests = append(requests, req)
		}

		var results []domain.EvaluationResult
		if batchFetchURL != "" {
			provider := copytrade.Client{
				HttpClient: &http.Client{Timeout: 30 * time.Second},
				BaseUrl:    batchFetchURL,
				ApiKey:     os.Getenv("COPYTRADE_API_KEY"),
			}
			results = handler.EvaluateAccounts(cmd.Context(), provider, requests)
		} else {
			results = handler.EvaluateBatch(cmd.Context(), requests)
		}
		if batchTop > 0 && len(results) > batchTop {
			results = results[:batchTop]
		}
		report := handler.Report(results, profile, handler.Now().UTC())

		log.Infow("batch evaluation complete",
			"runId", report.RunID,
			"traders", report.Stats.TradersEvaluated,
			"reliable", report.Stats.ReliableCount,
			"avgScore", report.Stats.AvgScore,
		)

		if batchTable {
			printRankingTable(report)
		} else {
			printRankingSummary(report)
		}
		if batchCSV != "" {
			if err := exportCSV(batchCSV, report); err != nil {
				return err
			}
		}
		if batchOutput != "" {
			return writeJSON(batchOutput, report, true)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "path to JSON array of evaluation requests")
	batchCmd.Flags().StringVar(&batchProfile, "profile", "", "risk profile override: conservative|moderate|aggressive")
	batchCmd.Flags().IntVar(&batchTop, "top", 0, "keep only the top N ranked traders")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "write the full report JSON to this file")
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "write the ranking CSV to this file")
	batchCmd.Flags().BoolVar(&batchTable, "table", false, "print the full ranking table")
	batchCmd.Flags().StringVar(&batchFetchURL, "fetch-url", "", "fetch fills from this venue API instead of the input file (COPYTRADE_API_KEY for auth)")
	_ = batchCmd.MarkFlagRequired("input")
}

func printRankingSummary(report app.BatchReport) {
	fmt.Printf("[%s] %d traders — reliable:%d avg:%.2f max:%.2f min:%.2f\n",
		report.RiskProfile, report.Stats.TradersEvaluated, report.Stats.ReliableCount,
		report.Stats.AvgScore, report.Stats.MaxScore, report.Stats.MinScore)

	shown := len(report.Results)
	if shown > 5 {
		shown = 5
	}
	for i := 0; i < shown; i++ {
		r := report.Results[i]
		fmt.Printf("%d. %s score:%.2f %s (%s)\n",
			i+1, r.AccountID, r.Score.TotalScore, r.Score.Classification, r.Score.Recommendation)
	}
}

func printRankingTable(report app.BatchReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Account", "Score", "Class", "Reliable", "MaxDD%", "WR%", "Recommendation", "Flags")

	for i, r := range report.Results {
		reliable := "yes"
		if !r.Validation.IsReliable {
			reliable = "no"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			r.AccountID,
			fmt.Sprintf("%.2f", r.Score.TotalScore),
			string(r.Score.Classification),
			reliable,
			fmt.Sprintf("%.1f", r.MaxDrawdownPct),
			fmt.Sprintf("%.1f", r.Validation.Metrics.WinRatePct),
			r.Score.Recommendation,
			strings.Join(r.Validation.Reasons, "; "),
		)
	}
	table.Render()
}

type rankingRow struct {
	Rank           int     `csv:"rank"`
	AccountID      string  `csv:"account_id"`
	TotalScore     float64 `csv:"total_score"`
	Classification string  `csv:"classification"`
	Recommendation string  `csv:"recommendation"`
	Reliable       bool    `csv:"reliable"`
	MaxDrawdownPct float64 `csv:"max_drawdown_pct"`
	WinRatePct     float64 `csv:"win_rate_pct"`
	RoiScore       float64 `csv:"roi_score"`
	TotalTrades    int     `csv:"total_trades"`
	AccountAgeDays int     `csv:"account_age_days"`
	Reasons        string  `csv:"reasons"`
}

func exportCSV(path string, report app.BatchReport) error {
	rows := make([]rankingRow, 0, len(report.Results))
	for i, r := range report.Results {
		rows = append(rows, rankingRow{
			Rank:           i + 1,
			AccountID:      r.AccountID,
			TotalScore:     r.Score.TotalScore,
			Classification: string(r.Score.Classification),
			Recommendation: r.Score.Recommendation,
			Reliable:       r.Validation.IsReliable,
			MaxDrawdownPct: r.MaxDrawdownPct,
			WinRatePct:     r.Validation.Metrics.WinRatePct,
			RoiScore:       r.Score.RoiScore,
			TotalTrades:    r.Validation.Metrics.TotalTrades,
			AccountAgeDays: r.Validation.Metrics.AccountAgeDays,
			Reasons:        strings.Join(r.Validation.Reasons, "; "),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("failed to write ranking CSV: %w", err)
	}
	return nil
}
