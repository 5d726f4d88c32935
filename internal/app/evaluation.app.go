package app

import (
	"context"
	"sort"
	"time"

	"traderscout/config"
	"traderscout/internal/calculator"
	"traderscout/internal/domain"
	"traderscout/internal/service"
	"traderscout/internal/util"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// FillProvider fetches raw fills for an account. Implementations (venue
// API clients, caches) live outside the engine; the engine only tolerates
// their failures.
type FillProvider interface {
	Fills(ctx context.Context, accountID string) ([]domain.Fill, error)
}

// EvaluationHandler composes the per-trader pipeline: normalize fills,
// compute drawdown and coin performance, validate reliability, score
// against a risk profile. Each evaluation is a pure function of its
// request, so batches can fan out freely.
type EvaluationHandler struct {
	ValidationService service.ValidationService
	ScoringService    service.ScoringService
	Config            *config.Config
	Log               *zap.SugaredLogger

	// Now supplies the reference clock for requests without AsOf.
	Now func() time.Time
}

func NewEvaluationHandler(cfg *config.Config, log *zap.SugaredLogger) *EvaluationHandler {
	return &EvaluationHandler{
		ValidationService: service.NewValidationService(cfg.Reliability),
		ScoringService:    service.NewScoringService(cfg.Scoring),
		Config:            cfg,
		Log:               log,
		Now:               time.Now,
	}
}

// EvaluateTrader runs the full pipeline for one account and always
// returns a complete result. An unrecognized risk profile falls back to
// moderate rather than failing the evaluation.
func (h *EvaluationHandler) EvaluateTrader(ctx context.Context, req domain.EvaluationRequest) domain.EvaluationResult {
	profile := req.RiskProfile
	if _, err := domain.ParseRiskProfile(string(profile)); err != nil {
		h.Log.Warnw("falling back to moderate profile",
			"accountId", req.AccountID, "requested", string(req.RiskProfile))
		profile = domain.RiskProfile_Moderate
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = h.Now()
	}

	fills := calculator.NormalizeFills(req.Fills)
	maxDrawdownPct := calculator.MaxDrawdown(fills)

	topCoinsLimit := req.TopCoinsLimit
	if topCoinsLimit <= 0 {
		topCoinsLimit = h.Config.Engine.TopCoinsLimit
	}
	topCoins := calculator.TopCoinPerformance(fills, topCoinsLimit)

	validation := h.ValidationService.Validate(fills, req.Leaderboard.Pnl, asOf)

	roiWindows := domain.RoiWindows(req.Windows)
	if len(roiWindows) == 0 {
		roiWindows = []float64{req.Leaderboard.RoiPct()}
	}
	scoreInput := service.ScoreInput{
		RoiPct:         req.Leaderboard.RoiPct(),
		RoiWindows:     roiWindows,
		MaxDrawdownPct: maxDrawdownPct,
		WinRatePct:     validation.Metrics.WinRatePct,
		DaysActive:     validation.Metrics.AccountAgeDays,
		Copiers:        req.Leaderboard.Copiers,
	}

	// profile is known valid here, so neither call can fail
	score, _ := h.ScoringService.Score(scoreInput, profile)
	findings, _ := h.ScoringService.ProfileFit(scoreInput, profile)

	return domain.EvaluationResult{
		AccountID:       req.AccountID,
		RiskProfile:     profile,
		Validation:      validation,
		MaxDrawdownPct:  maxDrawdownPct,
		TopCoins:        topCoins,
		Score:           score,
		ProfileFindings: findings,
	}
}

// EvaluateBatch fans EvaluateTrader out over a worker pool bounded by the
// configured concurrency. Traders are independent: one trader's bad data
// never fails the batch. Results come back ranked. On ctx cancellation the
// ranked results collected so far are returned and unfinished traders are
// simply not awaited.
func (h *EvaluationHandler) EvaluateBatch(ctx context.Context, requests []domain.EvaluationRequest) []domain.EvaluationResult {
	if len(requests) == 0 {
		return []domain.EvaluationResult{}
	}

	inputCh := make(chan domain.EvaluationRequest, len(requests))
	resultCh := make(chan domain.EvaluationResult, len(requests))
	for _, req := range requests {
		inputCh <- req
	}
	close(inputCh)

	numGoroutines := h.Config.Engine.BatchConcurrency
	if numGoroutines > len(requests) {
		numGoroutines = len(requests)
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case req, ok := <-inputCh:
					if !ok {
						return
					}
					resultCh <- h.EvaluateTrader(ctx, req)
				}
			}
		}()
	}

	results := make([]domain.EvaluationResult, 0, len(requests))
	for range requests {
		select {
		case <-ctx.Done():
			RankEvaluations(results)
			return results
		case res := <-resultCh:
			results = append(results, res)
		}
	}

	RankEvaluations(results)
	return results
}

// EvaluateAccounts resolves fills through the provider before delegating
// to EvaluateBatch. A fetch failure for one account downgrades that
// account to an empty fill set ("no trade history") instead of aborting
// the batch; retries belong to the provider.
func (h *EvaluationHandler) EvaluateAccounts(ctx context.Context, provider FillProvider, requests []domain.EvaluationRequest) []domain.EvaluationResult {
	resolved := make([]domain.EvaluationRequest, 0, len(requests))
	for _, req := range requests {
		fills, err := provider.Fills(ctx, req.AccountID)
		if err != nil {
			h.Log.Warnw("fill fetch failed, evaluating with empty history",
				"accountId", req.AccountID, "error", err)
			fills = nil
		}
		req.Fills = fills
		resolved = append(resolved, req)
	}
	return h.EvaluateBatch(ctx, resolved)
}

// RankEvaluations orders results in place: total score descending, then
// ROI score, then win-rate score, then the longer track record, then
// account id for full determinism.
func RankEvaluations(results []domain.EvaluationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score.TotalScore != b.Score.TotalScore {
			return a.Score.TotalScore > b.Score.TotalScore
		}
		if a.Score.RoiScore != b.Score.RoiScore {
			return a.Score.RoiScore > b.Score.RoiScore
		}
		if a.Score.WinRateScore != b.Score.WinRateScore {
			return a.Score.WinRateScore > b.Score.WinRateScore
		}
		if a.Validation.Metrics.AccountAgeDays != b.Validation.Metrics.AccountAgeDays {
			return a.Validation.Metrics.AccountAgeDays > b.Validation.Metrics.AccountAgeDays
		}
		return a.AccountID < b.AccountID
	})
}

// BatchStats summarizes the score distribution of a batch.
type BatchStats struct {
	TradersEvaluated int     `json:"tradersEvaluated"`
	ReliableCount    int     `json:"reliableCount"`
	AvgScore         float64 `json:"avgScore"`
	MaxScore         float64 `json:"maxScore"`
	MinScore         float64 `json:"minScore"`
}

// BatchReport is the batch-analysis output: ranked evaluations plus
// distribution stats, stamped with a run id.
type BatchReport struct {
	RunID       uuid.UUID                 `json:"runId"`
	AsOf        time.Time                 `json:"asOf"`
	RiskProfile domain.RiskProfile        `json:"riskProfile"`
	Stats       BatchStats                `json:"stats"`
	Results     []domain.EvaluationResult `json:"results"`
}

// Report wraps ranked results into a BatchReport.
func (h *EvaluationHandler) Report(results []domain.EvaluationResult, profile domain.RiskProfile, asOf time.Time) BatchReport {
	report := BatchReport{
		RunID:       uuid.New(),
		AsOf:        asOf,
		RiskProfile: profile,
		Stats:       BatchStats{TradersEvaluated: len(results)},
		Results:     results,
	}
	if len(results) == 0 {
		return report
	}

	scores := make([]float64, 0, len(results))
	for _, r := range results {
		scores = append(scores, r.Score.TotalScore)
		if r.Validation.IsReliable {
			report.Stats.ReliableCount++
		}
	}
	// these cannot fail on a non-empty series
	avg, _ := stats.Mean(scores)
	max, _ := stats.Max(scores)
	min, _ := stats.Min(scores)
	report.Stats.AvgScore = util.Round2(avg)
	report.Stats.MaxScore = max
	report.Stats.MinScore = min
	return report
}
