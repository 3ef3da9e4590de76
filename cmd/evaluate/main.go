package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/pipeline"
	"prop-risk-engine/internal/reporting"
	"prop-risk-engine/internal/storage/memory"
)

func main() {
	// Parse flags
	executionsPath := flag.String("executions", "", "Path to executions JSON file (required)")
	rulebookPath := flag.String("rulebook", "", "Path to rulebook JSON file (optional)")
	accountID := flag.String("account-id", "", "Account ID (required)")
	firmID := flag.String("firm-id", "default", "Firm ID owning the rulebook")
	model := flag.String("model", "trailing_equity", "Drawdown model: static_balance, static_equity, trailing_balance, trailing_equity")

	// Account state. NaN marks a flag as omitted so that a genuine zero
	// (a fully blown account) stays expressible.
	initialBalance := flag.Float64("initial-balance", 100000, "Balance at account inception")
	initialEquity := flag.Float64("initial-equity", math.NaN(), "Equity at account inception (defaults to initial balance)")
	balance := flag.Float64("balance", math.NaN(), "Current balance (defaults to initial balance)")
	equity := flag.Float64("equity", math.NaN(), "Current equity (defaults to balance)")
	startOfDayEquity := flag.Float64("start-of-day-equity", math.NaN(), "Equity at start of trading day (defaults to equity)")
	peakBalance := flag.Float64("peak-balance", math.NaN(), "Highest observed balance (defaults to balance)")
	peakEquity := flag.Float64("peak-equity", math.NaN(), "Highest observed equity (defaults to equity)")
	bestDayPct := flag.Float64("best-day-pct", 0, "Best single-day profit in percent points")
	avgDurationSec := flag.Float64("avg-trade-duration-sec", 0, "Average trade duration in seconds")

	// Output
	outputDir := flag.String("output-dir", "", "Write report.md, trades.csv and evaluations.csv to this directory")
	outputJSON := flag.Bool("json", false, "Print the compliance snapshot as JSON")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *executionsPath == "" {
		logger.Fatal().Msg("--executions is required")
	}
	if *accountID == "" {
		logger.Fatal().Msg("--account-id is required")
	}
	drawdownModel := domain.DrawdownModel(*model)
	if !drawdownModel.Valid() {
		logger.Fatal().Str("model", *model).Msg("invalid drawdown model")
	}

	metrics := resolveMetrics(*initialBalance, *initialEquity, *balance, *equity,
		*startOfDayEquity, *peakBalance, *peakEquity, *bestDayPct, *avgDurationSec)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	// Memory stores, seeded from the input files
	executionStore := memory.NewExecutionStore()
	rulebookStore := memory.NewRulebookStore()

	records, err := loadExecutions(*executionsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load executions")
	}
	if err := executionStore.InsertBulk(ctx, *accountID, records); err != nil {
		logger.Fatal().Err(err).Msg("seed execution store")
	}

	if *rulebookPath != "" {
		rules, err := loadRulebook(*rulebookPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("load rulebook")
		}
		if err := rulebookStore.Put(ctx, *firmID, rules); err != nil {
			logger.Fatal().Err(err).Msg("seed rulebook store")
		}
	}

	runner := pipeline.NewRunner(pipeline.Options{
		ExecutionStore: executionStore,
		RulebookStore:  rulebookStore,
		SnapshotStore:  memory.NewSnapshotStore(),
		Logger:         &logger,
	})

	result, err := runner.Run(ctx, *accountID, *firmID, metrics, drawdownModel, time.Now().Unix())
	if err != nil {
		logger.Fatal().Err(err).Msg("evaluate account")
	}

	report := reporting.NewGenerator().Generate(*accountID, result)

	if *outputJSON {
		data, err := json.MarshalIndent(result.Snapshot, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("marshal snapshot")
		}
		fmt.Println(string(data))
	} else {
		printSummary(report)
	}

	if *outputDir != "" {
		if err := writeArtifacts(*outputDir, report); err != nil {
			logger.Fatal().Err(err).Msg("write report artifacts")
		}
		logger.Info().Str("dir", *outputDir).Msg("report artifacts written")
	}
}

// resolveMetrics fills the cascade of defaults for omitted (NaN) values:
// equity falls back to balance, balance to the initial balance, and so on.
// Keeps the common "fresh account" invocation down to a single flag while
// still accepting an explicit zero.
func resolveMetrics(initialBalance, initialEquity, balance, equity, startOfDay, peakBalance, peakEquity, bestDayPct, avgDurationSec float64) domain.AccountMetrics {
	if math.IsNaN(initialEquity) {
		initialEquity = initialBalance
	}
	if math.IsNaN(balance) {
		balance = initialBalance
	}
	if math.IsNaN(equity) {
		equity = balance
	}
	if math.IsNaN(startOfDay) {
		startOfDay = equity
	}
	if math.IsNaN(peakBalance) {
		peakBalance = balance
	}
	if math.IsNaN(peakEquity) {
		peakEquity = equity
	}
	return domain.AccountMetrics{
		InitialBalance:      initialBalance,
		InitialEquity:       initialEquity,
		Balance:             balance,
		Equity:              equity,
		StartOfDayEquity:    startOfDay,
		PeakBalance:         peakBalance,
		PeakEquity:          peakEquity,
		BestDayProfitPct:    bestDayPct,
		AvgTradeDurationSec: avgDurationSec,
	}
}

func loadExecutions(path string) ([]domain.RawExecutionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []domain.RawExecutionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func loadRulebook(path string) ([]domain.RuleDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rules []domain.RuleDefinition
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rules, nil
}

func printSummary(report *reporting.Report) {
	fmt.Printf("Account %s: %d trades (%d synthesized), net profit %.2f\n",
		report.AccountID, report.TradeSummary.TotalTrades,
		report.TradeSummary.SynthesizedTrades, report.TradeSummary.NetProfit)
	fmt.Printf("Max drawdown: %.4f%% (%.2f USD, model %s)\n",
		report.Drawdown.MaxPeakToTroughPct, report.Drawdown.MaxPeakToTroughUsd, report.Drawdown.Model)
	for _, eval := range report.RuleEvaluations {
		fmt.Printf("  [%s] %s: %s (used %.2f, remaining %.2f USD)\n",
			eval.Zone, eval.RuleID, eval.Label, eval.UsedRatio, eval.RemainingAbsolute)
	}
	fmt.Printf("Headroom: daily loss %.2f USD, max drawdown %.2f USD\n",
		report.Headroom.DailyLossRemainingUsd, report.Headroom.MaxDrawdownRemainingUsd)
}

func writeArtifacts(dir string, report *reporting.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := map[string]string{
		"report.md":       reporting.RenderMarkdown(report),
		"trades.csv":      reporting.RenderTradesCSV(report.Trades),
		"evaluations.csv": reporting.RenderEvaluationsCSV(report.RuleEvaluations),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
