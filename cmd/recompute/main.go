package main

import (
	"context"
	"flag"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"prop-risk-engine/internal/config"
	"prop-risk-engine/internal/domain"
	"prop-risk-engine/internal/pipeline"
	chstore "prop-risk-engine/internal/storage/clickhouse"
	"prop-risk-engine/internal/storage/migrations"
	pgstore "prop-risk-engine/internal/storage/postgres"
)

func main() {
	// Parse flags
	accountID := flag.String("account-id", "", "Account ID to recompute (required)")
	computedAt := flag.Int64("computed-at", 0, "Snapshot timestamp in Unix seconds (defaults to now)")

	// Account state. NaN marks a flag as omitted so that a genuine zero
	// (a fully blown account) stays expressible.
	initialBalance := flag.Float64("initial-balance", math.NaN(), "Balance at account inception (defaults to INITIAL_BALANCE)")
	initialEquity := flag.Float64("initial-equity", math.NaN(), "Equity at account inception (defaults to initial balance)")
	balance := flag.Float64("balance", math.NaN(), "Current balance (defaults to initial balance)")
	equity := flag.Float64("equity", math.NaN(), "Current equity (defaults to balance)")
	startOfDayEquity := flag.Float64("start-of-day-equity", math.NaN(), "Equity at start of trading day (defaults to equity)")
	peakBalance := flag.Float64("peak-balance", math.NaN(), "Highest observed balance (defaults to balance)")
	peakEquity := flag.Float64("peak-equity", math.NaN(), "Highest observed equity (defaults to equity)")
	bestDayPct := flag.Float64("best-day-pct", 0, "Best single-day profit in percent points")
	avgDurationSec := flag.Float64("avg-trade-duration-sec", 0, "Average trade duration in seconds")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	if *accountID == "" {
		logger.Fatal().Msg("--account-id is required")
	}
	if cfg.PostgresDSN == "" {
		logger.Fatal().Msg("POSTGRES_DSN is required")
	}
	if cfg.ClickhouseDSN == "" {
		logger.Fatal().Msg("CLICKHOUSE_DSN is required")
	}
	drawdownModel := domain.DrawdownModel(cfg.DrawdownModel)
	if !drawdownModel.Valid() {
		logger.Fatal().Str("model", cfg.DrawdownModel).Msg("invalid DRAWDOWN_MODEL")
	}

	if math.IsNaN(*initialBalance) {
		*initialBalance = cfg.InitialBalance
	}
	metrics := resolveMetrics(*initialBalance, *initialEquity, *balance, *equity,
		*startOfDayEquity, *peakBalance, *peakEquity, *bestDayPct, *avgDurationSec)

	if *computedAt == 0 {
		*computedAt = time.Now().Unix()
	}

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

	// PostgreSQL for executions, rulebooks and snapshots
	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to postgres")
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("run postgres migrations")
	}

	// ClickHouse for the equity series
	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickhouseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("run clickhouse migrations")
	}
	defer conn.Close()

	runner := pipeline.NewRunner(pipeline.Options{
		ExecutionStore:    pgstore.NewExecutionStore(pool),
		RulebookStore:     pgstore.NewRulebookStore(pool),
		SnapshotStore:     pgstore.NewSnapshotStore(pool),
		EquitySeriesStore: chstore.NewEquitySeriesStore(conn),
		Logger:            &logger,
	})

	runCtx, cancelRun := context.WithTimeout(ctx, time.Duration(cfg.RequestTimeout)*time.Second)
	defer cancelRun()

	result, err := runner.Run(runCtx, *accountID, cfg.FirmID, metrics, drawdownModel, *computedAt)
	if err != nil {
		logger.Fatal().Err(err).Msg("recompute account")
	}

	logger.Info().
		Str("account_id", *accountID).
		Str("snapshot_id", result.Snapshot.SnapshotID).
		Int("trades", len(result.Trades)).
		Int("equity_points", len(result.EquityCurve)).
		Msg("recompute complete")
}

// resolveMetrics fills the cascade of defaults for omitted (NaN) values:
// equity falls back to balance, balance to the initial balance, and so on.
// An explicit zero is kept as supplied.
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
