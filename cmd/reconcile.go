package cmd

import (
	"context"
	"fmt"

	"price-manager/core/config"
	"price-manager/core/database"
	"price-manager/core/feed"
	"price-manager/core/logger"
	"price-manager/core/reconcile"
	"price-manager/core/storage"
	"price-manager/feature/pricing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile feed command
	feedURLFlag   string
	thresholdFlag float64
	chunkSizeFlag int
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile marketplace data against the product catalog",
}

// feedReconcileCmd runs one price feed reconciliation pass.
var feedReconcileCmd = &cobra.Command{
	Use:   "feed",
	Short: "Run one price feed reconciliation pass",
	Long: `Downloads the marketplace XML price feed, resolves each offer to a
catalog product (exact code/article match first, fuzzy name match as a
fallback) and applies the price updates in chunks with a persisted
change history.

Intended to be invoked by a scheduler; the run is idempotent, so
retrying after a failure is always safe.

Examples:
  # Use the configured feed URL
  price-manager reconcile feed

  # Override the feed URL for a one-off run
  price-manager reconcile feed --url https://marketplace.example/feed.xml`,
	RunE: runFeedReconcile,
}

func init() {
	reconcileCmd.AddCommand(feedReconcileCmd)

	feedReconcileCmd.Flags().StringVar(&feedURLFlag, "url", "", "Feed URL (overrides FEED_URL)")
	feedReconcileCmd.Flags().Float64Var(&thresholdFlag, "threshold", 0, "Fuzzy-match acceptance threshold (overrides RECONCILE_THRESHOLD)")
	feedReconcileCmd.Flags().IntVar(&chunkSizeFlag, "chunk-size", 0, "Upsert chunk size (overrides RECONCILE_CHUNK_SIZE)")

	RootCmd.AddCommand(reconcileCmd)
}

func runFeedReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flag overrides
	if feedURLFlag != "" {
		cfg.Feed.URL = feedURLFlag
	}
	if thresholdFlag > 0 {
		cfg.Reconcile.Threshold = thresholdFlag
	}
	if chunkSizeFlag > 0 {
		cfg.Reconcile.ChunkSize = chunkSizeFlag
	}

	if cfg.Feed.URL == "" {
		return fmt.Errorf("no feed URL configured; set FEED_URL or pass --url")
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Connect to the catalog database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Optional snapshot archiver
	var archiver reconcile.Archiver
	if cfg.Storage.Archive {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Snapshot storage unavailable, archiving disabled", zap.Error(err))
		} else {
			archiver = pricing.NewSnapshotArchiver(client, cfg.Storage.Bucket)
		}
	}

	parser := feed.NewParser(cfg.Feed, l)
	store := pricing.NewStore(db)
	engine := reconcile.NewEngine(parser, store, archiver, l, cfg.Reconcile)

	summary := engine.Run(ctx, cfg.Feed.URL)

	printReconcileReport(l, summary)

	if !summary.Success {
		return fmt.Errorf("reconciliation failed: %s", summary.Error)
	}
	return nil
}

// printReconcileReport logs the run summary in a scheduler-friendly form.
func printReconcileReport(l *zap.Logger, summary reconcile.Summary) {
	stats := summary.Stats

	l.Info("=== Reconciliation Report ===")
	l.Info("Matching",
		zap.Int("by_code", stats.MatchedByCode),
		zap.Int("by_article", stats.MatchedByArticle),
		zap.Int("by_fuzzy", stats.MatchedByFuzzy),
		zap.Int("unmatched", stats.Unmatched),
		zap.Int("dropped", stats.Dropped),
	)
	l.Info("Applied",
		zap.Int("updated", stats.Updated),
		zap.Int("history_written", stats.HistoryWritten),
	)

	for _, chunkErr := range summary.ChunkErrors {
		l.Warn("Chunk failed",
			zap.Int("index", chunkErr.Index),
			zap.String("error", chunkErr.Message),
		)
	}
}
