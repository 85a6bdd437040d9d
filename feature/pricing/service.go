package pricing

import (
	"context"

	"price-manager/core/reconcile"
	"price-manager/feature/pricing/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner executes one reconciliation pass. Satisfied by
// *reconcile.Engine; narrowed to an interface for testing.
type Runner interface {
	Run(ctx context.Context, feedURL string) reconcile.Summary
}

// Service handles pricing operations: triggering reconciliation runs
// and reading price history.
type Service struct {
	runner  Runner
	store   *Store
	logger  *zap.Logger
	feedURL string

	sf singleflight.Group
}

// NewService creates a new pricing service.
func NewService(runner Runner, store *Store, logger *zap.Logger, feedURL string) *Service {
	return &Service{
		runner:  runner,
		store:   store,
		logger:  logger,
		feedURL: feedURL,
	}
}

// Reconcile runs one reconciliation pass against the configured feed.
// Concurrent callers are collapsed into a single run and all receive
// its summary; the id-keyed upserts already make overlapping runs safe,
// the singleflight just avoids doing the same work twice.
func (s *Service) Reconcile(ctx context.Context) reconcile.Summary {
	v, _, shared := s.sf.Do("reconcile", func() (any, error) {
		return s.runner.Run(ctx, s.feedURL), nil
	})

	if shared {
		s.logger.Info("Reconcile trigger joined an in-flight run")
	}
	return v.(reconcile.Summary)
}

// History returns the most recent price changes for one product.
func (s *Service) History(ctx context.Context, productID string, limit int) ([]models.PriceHistory, error) {
	return s.store.ListHistory(ctx, productID, limit)
}
