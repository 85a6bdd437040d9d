package pricing

import (
	"price-manager/core/feed"
	"price-manager/core/reconcile"
	"price-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature wires the pricing feature: feed parser, catalog store,
// optional snapshot archiver and the reconciliation engine behind them.
// The archiver client may be nil, which disables snapshot archiving.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, feedCfg feed.Config, reconcileCfg reconcile.Config) *Feature {
	store := NewStore(db)
	parser := feed.NewParser(feedCfg, logger)

	var archiver reconcile.Archiver
	if client != nil {
		archiver = NewSnapshotArchiver(client, bucket)
	}

	engine := reconcile.NewEngine(parser, store, archiver, logger, reconcileCfg)
	svc := NewService(engine, store, logger, feedCfg.URL)
	h := NewHandler(svc)

	return &Feature{
		service: svc,
		handler: h,
		enabled: db != nil && feedCfg.URL != "",
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "pricing"
}

// IsEnabled checks if the feature is enabled. The feature requires a
// database connection and a configured feed URL.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
