package pricing

import (
	"context"
	"fmt"

	"price-manager/core/reconcile"
	"price-manager/feature/pricing/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed implementation of reconcile.CatalogStore.
type Store struct {
	db *gorm.DB
}

// NewStore creates a catalog store over the given database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListCatalog returns a snapshot of all products, loading only the
// columns the matcher needs.
func (s *Store) ListCatalog(ctx context.Context) ([]reconcile.CatalogRecord, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Select("id", "article", "code", "name", "current_price").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	records := make([]reconcile.CatalogRecord, len(products))
	for i, p := range products {
		records[i] = reconcile.CatalogRecord{
			ID:           p.ID,
			Article:      p.Article,
			Code:         p.Code,
			Name:         p.Name,
			CurrentPrice: p.CurrentPrice,
		}
	}
	return records, nil
}

// UpsertPrices applies one chunk of price updates, keyed by product id.
// The existing article/code/name are written back unchanged to satisfy
// the table's non-null constraints; repeating a run with identical rows
// only refreshes updated_at.
func (s *Store) UpsertPrices(ctx context.Context, rows []reconcile.UpsertRow) error {
	if len(rows) == 0 {
		return nil
	}

	products := make([]models.Product, len(rows))
	for i, row := range rows {
		products[i] = models.Product{
			ID:           row.ID,
			Article:      row.Article,
			Code:         row.Code,
			Name:         row.Name,
			CurrentPrice: row.Price,
			UpdatedAt:    row.UpdatedAt,
		}
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"article", "code", "name", "current_price", "updated_at"}),
		}).
		Create(&products).Error
	if err != nil {
		return fmt.Errorf("failed to upsert prices: %w", err)
	}
	return nil
}

// AppendHistory inserts price history rows. Append-only: no updates, no
// deletes.
func (s *Store) AppendHistory(ctx context.Context, rows []reconcile.HistoryEntry) error {
	if len(rows) == 0 {
		return nil
	}

	entries := make([]models.PriceHistory, len(rows))
	for i, row := range rows {
		entries[i] = models.PriceHistory{
			ID:        uuid.NewString(),
			ProductID: row.RecordID,
			Price:     row.Price,
			Source:    row.Source,
			CreatedAt: row.CreatedAt,
		}
	}

	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to append price history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent price changes for one product.
func (s *Store) ListHistory(ctx context.Context, productID string, limit int) ([]models.PriceHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []models.PriceHistory
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	return entries, nil
}
