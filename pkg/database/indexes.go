package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type indexDef struct {
	name string
	sql  string
	// required indexes back invariants and fail the migration
	required bool
}

var indexes = []indexDef{
	{
		name:     "uq_customer_measurements_active",
		sql:      "CREATE UNIQUE INDEX IF NOT EXISTS uq_customer_measurements_active ON customer_measurements(customer_id) WHERE is_active",
		required: true,
	},
	{
		name:     "uq_categories_name_lower",
		sql:      "CREATE UNIQUE INDEX IF NOT EXISTS uq_categories_name_lower ON categories(LOWER(name))",
		required: true,
	},
	{
		name: "idx_dresses_active_created",
		sql:  "CREATE INDEX IF NOT EXISTS idx_dresses_active_created ON dresses(created_at DESC) WHERE is_active",
	},
	{
		name: "idx_dresses_active_order_count",
		sql:  "CREATE INDEX IF NOT EXISTS idx_dresses_active_order_count ON dresses(order_count DESC) WHERE is_active",
	},
	{
		name: "idx_dress_images_dress_order",
		sql:  "CREATE INDEX IF NOT EXISTS idx_dress_images_dress_order ON dress_images(dress_id, display_order)",
	},
	{
		name: "idx_refresh_tokens_user_active",
		sql:  "CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_active ON refresh_tokens(user_id) WHERE NOT revoked",
	},
	{
		name: "idx_orders_employee_customer",
		sql:  "CREATE INDEX IF NOT EXISTS idx_orders_employee_customer ON orders(handled_by_employee_id, customer_id)",
	},
}

// CreateIndexes adds partial, expression and composite indexes. Optional
// ones only log on failure.
func CreateIndexes(db *gorm.DB) error {
	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			if idx.required {
				return fmt.Errorf("create index %s: %w", idx.name, err)
			}
			logger.GetLogger().Warn("Failed to create index",
				zap.String("index", idx.name),
				zap.Error(err),
			)
		}
	}

	logger.GetLogger().Info("Database indexes ensured", zap.Int("count", len(indexes)))
	return nil
}
