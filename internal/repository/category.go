package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// CategoryCount is a category with the number of its active dresses
type CategoryCount struct {
	CategoryID uint
	Name       string
	DressCount int64
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListWithDressCount(ctx context.Context) ([]CategoryCount, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "ListCategories")

	start := time.Now()
	var rows []CategoryCount
	err := conn(ctx, r.db).Model(&model.Category{}).
		Select("categories.category_id, categories.name, COUNT(dresses.dress_id) AS dress_count").
		Joins("LEFT JOIN dresses ON dresses.category_id = categories.category_id AND dresses.is_active = ?", true).
		Group("categories.category_id, categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list categories").
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Categories listed").
		Int("count", len(rows)).
		Duration(time.Since(start)).
		Log()
	return rows, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := conn(ctx, r.db).Where("category_id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName reports whether another category already uses name.
// excludeID skips the category being renamed; pass 0 on create.
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(&model.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("category_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountDresses counts every dress in the category, active or not
func (r *CategoryRepository) CountDresses(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.Dress{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) CountActiveDresses(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.Dress{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateCategory")

	if err := conn(ctx, r.db).Create(category).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create category").
			String("name", category.Name).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return conn(ctx, r.db).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteCategory")

	if err := conn(ctx, r.db).Where("category_id = ?", id).Delete(&model.Category{}).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete category").
			Uint("category_id", id).
			Err(err).
			Log()
		return err
	}
	return nil
}
