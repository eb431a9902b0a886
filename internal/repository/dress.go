package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type DressRepository struct {
	db *gorm.DB
}

func NewDressRepository(db *gorm.DB) *DressRepository {
	return &DressRepository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, image_id ASC")
}

// Browse returns one page of active dresses matching f, with the total match count
func (r *DressRepository) Browse(ctx context.Context, f dto.CatalogFilter) ([]model.Dress, int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "BrowseDresses")

	logger.DebugWithContext(ctx, "Browsing dresses").
		Int("page", f.Page).
		Int("size", f.Size).
		String("sort_by", string(f.SortBy)).
		String("search", f.Search).
		Log()

	// Check if context is cancelled
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	query := conn(ctx, r.db).Model(&model.Dress{})
	for _, c := range DressConditions(f) {
		query = query.Where(c.Query, c.Args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count dresses").
			Err(err).
			Log()
		return nil, 0, err
	}

	var dresses []model.Dress
	err := query.
		Preload("Category").
		Preload("Images", orderedImages).
		Preload("Variants.StockItem.StockLevel").
		Order(DressOrder(f.SortBy)).
		Limit(f.Size).
		Offset(f.Page * f.Size).
		Find(&dresses).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch dresses").
			Int("page", f.Page).
			Int("size", f.Size).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.InfoWithContext(ctx, "Dresses retrieved successfully").
		Int64("total", total).
		Int("returned_count", len(dresses)).
		Duration(time.Since(start)).
		Log()

	return dresses, total, nil
}

// GetByID loads a dress with its category regardless of its active flag
func (r *DressRepository) GetByID(ctx context.Context, id uint) (*model.Dress, error) {
	var dress model.Dress
	if err := conn(ctx, r.db).Preload("Category").Where("dress_id = ?", id).First(&dress).Error; err != nil {
		return nil, err
	}
	return &dress, nil
}

// GetDetail loads a dress with variants, their stock and ordered images
func (r *DressRepository) GetDetail(ctx context.Context, id uint) (*model.Dress, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetDressDetail")

	start := time.Now()
	var dress model.Dress
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Images", orderedImages).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("variant_id ASC") }).
		Preload("Variants.StockItem.StockLevel").
		Where("dress_id = ?", id).
		First(&dress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to load dress detail").
				Uint("dress_id", id).
				Err(err).
				Log()
		}
		return nil, err
	}

	logger.DebugWithContext(ctx, "Dress detail loaded").
		Uint("dress_id", id).
		Int("variants", len(dress.Variants)).
		Int("images", len(dress.Images)).
		Duration(time.Since(start)).
		Log()
	return &dress, nil
}

func (r *DressRepository) Create(ctx context.Context, dress *model.Dress) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateDress")

	if err := conn(ctx, r.db).Omit("Category", "Variants", "Images").Create(dress).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create dress").
			String("name", dress.Name).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *DressRepository) Update(ctx context.Context, dress *model.Dress) error {
	return conn(ctx, r.db).Omit("Category", "Variants", "Images").Save(dress).Error
}

func (r *DressRepository) Deactivate(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Model(&model.Dress{}).Where("dress_id = ?", id).Update("is_active", false).Error
}

type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) ExistsForDress(ctx context.Context, dressID uint, size, color string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.DressVariant{}).
		Where("dress_id = ? AND size = ? AND color = ?", dressID, size, color).
		Count(&count).Error
	return count > 0, err
}

func (r *VariantRepository) GetByID(ctx context.Context, dressID, variantID uint) (*model.DressVariant, error) {
	var variant model.DressVariant
	err := conn(ctx, r.db).
		Preload("StockItem.StockLevel").
		Where("variant_id = ? AND dress_id = ?", variantID, dressID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *VariantRepository) Create(ctx context.Context, variant *model.DressVariant) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateVariant")

	if err := conn(ctx, r.db).Omit("StockItem").Create(variant).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create variant").
			Uint("dress_id", variant.DressID).
			String("size", variant.Size).
			String("color", variant.Color).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *VariantRepository) UpdateStatus(ctx context.Context, variantID uint, status model.VariantStatus) error {
	return conn(ctx, r.db).Model(&model.DressVariant{}).
		Where("variant_id = ?", variantID).
		Update("status", string(status)).Error
}

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.StockItem{}).Where("sku = ?", sku).Count(&count).Error
	return count > 0, err
}

// CreateItem inserts the item and its level
func (r *StockRepository) CreateItem(ctx context.Context, item *model.StockItem, level *model.StockLevel) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateStockItem")

	db := conn(ctx, r.db)
	if err := db.Omit("StockLevel").Create(item).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create stock item").
			String("sku", item.SKU).
			Err(err).
			Log()
		return err
	}

	level.StockItemID = item.StockItemID
	if err := db.Create(level).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create stock level").
			Uint("stock_item_id", item.StockItemID).
			Err(err).
			Log()
		return err
	}
	item.StockLevel = level
	return nil
}

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *model.DressImage) error {
	return conn(ctx, r.db).Create(image).Error
}

func (r *ImageRepository) GetByID(ctx context.Context, dressID, imageID uint) (*model.DressImage, error) {
	var image model.DressImage
	if err := conn(ctx, r.db).Where("image_id = ? AND dress_id = ?", imageID, dressID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// CountByURL counts image rows pointing at url
func (r *ImageRepository) CountByURL(ctx context.Context, url string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.DressImage{}).Where("url = ?", url).Count(&count).Error
	return count, err
}

func (r *ImageRepository) Delete(ctx context.Context, imageID uint) error {
	return conn(ctx, r.db).Where("image_id = ?", imageID).Delete(&model.DressImage{}).Error
}
