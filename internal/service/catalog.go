package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = constants.MaxSize
)

var (
	variantReorderLevel = decimal.NewFromInt(5)
	variantUnitQuantity = decimal.NewFromInt(1)
)

var (
	errDuplicateCategory = apperrors.WithMessage(apperrors.ErrEmailAlreadyExists, "Category with this name already exists")
	errDuplicateVariant  = apperrors.WithMessage(apperrors.ErrIllegalState, "Variant with this size and color already exists for this dress")
	errDuplicateSKU      = apperrors.WithMessage(apperrors.ErrIllegalState, "SKU already exists")
)

// CacheStore is satisfied by both the Redis client and the in-memory cache
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ObjectRemover deletes a stored object by its public URL, best-effort
type ObjectRemover interface {
	DeleteByURL(ctx context.Context, url string)
}

type CatalogService struct {
	tx         Transactor
	categories CategoryStore
	dresses    DressStore
	variants   VariantStore
	stock      StockStore
	images     ImageStore
	objects    ObjectRemover
	cache      CacheStore
	cacheTTL   time.Duration
}

type CatalogDeps struct {
	Tx         Transactor
	Categories CategoryStore
	Dresses    DressStore
	Variants   VariantStore
	Stock      StockStore
	Images     ImageStore
	Objects    ObjectRemover
	Cache      CacheStore
	CacheTTL   time.Duration
}

func NewCatalogService(deps CatalogDeps) *CatalogService {
	return &CatalogService{
		tx:         deps.Tx,
		categories: deps.Categories,
		dresses:    deps.Dresses,
		variants:   deps.Variants,
		stock:      deps.Stock,
		images:     deps.Images,
		objects:    deps.Objects,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
	}
}

// Categories

func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "ListCategories")

	if cached, ok := s.cachedCategories(ctx); ok {
		return cached, nil
	}

	rows, err := s.categories.ListWithDressCount(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	res := make([]dto.CategoryResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, dto.CategoryResponse{
			CategoryID: row.CategoryID,
			Name:       row.Name,
			DressCount: row.DressCount,
		})
	}

	s.storeCategories(ctx, res)
	return res, nil
}

func (s *CatalogService) cachedCategories(ctx context.Context) ([]dto.CategoryResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, found, err := s.cache.Get(ctx, constants.CacheKeyCategories)
	if err != nil {
		logger.WarnWithContext(ctx, "Category cache read failed").Err(err).Log()
		return nil, false
	}
	if !found {
		return nil, false
	}

	var res []dto.CategoryResponse
	if err := json.Unmarshal(data, &res); err != nil {
		logger.WarnWithContext(ctx, "Discarding undecodable category cache entry").Err(err).Log()
		return nil, false
	}
	logger.DebugWithContext(ctx, "Category listing served from cache").
		Int("count", len(res)).
		Log()
	return res, true
}

func (s *CatalogService) storeCategories(ctx context.Context, res []dto.CategoryResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, constants.CacheKeyCategories, data, s.cacheTTL); err != nil {
		logger.WarnWithContext(ctx, "Category cache write failed").Err(err).Log()
	}
}

// invalidate drops the cached category listing after any catalog mutation
func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.CacheKeyCategories); err != nil {
		logger.WarnWithContext(ctx, "Category cache invalidation failed").Err(err).Log()
	}
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetCategory")

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Category")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	count, err := s.categories.CountActiveDresses(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.CategoryResponse{CategoryID: category.CategoryID, Name: category.Name, DressCount: count}, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateCategory")
	name := strings.TrimSpace(req.Name)

	exists, err := s.categories.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		return nil, errDuplicateCategory
	}

	category := &model.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if isDuplicateKey(err) {
			return nil, errDuplicateCategory
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Category created").
		Uint("category_id", category.CategoryID).
		String("name", category.Name).
		Log()

	return &dto.CategoryResponse{CategoryID: category.CategoryID, Name: category.Name}, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateCategory")
	name := strings.TrimSpace(req.Name)

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Category")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	exists, err := s.categories.ExistsByName(ctx, name, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		return nil, errDuplicateCategory
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		if isDuplicateKey(err) {
			return nil, errDuplicateCategory
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)

	count, err := s.categories.CountActiveDresses(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return &dto.CategoryResponse{CategoryID: category.CategoryID, Name: category.Name, DressCount: count}, nil
}

// DeleteCategory refuses while any dress, active or not, references the category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteCategory")

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.categories.GetByID(ctx, id); err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Category")
			}
			return err
		}

		count, err := s.categories.CountDresses(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrIllegalState,
				"Cannot delete category with existing dresses. Please reassign or delete the dresses first.")
		}
		return s.categories.Delete(ctx, id)
	})
	if err != nil {
		return toDomainError(err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Category deleted").
		Uint("category_id", id).
		Log()
	return nil
}

// Dresses

// NormalizeFilter clamps paging and defaults the sort order
func NormalizeFilter(f dto.CatalogFilter) dto.CatalogFilter {
	if f.Page < 0 {
		f.Page = 0
	}
	switch {
	case f.Size <= 0:
		f.Size = defaultPageSize
	case f.Size > maxPageSize:
		f.Size = maxPageSize
	}
	if !f.SortBy.Valid() {
		f.SortBy = model.SortNewest
	}
	return f
}

func (s *CatalogService) BrowseDresses(ctx context.Context, f dto.CatalogFilter) (*dto.DressPageResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "BrowseDresses")
	f = NormalizeFilter(f)

	dresses, total, err := s.dresses.Browse(ctx, f)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	items := make([]dto.DressResponse, 0, len(dresses))
	for i := range dresses {
		items = append(items, listingResponse(&dresses[i]))
	}

	totalPages := int((total + int64(f.Size) - 1) / int64(f.Size))
	return &dto.DressPageResponse{
		Dresses:     items,
		CurrentPage: f.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    f.Size,
	}, nil
}

// GetDress returns the full detail view. Soft-deleted dresses stay readable by id.
func (s *CatalogService) GetDress(ctx context.Context, id uint) (*dto.DressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetDress")

	dress, err := s.dresses.GetDetail(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Dress")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := detailResponse(dress)
	return &resp, nil
}

func (s *CatalogService) CreateDress(ctx context.Context, req *dto.DressRequest) (*dto.DressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateDress")

	category, err := s.categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Category")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	dress := &model.Dress{
		CategoryID:         category.CategoryID,
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		BaseSalePrice:      req.BaseSalePrice,
		BaseRentalPrice:    req.BaseRentalPrice,
		AvailableForSale:   boolOr(req.AvailableForSale, true),
		AvailableForRental: boolOr(req.AvailableForRental, true),
		IsActive:           true,
	}
	if err := s.dresses.Create(ctx, dress); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	dress.Category = category
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Dress created").
		Uint("dress_id", dress.DressID).
		Uint("category_id", dress.CategoryID).
		Log()

	resp := detailResponse(dress)
	return &resp, nil
}

func (s *CatalogService) UpdateDress(ctx context.Context, id uint, req *dto.DressRequest) (*dto.DressResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateDress")

	dress, err := s.dresses.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Dress")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if dress.CategoryID != req.CategoryID {
		category, err := s.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NotFound("Category")
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		dress.CategoryID = category.CategoryID
		dress.Category = category
	}

	dress.Name = strings.TrimSpace(req.Name)
	dress.Description = req.Description
	dress.BaseSalePrice = req.BaseSalePrice
	dress.BaseRentalPrice = req.BaseRentalPrice
	dress.AvailableForSale = boolOr(req.AvailableForSale, dress.AvailableForSale)
	dress.AvailableForRental = boolOr(req.AvailableForRental, dress.AvailableForRental)

	if err := s.dresses.Update(ctx, dress); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)

	return s.GetDress(ctx, id)
}

// DeleteDress soft-deletes; variants and images are left untouched
func (s *CatalogService) DeleteDress(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteDress")

	if _, err := s.dresses.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("Dress")
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.dresses.Deactivate(ctx, id); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Dress deactivated").
		Uint("dress_id", id).
		Log()
	return nil
}

// Variants

// AddVariant creates the variant with its backing stock item holding one unit
func (s *CatalogService) AddVariant(ctx context.Context, dressID uint, req *dto.DressVariantRequest) (*dto.DressVariantResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AddVariant")

	size := strings.TrimSpace(req.Size)
	color := strings.TrimSpace(req.Color)
	sku := strings.TrimSpace(req.SKU)

	var variant *model.DressVariant
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		dress, err := s.dresses.GetByID(ctx, dressID)
		if err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Dress")
			}
			return err
		}

		dup, err := s.variants.ExistsForDress(ctx, dressID, size, color)
		if err != nil {
			return err
		}
		if dup {
			return errDuplicateVariant
		}

		taken, err := s.stock.ExistsBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if taken {
			return errDuplicateSKU
		}

		item := &model.StockItem{
			ItemType:      model.ItemDressVariant,
			Name:          dress.Name + " - " + size + " " + color,
			SKU:           sku,
			UnitOfMeasure: model.UnitPieces,
			CostPrice:     decimal.Zero,
			ReorderLevel:  variantReorderLevel,
			IsStocked:     true,
		}
		if err := s.stock.CreateItem(ctx, item, &model.StockLevel{Quantity: variantUnitQuantity}); err != nil {
			if isDuplicateKey(err) {
				return errDuplicateSKU
			}
			return err
		}

		variant = &model.DressVariant{
			DressID:     dressID,
			StockItemID: item.StockItemID,
			StockItem:   item,
			Size:        size,
			Color:       color,
			Status:      model.VariantActive,
		}
		if err := s.variants.Create(ctx, variant); err != nil {
			if isDuplicateKey(err) {
				return errDuplicateVariant
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsDomainError(err) {
			logger.ErrorWithContext(ctx, "Failed to add variant").
				Uint("dress_id", dressID).
				Err(err).
				Log()
		}
		return nil, toDomainError(err)
	}
	s.invalidate(ctx)

	logger.InfoWithContext(ctx, "Variant added").
		Uint("dress_id", dressID).
		Uint("variant_id", variant.VariantID).
		String("sku", sku).
		Log()

	resp := dto.NewDressVariantResponse(variant)
	return &resp, nil
}

// RetireVariant marks the variant RETIRED instead of removing it
func (s *CatalogService) RetireVariant(ctx context.Context, dressID, variantID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "RetireVariant")

	variant, err := s.variants.GetByID(ctx, dressID, variantID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("Variant")
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.variants.UpdateStatus(ctx, variant.VariantID, model.VariantRetired); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.invalidate(ctx)
	return nil
}

// Images

func (s *CatalogService) AddImage(ctx context.Context, dressID uint, req *dto.DressImageRequest) (*dto.DressImageResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AddImage")

	if _, err := s.dresses.GetByID(ctx, dressID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Dress")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	image := &model.DressImage{
		DressID:      dressID,
		URL:          strings.TrimSpace(req.URL),
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewDressImageResponse(image)
	return &resp, nil
}

// DeleteImage removes the row, then the stored object best-effort once no
// other image row references its URL
func (s *CatalogService) DeleteImage(ctx context.Context, dressID, imageID uint) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteImage")

	image, err := s.images.GetByID(ctx, dressID, imageID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("Image")
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if err := s.images.Delete(ctx, image.ImageID); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if s.objects == nil {
		return nil
	}
	remaining, err := s.images.CountByURL(ctx, image.URL)
	if err != nil {
		logger.WarnWithContext(ctx, "Skipping object removal, reference count failed").
			Uint("image_id", image.ImageID).
			Err(err).
			Log()
		return nil
	}
	if remaining > 0 {
		logger.DebugWithContext(ctx, "Object still referenced, keeping it").
			Uint("image_id", image.ImageID).
			Int64("references", remaining).
			Log()
		return nil
	}
	s.objects.DeleteByURL(ctx, image.URL)
	return nil
}

// Mapping

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func baseResponse(d *model.Dress) dto.DressResponse {
	resp := dto.DressResponse{
		DressID:            d.DressID,
		CategoryID:         d.CategoryID,
		Name:               d.Name,
		Description:        d.Description,
		BaseSalePrice:      d.BaseSalePrice,
		BaseRentalPrice:    d.BaseRentalPrice,
		AvailableForSale:   d.AvailableForSale,
		AvailableForRental: d.AvailableForRental,
		OrderCount:         d.OrderCount,
		CreatedAt:          d.CreatedAt,
		HasAvailableStock:  hasAvailableStock(d.Variants),
	}
	if d.Category != nil {
		resp.CategoryName = d.Category.Name
	}
	return resp
}

// listingResponse carries only the first image
func listingResponse(d *model.Dress) dto.DressResponse {
	resp := baseResponse(d)
	if len(d.Images) > 0 {
		resp.Images = []dto.DressImageResponse{dto.NewDressImageResponse(&d.Images[0])}
	}
	return resp
}

func detailResponse(d *model.Dress) dto.DressResponse {
	resp := baseResponse(d)

	resp.Variants = make([]dto.DressVariantResponse, 0, len(d.Variants))
	sizes := map[string]struct{}{}
	colors := map[string]struct{}{}
	for i := range d.Variants {
		v := &d.Variants[i]
		resp.Variants = append(resp.Variants, dto.NewDressVariantResponse(v))
		if v.Status == model.VariantActive {
			sizes[v.Size] = struct{}{}
			colors[v.Color] = struct{}{}
		}
	}

	resp.Images = make([]dto.DressImageResponse, 0, len(d.Images))
	for i := range d.Images {
		resp.Images = append(resp.Images, dto.NewDressImageResponse(&d.Images[i]))
	}

	resp.AvailableSizes = sortedKeys(sizes)
	resp.AvailableColors = sortedKeys(colors)
	return resp
}

func hasAvailableStock(variants []model.DressVariant) bool {
	for i := range variants {
		if variants[i].InStock() {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
