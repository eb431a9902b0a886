package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type DressHandler struct {
	catalog CatalogAPI
}

func NewDressHandler(catalog CatalogAPI) *DressHandler {
	return &DressHandler{catalog: catalog}
}

// Browse lists active dresses matching the query filters
func (h *DressHandler) Browse(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "BrowseDresses")

	filter, err := parseCatalogFilter(c)
	if err != nil {
		logger.WarnWithContext(ctx, "Invalid catalog query").
			String("query", c.Request.URL.RawQuery).
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponseWithCode(
			apperrors.CodeInvalidInput, err.Error(), nil))
		return
	}

	page, err := h.catalog.BrowseDresses(ctx, filter)
	if err != nil {
		respondError(c, ctx, "Browse dresses", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *DressHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetDress")

	id, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}

	dress, err := h.catalog.GetDress(ctx, id)
	if err != nil {
		respondError(c, ctx, "Get dress", err)
		return
	}

	c.JSON(http.StatusOK, dress)
}

func (h *DressHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateDress")

	var req dto.DressRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	dress, err := h.catalog.CreateDress(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Create dress", err)
		return
	}

	logger.InfoWithContext(ctx, "Dress created").
		Uint("dress_id", dress.DressID).
		Log()

	c.JSON(http.StatusCreated, dress)
}

func (h *DressHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateDress")

	id, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}

	var req dto.DressRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	dress, err := h.catalog.UpdateDress(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, "Update dress", err)
		return
	}

	c.JSON(http.StatusOK, dress)
}

// Delete soft deletes the dress; variants and images are kept
func (h *DressHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteDress")

	id, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteDress(ctx, id); err != nil {
		respondError(c, ctx, "Delete dress", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgDressDeleted})
}

func (h *DressHandler) AddVariant(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddVariant")

	dressID, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}

	var req dto.DressVariantRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	variant, err := h.catalog.AddVariant(ctx, dressID, &req)
	if err != nil {
		respondError(c, ctx, "Add variant", err)
		return
	}

	c.JSON(http.StatusCreated, variant)
}

// DeleteVariant retires the variant; the row and its stock item remain
func (h *DressHandler) DeleteVariant(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteVariant")

	dressID, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}
	variantID, ok := pathID(c, ctx, "variantId")
	if !ok {
		return
	}

	if err := h.catalog.RetireVariant(ctx, dressID, variantID); err != nil {
		respondError(c, ctx, "Delete variant", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgVariantDeleted})
}

func (h *DressHandler) AddImage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "AddImage")

	dressID, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}

	var req dto.DressImageRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	image, err := h.catalog.AddImage(ctx, dressID, &req)
	if err != nil {
		respondError(c, ctx, "Add image", err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *DressHandler) DeleteImage(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteImage")

	dressID, ok := pathID(c, ctx, "dressId")
	if !ok {
		return
	}
	imageID, ok := pathID(c, ctx, "imageId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteImage(ctx, dressID, imageID); err != nil {
		respondError(c, ctx, "Delete image", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgImageDeleted})
}

// parseCatalogFilter reads the browse query. List parameters accept
// repeated keys, the bracketed form and comma separated values.
func parseCatalogFilter(c *gin.Context) (dto.CatalogFilter, error) {
	f := dto.CatalogFilter{
		Colors: listQuery(c, "colors"),
		Sizes:  listQuery(c, "sizes"),
		Search: strings.TrimSpace(c.Query(constants.QueryParamSearch)),
		SortBy: model.SortNewest,
	}

	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, invalidParam("categoryId")
		}
		categoryID := uint(id)
		f.CategoryID = &categoryID
	}

	var err error
	if f.MinPrice, err = decimalQuery(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = decimalQuery(c, "maxPrice"); err != nil {
		return f, err
	}
	if f.AvailableForSale, err = boolQuery(c, "availableForSale"); err != nil {
		return f, err
	}
	if f.AvailableForRental, err = boolQuery(c, "availableForRental"); err != nil {
		return f, err
	}

	if raw := c.Query(constants.QueryParamSortBy); raw != "" {
		sort := model.SortBy(strings.ToUpper(raw))
		if !sort.Valid() {
			return f, invalidParam(constants.QueryParamSortBy)
		}
		f.SortBy = sort
	}

	if f.Page, err = intQuery(c, constants.QueryParamPage, constants.DefaultPage); err != nil {
		return f, err
	}
	if f.Size, err = intQuery(c, constants.QueryParamSize, constants.DefaultSize); err != nil {
		return f, err
	}

	return f, nil
}

func listQuery(c *gin.Context, key string) []string {
	raw := append(c.QueryArray(key), c.QueryArray(key+"[]")...)

	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalidParam(key)
	}
	return &d, nil
}

func boolQuery(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidParam(key)
	}
	return &b, nil
}

func intQuery(c *gin.Context, key, def string) (int, error) {
	n, err := strconv.Atoi(c.DefaultQuery(key, def))
	if err != nil {
		return 0, invalidParam(key)
	}
	return n, nil
}

func invalidParam(key string) error {
	return fmt.Errorf("Invalid %s", key)
}
