package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type CategoryHandler struct {
	catalog CatalogAPI
}

func NewCategoryHandler(catalog CatalogAPI) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "ListCategories")

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		respondError(c, ctx, "List categories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "GetCategory")

	id, ok := pathID(c, ctx, "categoryId")
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(ctx, id)
	if err != nil {
		respondError(c, ctx, "Get category", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateCategory")

	var req dto.CategoryRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	category, err := h.catalog.CreateCategory(ctx, &req)
	if err != nil {
		respondError(c, ctx, "Create category", err)
		return
	}

	logger.InfoWithContext(ctx, "Category created").
		Uint("category_id", category.CategoryID).
		Log()

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCategory")

	id, ok := pathID(c, ctx, "categoryId")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !bindJSON(c, ctx, &req) {
		return
	}

	category, err := h.catalog.UpdateCategory(ctx, id, &req)
	if err != nil {
		respondError(c, ctx, "Update category", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCategory")

	id, ok := pathID(c, ctx, "categoryId")
	if !ok {
		return
	}

	if err := h.catalog.DeleteCategory(ctx, id); err != nil {
		respondError(c, ctx, "Delete category", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgCategoryDeleted})
}
