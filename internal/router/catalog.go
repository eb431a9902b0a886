package router

import "github.com/gin-gonic/gin"

func (r *Router) catalogRoutes(version *gin.RouterGroup) {
	categories := version.Group("/categories")
	{
		categories.GET("", r.h.Category.List)
		categories.GET("/:categoryId", r.h.Category.Get)

		admin := categories.Group("")
		admin.Use(r.adminOnly()...)
		{
			admin.POST("", r.h.Category.Create)
			admin.PUT("/:categoryId", r.h.Category.Update)
			admin.DELETE("/:categoryId", r.h.Category.Delete)
		}
	}

	dresses := version.Group("/dresses")
	{
		dresses.GET("", r.h.Dress.Browse)
		dresses.GET("/:dressId", r.h.Dress.Get)

		admin := dresses.Group("")
		admin.Use(r.adminOnly()...)
		{
			admin.POST("", r.h.Dress.Create)
			admin.PUT("/:dressId", r.h.Dress.Update)
			admin.DELETE("/:dressId", r.h.Dress.Delete)

			admin.POST("/:dressId/variants", r.h.Dress.AddVariant)
			admin.DELETE("/:dressId/variants/:variantId", r.h.Dress.DeleteVariant)

			admin.POST("/:dressId/images", r.h.Dress.AddImage)
			admin.DELETE("/:dressId/images/:imageId", r.h.Dress.DeleteImage)
		}
	}
}
