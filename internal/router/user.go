package router

import (
	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		users.GET("/me", r.h.User.GetMe)

		admin := users.Group("")
		admin.Use(r.jwtMw.RequireRole(model.RoleAdmin))
		{
			admin.POST("/employees", r.h.User.CreateEmployee)
			admin.POST("/admins", r.h.User.CreateAdmin)
			admin.PUT("/:userId/activate", r.h.User.Activate)
			admin.PUT("/:userId/deactivate", r.h.User.Deactivate)
		}
	}
}

func (r *Router) customerRoutes(version *gin.RouterGroup) {
	customers := version.Group("/customers")
	customers.Use(r.jwtMw.RequireAuth())
	{
		// role checks live in the measurement service
		customers.GET("/:customerId/profile", r.h.Measurement.GetProfile)
		customers.GET("/:customerId/measurements", r.h.Measurement.GetLatest)
		customers.POST("/measurements", r.h.Measurement.Add)
	}
}

func (r *Router) uploadRoutes(version *gin.RouterGroup) {
	upload := version.Group("/upload")
	upload.Use(r.adminOnly()...)
	{
		upload.POST("/dress-image", r.h.Upload.UploadDressImage)
	}
}
