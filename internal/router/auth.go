package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes
		auth.POST("/register", r.h.Auth.Register)
		auth.POST("/login", r.h.Auth.Login)
		auth.POST("/google", r.h.Auth.GoogleLogin)
		auth.GET("/verify-email", r.h.Auth.VerifyEmail)
		auth.POST("/resend-verification", r.h.Auth.ResendVerification)
		auth.POST("/forgot-password", r.h.Auth.ForgotPassword)
		auth.POST("/reset-password", r.h.Auth.ResetPassword)
		auth.POST("/refresh", r.h.Auth.RefreshToken)

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/complete-profile", r.h.Auth.CompleteProfile)
			protected.POST("/logout", r.h.Auth.Logout)
		}
	}
}
