package http

import (
	"github.com/gin-gonic/gin"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/handler"
	"github.com/lumatch/lumatch-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	prefsHandler   *handler.PrefsHandler
	browseHandler  *handler.BrowseHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	prefsHandler *handler.PrefsHandler,
	browseHandler *handler.BrowseHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		prefsHandler:   prefsHandler,
		browseHandler:  browseHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/telegram", r.authHandler.TelegramAuth)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.SaveMyProfile)
				profile.PUT("/me/tags", r.profileHandler.SetTags)
				profile.PUT("/me/location", r.profileHandler.SetLocation)
				profile.DELETE("/me/location", r.profileHandler.ClearLocation)
				profile.DELETE("/me", r.profileHandler.DeleteMe)
			}

			// Preference routes
			prefs := protected.Group("/preferences")
			{
				prefs.GET("", r.prefsHandler.Get)
				prefs.PUT("", r.prefsHandler.Update)
				prefs.DELETE("", r.prefsHandler.Reset)
			}

			// Browse routes
			browse := protected.Group("/browse")
			{
				browse.POST("/start", r.browseHandler.Start)
				browse.POST("/like", r.browseHandler.Like)
				browse.POST("/skip", r.browseHandler.Skip)
				browse.POST("/report", r.browseHandler.Report)
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(r.authMiddleware.RequireAdmin())
			{
				admin.POST("/profiles/:id/suspend", r.adminHandler.Suspend)
				admin.POST("/profiles/:id/shadowban", r.adminHandler.Shadowban)
			}
		}
	}

	return router
}
