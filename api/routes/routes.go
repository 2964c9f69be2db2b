package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/config"
	"github.com/ArowuTest/gaspay-backend/internal/handlers"
	"github.com/ArowuTest/gaspay-backend/internal/middleware"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers wired into the router
type HandlerDependencies struct {
	AuthHandler          *handlers.AuthHandler
	WalletHandler        *handlers.WalletHandler
	NotificationHandler  *handlers.NotificationHandler
	PaymentMethodHandler *handlers.PaymentMethodHandler
	AdvisoryHandler      *handlers.AdvisoryHandler
	Tokens               middleware.TokenParser
	Store                repositories.Store
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Store.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/verify", deps.AuthHandler.VerifyOtp)
			auth.POST("/back", deps.AuthHandler.Back)
			auth.POST("/recovery", deps.AuthHandler.Recovery)
			auth.POST("/biometric", deps.AuthHandler.BiometricLogin)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		protected.POST("/auth/logout", deps.AuthHandler.Logout)
		protected.PUT("/auth/biometric", deps.AuthHandler.SetBiometric)
		protected.DELETE("/account", deps.AuthHandler.DeleteAccount)

		protected.GET("/session", deps.WalletHandler.Session)
		protected.POST("/session/navigate", deps.WalletHandler.Navigate)
		protected.GET("/dashboard", deps.WalletHandler.Dashboard)

		protected.POST("/scan", deps.WalletHandler.StartScan)
		protected.DELETE("/scan", deps.WalletHandler.CancelScan)

		payments := protected.Group("/payments")
		{
			payments.POST("/confirm", deps.WalletHandler.ConfirmPayment)
			payments.POST("/cancel", deps.WalletHandler.CancelPayment)
			payments.POST("/success/close", deps.WalletHandler.ClosePaymentSuccess)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", deps.WalletHandler.Transactions)
			transactions.GET("/:id", deps.WalletHandler.Transaction)
			transactions.PUT("/:id/odometer", deps.WalletHandler.UpdateOdometer)
		}

		protected.GET("/budget", deps.WalletHandler.Budget)
		protected.PUT("/budget", deps.WalletHandler.UpdateBudget)
		protected.GET("/rewards", deps.WalletHandler.Rewards)

		protected.GET("/notifications", deps.NotificationHandler.List)
		protected.POST("/notifications/read", deps.NotificationHandler.MarkAllRead)

		methods := protected.Group("/payment-methods")
		{
			methods.GET("", deps.PaymentMethodHandler.List)
			methods.POST("", deps.PaymentMethodHandler.Add)
			methods.DELETE("/:id", deps.PaymentMethodHandler.Remove)
			methods.PUT("/:id/primary", deps.PaymentMethodHandler.SetPrimary)
		}

		protected.GET("/tips", deps.AdvisoryHandler.Tips)
		protected.GET("/stations", deps.AdvisoryHandler.Stations)
	}

	return router
}
