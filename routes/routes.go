package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/spendsmart/spendsmart-api/config"
	"github.com/spendsmart/spendsmart-api/handlers"
	"github.com/spendsmart/spendsmart-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupTransactionRoutes sets up protected transaction and category routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, store *services.TransactionStore) {
	h := handlers.NewTransactionHandler(store)

	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/transactions", h.List)
	rg.POST("/transactions", h.Create)
	rg.PUT("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
	rg.GET("/categories", h.Categories)
}

// SetupChatRoutes sets up the protected request/response chat endpoints.
func SetupChatRoutes(rg *gin.RouterGroup, relay *services.ChatRelay, store *services.TransactionStore, summaries services.SummaryBuilder, cfg config.ChatConfig) {
	h := handlers.NewChatHandler(relay, store, summaries, cfg.HistoryLimit)

	rg.POST("/chat", h.Chat)
	rg.GET("/summary", h.Summary)
}

// SetupUserRoutes sets up protected user profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}
