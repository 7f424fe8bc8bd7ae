package router

import (
	"github.com/AndrianinaH/cyberzone-finance/internal/config"
	"github.com/AndrianinaH/cyberzone-finance/internal/currency"
	"github.com/AndrianinaH/cyberzone-finance/internal/handler"
	"github.com/AndrianinaH/cyberzone-finance/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	converter := currency.NewConverter(cfg.Rates)

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything below requires a valid login
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)
	protected.GET("/users", handler.ListUsers(db))

	protected.PUT("/profile", handler.UpdateProfile(db))
	protected.PUT("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	movementHandler := handler.NewMovementHandler(db, converter, cfg.App.PageSize)
	protected.POST("/movements", movementHandler.CreateMovement)
	protected.GET("/movements", movementHandler.ListMovements)
	protected.PUT("/movements/:id", movementHandler.UpdateMovement)
	protected.DELETE("/movements/:id", movementHandler.DeleteMovement)

	trosaHandler := handler.NewTrosaHandler(db, cfg.App.PageSize)
	protected.POST("/trosa", trosaHandler.CreateTrosa)
	protected.GET("/trosa", trosaHandler.ListTrosa)
	protected.GET("/debtors", trosaHandler.ListDebtors)
	protected.PUT("/trosa/:id", trosaHandler.UpdateTrosa)
	protected.DELETE("/trosa/:id", trosaHandler.DeleteTrosa)

	paymentHandler := handler.NewPaymentHandler(db)
	protected.GET("/trosa/:id/payments", paymentHandler.ListPayments)
	protected.POST("/trosa/:id/payments", paymentHandler.AddPayment)
	protected.DELETE("/trosa/:id/payments/:paymentId", paymentHandler.DeletePayment)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/balance", dashboardHandler.GetBalance)
	protected.GET("/daily-movements", dashboardHandler.GetDailyMovements)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	protected.GET("/logs", handler.ListAuditLogs(db))

	return r
}
