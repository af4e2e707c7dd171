package router

import (
	"bank-ledger/internal/config"
	"bank-ledger/internal/handler"
	"bank-ledger/internal/ledger"
	"bank-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter wires the gin engine: auth endpoints are open, banking
// endpoints sit behind the session middleware and the audit trail.
func SetupRouter(cfg *config.Config, bank *ledger.Ledger, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	validate := validator.New()

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(bank, validate, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, bank),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)

	accountHandler := handler.NewAccountHandler(bank, cfg.App.HistoryPageSize)
	protected.GET("/balance", accountHandler.Balance)
	protected.POST("/deposit", accountHandler.Deposit)
	protected.POST("/withdraw", accountHandler.Withdraw)
	protected.GET("/history", accountHandler.History)

	exportHandler := handler.NewExportHandler(bank)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
