package middleware

import (
	"time"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequestLogger logs every request with structured fields.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}).Info("request")
	}
}

// AuditMiddleware records authenticated operations to the audit table.
// Anonymous requests are not recorded.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var name string
		if v, ok := c.Get(CtxAccount); ok {
			if acct, ok := v.(*ledger.Account); ok && acct != nil {
				name = acct.Name()
			}
		}
		if name == "" {
			return
		}

		entry := models.AuditLog{
			Account:   name,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
