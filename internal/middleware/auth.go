package middleware

import (
	"net/http"
	"strings"
	"time"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// context keys set for downstream handlers
const (
	CtxSession = "session"        // ledger session handle (string)
	CtxAccount = "currentAccount" // *ledger.Account
)

// AuthMiddleware validates the JWT, resolves the session handle against the
// ledger and puts both the handle and the account into the context. A token
// whose session was logged out is rejected even if the JWT itself is still
// valid.
func AuthMiddleware(jwtSecret string, bank *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx (for downloads where headers are awkward)
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) cookie bl_token
		if tokenStr == "" {
			if cookie, err := c.Cookie("bl_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		acct, err := bank.Account(claims.SessionID)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		c.Set(CtxSession, claims.SessionID)
		c.Set(CtxAccount, acct)
		c.Next()
	}
}
