package handler

import (
	"net/http"
	"strings"
	"time"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/middleware"
	"bank-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Bank      *ledger.Ledger
	Validate  *validator.Validate
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(bank *ledger.Ledger, validate *validator.Validate, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Bank:      bank,
		Validate:  validate,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type authReq struct {
	Name string `json:"name" validate:"required,max=64"`
	PIN  string `json:"pin" validate:"required,len=4,numeric"`
}

// Register creates an account and logs the caller straight in, returning a
// session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req authReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and a 4-digit numeric pin are required")
		return
	}

	handle, err := h.Bank.Register(req.Name, req.PIN)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, handle, h.TokenTTL)
	if err != nil {
		h.Bank.Logout(handle)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	util.Success(c, util.Response{
		"message": "account created",
		"token":   token,
		"name":    req.Name,
	})
}

// Login authenticates an existing account and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and a 4-digit numeric pin are required")
		return
	}

	handle, err := h.Bank.Authenticate(req.Name, req.PIN)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, handle, h.TokenTTL)
	if err != nil {
		h.Bank.Logout(handle)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"name":  req.Name,
	})
}

// Logout revokes the caller's session. The token becomes useless even
// before its JWT expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	handle := c.GetString(middleware.CtxSession)
	h.Bank.Logout(handle)
	util.Success(c, util.Response{
		"message": "logged out",
	})
}
