package handler

import (
	"errors"
	"net/http"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// writeDomainError maps ledger errors onto the response envelope.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidCredentialFormat),
		errors.Is(err, ledger.ErrInvalidAmount):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, ledger.ErrDuplicateAccount),
		errors.Is(err, ledger.ErrInsufficientFunds):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidCredentials),
		errors.Is(err, ledger.ErrNotAuthenticated):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}
