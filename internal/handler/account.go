package handler

import (
	"net/http"
	"strconv"
	"time"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/middleware"
	"bank-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler serves the banking operations of the authenticated session.
type AccountHandler struct {
	Bank *ledger.Ledger
	// PageSize is the default history length when no limit is given.
	PageSize int
}

func NewAccountHandler(bank *ledger.Ledger, pageSize int) *AccountHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &AccountHandler{Bank: bank, PageSize: pageSize}
}

type amountReq struct {
	Amount decimal.Decimal `json:"amount"`
}

type transactionResp struct {
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Amount string    `json:"amount"`
}

func toTransactionResp(tx ledger.Transaction) transactionResp {
	return transactionResp{
		Time:   tx.Time,
		Kind:   string(tx.Kind),
		Amount: tx.Amount.StringFixed(2),
	}
}

// Deposit credits the session's account.
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	handle := c.GetString(middleware.CtxSession)
	balance, err := h.Bank.Deposit(handle, req.Amount)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "deposit successful",
		"balance": balance.StringFixed(2),
	})
}

// Withdraw debits the session's account.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	handle := c.GetString(middleware.CtxSession)
	balance, err := h.Bank.Withdraw(handle, req.Amount)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "withdrawal successful",
		"balance": balance.StringFixed(2),
	})
}

// Balance returns the session account's current balance.
func (h *AccountHandler) Balance(c *gin.Context) {
	handle := c.GetString(middleware.CtxSession)
	balance, err := h.Bank.Balance(handle)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	util.Success(c, util.Response{
		"balance": balance.StringFixed(2),
	})
}

// History returns recent transactions, newest first. ?limit=N overrides the
// default page size; limit=0 returns everything.
func (h *AccountHandler) History(c *gin.Context) {
	limit := h.PageSize
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	handle := c.GetString(middleware.CtxSession)
	history, err := h.Bank.History(handle, limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	items := make([]transactionResp, 0, len(history))
	for _, tx := range history {
		items = append(items, toTransactionResp(tx))
	}

	util.Success(c, util.Response{
		"count":        len(items),
		"transactions": items,
	})
}
