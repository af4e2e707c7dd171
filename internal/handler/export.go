package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"bank-ledger/internal/ledger"
	"bank-ledger/internal/middleware"
	"bank-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler produces statement downloads of the session's transaction
// history.
type ExportHandler struct {
	Bank *ledger.Ledger
}

func NewExportHandler(bank *ledger.Ledger) *ExportHandler {
	return &ExportHandler{Bank: bank}
}

func (h *ExportHandler) history(c *gin.Context) ([]ledger.Transaction, bool) {
	handle := c.GetString(middleware.CtxSession)
	history, err := h.Bank.History(handle, 0)
	if err != nil {
		writeDomainError(c, err)
		return nil, false
	}
	return history, true
}

// ExportCSV streams the full history as CSV, newest first.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	history, ok := h.history(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"statement_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Time", "Kind", "Amount"})
	for _, tx := range history {
		writer.Write([]string{
			tx.Time.Format("2006-01-02 15:04:05"),
			string(tx.Kind),
			tx.Amount.StringFixed(2),
		})
	}
}

// ExportXLSX writes the full history as an Excel workbook, newest first.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	history, ok := h.history(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Statement"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Time", "Kind", "Amount"}
	for i, name := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, name)
	}

	for idx, tx := range history {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.Time.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(tx.Kind))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Amount.StringFixed(2))
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"statement_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
