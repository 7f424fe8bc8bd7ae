package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// ExportHandler exports the caller's movements as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Type", "Currency", "Amount", "Exchange rate", "Amount MGA", "Description", "Date", "Responsible"}

func (h *ExportHandler) userMovements(userID uint) ([]models.Movement, error) {
	var movements []models.Movement
	err := h.DB.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&movements).Error
	return movements, err
}

func exportRow(m *models.Movement) []string {
	rate := ""
	if m.ExchangeRate != nil {
		rate = m.ExchangeRate.StringFixed(2)
	}
	return []string{
		m.Type,
		m.Currency,
		m.Amount.StringFixed(2),
		rate,
		m.AmountMGA.StringFixed(2),
		m.Description,
		m.Date.Format("2006-01-02"),
		m.Responsible,
	}
}

// ExportCSV streams the caller's movements as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	movements, err := h.userMovements(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"movements_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range movements {
		writer.Write(exportRow(&movements[i]))
	}
}

// ExportXLSX writes the caller's movements as a spreadsheet with a net MGA
// total at the bottom.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	movements, err := h.userMovements(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	f := excelize.NewFile()
	sheetName := "Movements"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, head := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	net := decimal.Zero
	for idx := range movements {
		m := &movements[idx]
		row := idx + 2
		for col, val := range exportRow(m) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
		if m.Type == models.MovementEntry {
			net = net.Add(m.AmountMGA)
		} else {
			net = net.Sub(m.AmountMGA)
		}
	}

	// grand total with thousands separators for readability
	p := message.NewPrinter(language.French)
	netFloat, _ := net.Float64()
	totalRow := len(movements) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Net total (MGA)")
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", totalRow), p.Sprintf("%.2f", netFloat))

	f.SetColWidth(sheetName, "A", "B", 10)
	f.SetColWidth(sheetName, "C", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 30)
	f.SetColWidth(sheetName, "G", "H", 14)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"movements_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write spreadsheet")
	}
}
