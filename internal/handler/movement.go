package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AndrianinaH/cyberzone-finance/internal/currency"
	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementHandler serves the shared cash ledger.
type MovementHandler struct {
	DB        *gorm.DB
	Converter *currency.Converter
	PageSize  int
}

func NewMovementHandler(db *gorm.DB, cv *currency.Converter, pageSize int) *MovementHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &MovementHandler{
		DB:        db,
		Converter: cv,
		PageSize:  pageSize,
	}
}

// ---------- request/response shapes ----------

type movementReq struct {
	Type         string `json:"type" binding:"required,oneof=entry exit"`
	Amount       string `json:"amount" binding:"required"`
	Currency     string `json:"currency" binding:"required"`
	ExchangeRate string `json:"exchange_rate"` // optional, overrides the default rate
	Description  string `json:"description" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Responsible  string `json:"responsible" binding:"required,max=64"`
	IsSale       bool   `json:"is_sale"`
}

type movementResp struct {
	ID           uint             `json:"id"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
	AmountMGA    decimal.Decimal  `json:"amount_mga"`
	Description  string           `json:"description"`
	Date         time.Time        `json:"date"`
	Author       string           `json:"author"`
	Responsible  string           `json:"responsible"`
	IsSale       bool             `json:"is_sale"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toMovementResp(m *models.Movement) movementResp {
	return movementResp{
		ID:           m.ID,
		Type:         m.Type,
		Amount:       m.Amount,
		Currency:     m.Currency,
		ExchangeRate: m.ExchangeRate,
		AmountMGA:    m.AmountMGA,
		Description:  m.Description,
		Date:         m.Date,
		Author:       m.Author,
		Responsible:  m.Responsible,
		IsSale:       m.IsSale,
		CreatedAt:    m.CreatedAt,
	}
}

// parseMovementReq validates the request and resolves the derived fields.
// AmountMGA is always recomputed here, a client-supplied value is ignored.
func (h *MovementHandler) parseMovementReq(req movementReq) (models.Movement, string) {
	var m models.Movement

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return m, "invalid amount"
	}
	if err := util.ValidateAmount(amount); err != nil {
		return m, err.Error()
	}

	code, err := currency.ParseCode(req.Currency)
	if err != nil {
		return m, err.Error()
	}

	var override *decimal.Decimal
	if strings.TrimSpace(req.ExchangeRate) != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(req.ExchangeRate))
		if err != nil || !rate.IsPositive() {
			return m, "invalid exchange rate"
		}
		override = &rate
	}

	if err := util.ValidateDate(req.Date); err != nil {
		return m, err.Error()
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	req.Responsible = strings.TrimSpace(req.Responsible)
	if err := util.ValidateName(req.Responsible); err != nil {
		return m, err.Error()
	}

	m.Type = req.Type
	m.Currency = string(code)
	m.Amount = amount
	m.ExchangeRate = override
	m.AmountMGA = h.Converter.ToMGA(amount, code, override)
	m.Description = strings.TrimSpace(req.Description)
	m.Date = date
	m.Responsible = req.Responsible
	m.IsSale = req.IsSale
	return m, ""
}

// ---------- create ----------

func (h *MovementHandler) CreateMovement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req movementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	m, msg := h.parseMovementReq(req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}
	m.UserID = user.ID
	m.Author = user.Name

	if err := h.DB.Create(&m).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save movement")
		return
	}

	util.Success(c, util.Response{
		"movement": toMovementResp(&m),
	})
}

// ---------- update ----------

// UpdateMovement edits a movement (only the owner's own records) and
// recomputes amount_mga from the submitted fields.
func (h *MovementHandler) UpdateMovement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req movementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	parsed, msg := h.parseMovementReq(req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	var m models.Movement
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "movement not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movement")
		}
		return
	}

	m.Type = parsed.Type
	m.Currency = parsed.Currency
	m.Amount = parsed.Amount
	m.ExchangeRate = parsed.ExchangeRate
	m.AmountMGA = parsed.AmountMGA
	m.Description = parsed.Description
	m.Date = parsed.Date
	m.Responsible = parsed.Responsible
	m.IsSale = parsed.IsSale

	if err := h.DB.Save(&m).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save movement")
		return
	}

	util.Success(c, util.Response{
		"movement": toMovementResp(&m),
	})
}

// ---------- list ----------

// ListMovements pages through the shared ledger (all users), newest first,
// with optional type and inclusive date-range filters.
func (h *MovementHandler) ListMovements(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.Movement{})

	if t := c.Query("type"); t == models.MovementEntry || t == models.MovementExit {
		base = base.Where("type = ?", t)
	}

	// start/end are YYYY-MM-DD, both boundaries inclusive
	if startStr := c.Query("start"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("date >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date, expected YYYY-MM-DD")
			return
		}
		base = base.Where("date < ?", end.Add(24*time.Hour))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count movements")
		return
	}

	var movements []models.Movement
	if err := base.Session(&gorm.Session{}).
		Order("id DESC").
		Limit(size).
		Offset(offset).
		Find(&movements).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	items := make([]movementResp, 0, len(movements))
	for i := range movements {
		items = append(items, toMovementResp(&movements[i]))
	}

	util.Success(c, util.Response{
		"movements": items,
		"total":     total,
		"page":      page,
		"limit":     size,
	})
}

// ---------- delete ----------

func (h *MovementHandler) DeleteMovement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Movement{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete movement")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "movement not found")
		return
	}

	util.Success(c, util.Response{
		"message": "movement deleted",
	})
}
