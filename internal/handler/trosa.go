package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AndrianinaH/cyberzone-finance/internal/ledger"
	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrosaHandler serves debt records. All derived fields (total paid,
// remaining, paid status) come from the ledger reconciler, never from the
// stored flag alone.
type TrosaHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTrosaHandler(db *gorm.DB, pageSize int) *TrosaHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TrosaHandler{
		DB:       db,
		PageSize: pageSize,
	}
}

// ---------- request/response shapes ----------

type trosaReq struct {
	DebtorName   string `json:"debtor_name" binding:"required,max=64"`
	Description  string `json:"description" binding:"required"`
	MontantTotal string `json:"montant_total" binding:"required"`
}

type paymentResp struct {
	ID           uint            `json:"id"`
	Montant      decimal.Decimal `json:"montant"`
	DatePaiement time.Time       `json:"date_paiement"`
	Description  string          `json:"description,omitempty"`
}

type trosaResp struct {
	ID              uint            `json:"id"`
	DebtorName      string          `json:"debtor_name"`
	Description     string          `json:"description"`
	MontantTotal    decimal.Decimal `json:"montant_total"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	IsPaid          bool            `json:"is_paid"`
	DatePaiement    *time.Time      `json:"date_paiement,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Payments        []paymentResp   `json:"payments"`
}

// toTrosaResp projects a trosa with the recomputed aggregate. The stored
// is_paid flag is reported only if it agrees with the payment sum.
func toTrosaResp(t *models.Trosa) trosaResp {
	agg := ledger.Recompute(t.MontantTotal, t.Payments)

	payments := make([]paymentResp, 0, len(t.Payments))
	for _, p := range t.Payments {
		payments = append(payments, paymentResp{
			ID:           p.ID,
			Montant:      p.Montant,
			DatePaiement: p.DatePaiement,
			Description:  p.Description,
		})
	}

	return trosaResp{
		ID:              t.ID,
		DebtorName:      t.DebtorName,
		Description:     t.Description,
		MontantTotal:    t.MontantTotal,
		TotalPaid:       agg.TotalPaid,
		RemainingAmount: agg.Remaining,
		IsPaid:          agg.IsPaid,
		DatePaiement:    t.DatePaiement,
		CreatedAt:       t.CreatedAt,
		Payments:        payments,
	}
}

func parseTrosaReq(req trosaReq) (string, string, decimal.Decimal, string) {
	debtor := strings.TrimSpace(req.DebtorName)
	if err := util.ValidateName(debtor); err != nil {
		return "", "", decimal.Zero, err.Error()
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return "", "", decimal.Zero, "description is required"
	}

	total, err := decimal.NewFromString(strings.TrimSpace(req.MontantTotal))
	if err != nil {
		return "", "", decimal.Zero, "invalid montant total"
	}
	if err := util.ValidateAmount(total); err != nil {
		return "", "", decimal.Zero, err.Error()
	}

	return debtor, desc, total, ""
}

// ---------- create ----------

func (h *TrosaHandler) CreateTrosa(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req trosaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	debtor, desc, total, msg := parseTrosaReq(req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	t := models.Trosa{
		UserID:       user.ID,
		DebtorName:   debtor,
		Description:  desc,
		MontantTotal: total,
	}
	if err := h.DB.Create(&t).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save trosa")
		return
	}

	util.Success(c, util.Response{
		"trosa": toTrosaResp(&t),
	})
}

// ---------- list ----------

// ListTrosa pages through the caller's trosa with optional debtor/
// description search (?q=) and status filter (?status=active|paid|all).
func (h *TrosaHandler) ListTrosa(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
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

	base := h.DB.Model(&models.Trosa{}).Where("user_id = ?", user.ID)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		base = base.Where("debtor_name LIKE ? OR description LIKE ?", like, like)
	}

	switch c.Query("status") {
	case "active":
		base = base.Where("is_paid = ?", false)
	case "paid":
		base = base.Where("is_paid = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count trosa")
		return
	}

	var trosaList []models.Trosa
	if err := base.Session(&gorm.Session{}).
		Preload("Payments").
		Order("id DESC").
		Limit(size).
		Offset(offset).
		Find(&trosaList).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load trosa")
		return
	}

	items := make([]trosaResp, 0, len(trosaList))
	for i := range trosaList {
		items = append(items, toTrosaResp(&trosaList[i]))
	}

	util.Success(c, util.Response{
		"trosa": items,
		"total": total,
		"page":  page,
		"limit": size,
	})
}

// ---------- update ----------

// UpdateTrosa edits debtor/description/total. The total change runs through
// the reconciler: it can never drop below what has already been paid.
func (h *TrosaHandler) UpdateTrosa(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req trosaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	debtor, desc, total, msg := parseTrosaReq(req)
	if msg != "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, msg)
		return
	}

	var result models.Trosa
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Trosa
		if err := tx.Preload("Payments").
			Where("id = ? AND user_id = ?", id, user.ID).
			First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ledger.NotFoundError{Resource: "trosa", ID: uint(id)}
			}
			return err
		}

		updated, err := ledger.ApplyTotalChange(t, t.Payments, total, time.Now())
		if err != nil {
			return err
		}
		updated.DebtorName = debtor
		updated.Description = desc

		if err := tx.Model(&models.Trosa{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"debtor_name":   updated.DebtorName,
				"description":   updated.Description,
				"montant_total": updated.MontantTotal,
				"is_paid":       updated.IsPaid,
				"date_paiement": updated.DatePaiement,
			}).Error; err != nil {
			return err
		}

		result = updated
		return nil
	})
	if txErr != nil {
		util.LedgerError(c, txErr)
		return
	}

	util.Success(c, util.Response{
		"trosa": toTrosaResp(&result),
	})
}

// ---------- delete ----------

// DeleteTrosa removes a trosa and all its payments.
func (h *TrosaHandler) DeleteTrosa(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Trosa
		if err := tx.Where("id = ? AND user_id = ?", id, user.ID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ledger.NotFoundError{Resource: "trosa", ID: uint(id)}
			}
			return err
		}

		// payments first, then the trosa itself
		if err := tx.Where("trosa_id = ?", t.ID).Delete(&models.TrosaPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if txErr != nil {
		util.LedgerError(c, txErr)
		return
	}

	util.Success(c, util.Response{
		"message": "trosa deleted",
	})
}

// ---------- debtor autocomplete ----------

// ListDebtors returns up to 10 distinct debtor names of the caller,
// optionally filtered by ?q=, most recent first.
func (h *TrosaHandler) ListDebtors(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	base := h.DB.Model(&models.Trosa{}).Where("user_id = ?", user.ID)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("debtor_name LIKE ?", "%"+q+"%")
	}

	var names []string
	if err := base.
		Select("debtor_name").
		Group("debtor_name").
		Order("MAX(created_at) DESC").
		Limit(10).
		Pluck("debtor_name", &names).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load debtors")
		return
	}

	util.Success(c, util.Response{
		"debtors": names,
	})
}
