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

// PaymentHandler serves the payment sub-records of a trosa. Every mutation
// runs the reconciler inside a transaction so the check-then-write window
// over a trosa's payment set is serialized and all-or-nothing.
type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

type addPaymentReq struct {
	Montant      string `json:"montant" binding:"required"`
	DatePaiement string `json:"date_paiement" binding:"required"`
	Description  string `json:"description"`
}

// loadTrosa fetches a trosa scoped to the caller, with payments.
func loadTrosa(tx *gorm.DB, trosaID, userID uint) (models.Trosa, error) {
	var t models.Trosa
	err := tx.Preload("Payments").
		Where("id = ? AND user_id = ?", trosaID, userID).
		First(&t).Error
	if err == gorm.ErrRecordNotFound {
		return t, ledger.NotFoundError{Resource: "trosa", ID: trosaID}
	}
	return t, err
}

// ---------- list ----------

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	trosaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || trosaID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	t, err := loadTrosa(h.DB, uint(trosaID), user.ID)
	if err != nil {
		util.LedgerError(c, err)
		return
	}

	var payments []models.TrosaPayment
	if err := h.DB.Where("trosa_id = ?", t.ID).
		Order("date_paiement DESC, id DESC").
		Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load payments")
		return
	}

	items := make([]paymentResp, 0, len(payments))
	for _, p := range payments {
		items = append(items, paymentResp{
			ID:           p.ID,
			Montant:      p.Montant,
			DatePaiement: p.DatePaiement,
			Description:  p.Description,
		})
	}

	util.Success(c, util.Response{
		"payments": items,
	})
}

// ---------- add ----------

func (h *PaymentHandler) AddPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	trosaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || trosaID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req addPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	montant, err := decimal.NewFromString(strings.TrimSpace(req.Montant))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid montant")
		return
	}
	if err := util.ValidateAmount(montant); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDate(req.DatePaiement); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	datePaiement, _ := time.Parse("2006-01-02", req.DatePaiement)

	var result models.Trosa
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		t, err := loadTrosa(tx, uint(trosaID), user.ID)
		if err != nil {
			return err
		}

		payment := models.TrosaPayment{
			TrosaID:      t.ID,
			Montant:      montant,
			DatePaiement: datePaiement,
			Description:  strings.TrimSpace(req.Description),
		}

		updated, _, err := ledger.AddPayment(t, t.Payments, payment, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Trosa{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"is_paid":       updated.IsPaid,
				"date_paiement": updated.DatePaiement,
			}).Error; err != nil {
			return err
		}

		result = updated
		result.Payments = append(t.Payments, payment)
		return nil
	})
	if txErr != nil {
		util.LedgerError(c, txErr)
		return
	}

	agg := ledger.Recompute(result.MontantTotal, result.Payments)
	msg := "payment added"
	if agg.IsPaid {
		msg = "payment added, trosa fully paid"
	}

	util.Success(c, util.Response{
		"message": msg,
		"trosa":   toTrosaResp(&result),
	})
}

// ---------- delete ----------

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	trosaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || trosaID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	paymentID, err := strconv.Atoi(c.Param("paymentId"))
	if err != nil || paymentID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payment id")
		return
	}

	var result models.Trosa
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		t, err := loadTrosa(tx, uint(trosaID), user.ID)
		if err != nil {
			return err
		}

		updated, remaining, err := ledger.RemovePayment(t, t.Payments, uint(paymentID))
		if err != nil {
			return err
		}

		if err := tx.Where("id = ? AND trosa_id = ?", paymentID, t.ID).
			Delete(&models.TrosaPayment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Trosa{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"is_paid":       updated.IsPaid,
				"date_paiement": updated.DatePaiement,
			}).Error; err != nil {
			return err
		}

		result = updated
		result.Payments = remaining
		return nil
	})
	if txErr != nil {
		util.LedgerError(c, txErr)
		return
	}

	util.Success(c, util.Response{
		"message": "payment deleted",
		"trosa":   toTrosaResp(&result),
	})
}
