package handler

import (
	"net/http"
	"time"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
	"github.com/AndrianinaH/cyberzone-finance/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardHandler serves the aggregate balance views. Balances span all
// users: the cash box is shared, only record edits are owner-scoped.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// GetBalance returns the running balance. RMB is tracked in its native
// amount (the box keeps physical RMB), everything else is counted via its
// normalized MGA amount.
func (h *DashboardHandler) GetBalance(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var movements []models.Movement
	if err := h.DB.Find(&movements).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	mga := decimal.Zero
	rmb := decimal.Zero
	for i := range movements {
		m := &movements[i]
		sign := decimal.NewFromInt(1)
		if m.Type == models.MovementExit {
			sign = decimal.NewFromInt(-1)
		}
		if m.Currency == "RMB" {
			rmb = rmb.Add(m.Amount.Mul(sign))
		} else {
			mga = mga.Add(m.AmountMGA.Mul(sign))
		}
	}

	util.Success(c, util.Response{
		"mga": mga,
		"rmb": rmb,
	})
}

// GetDailyMovements returns today's entries and exits, split by MGA/RMB.
func (h *DashboardHandler) GetDailyMovements(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var movements []models.Movement
	if err := h.DB.Where("date >= ?", today).Find(&movements).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load movements")
		return
	}

	type bucket struct {
		MGA decimal.Decimal `json:"mga"`
		RMB decimal.Decimal `json:"rmb"`
	}
	entries := bucket{MGA: decimal.Zero, RMB: decimal.Zero}
	exits := bucket{MGA: decimal.Zero, RMB: decimal.Zero}

	for i := range movements {
		m := &movements[i]
		target := &entries
		if m.Type == models.MovementExit {
			target = &exits
		}
		if m.Currency == "RMB" {
			target.RMB = target.RMB.Add(m.Amount)
		} else {
			target.MGA = target.MGA.Add(m.AmountMGA)
		}
	}

	util.Success(c, util.Response{
		"entries": entries,
		"exits":   exits,
	})
}
