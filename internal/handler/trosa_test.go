package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
)

func TestListDebtors_MostRecentFirst(t *testing.T) {
	r, db, _ := setupPaymentRouter(t)

	for _, debtor := range []string{"Alpha", "Beta", "Gamma"} {
		w := doJSON(t, r, http.MethodPost, "/api/trosa", gin.H{
			"debtor_name":   debtor,
			"description":   "stock advance",
			"montant_total": "100",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// pin creation times so the expected order is unambiguous
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, debtor := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, db.Model(&models.Trosa{}).
			Where("debtor_name = ?", debtor).
			Update("created_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/debtors", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Debtors []string `json:"debtors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"Gamma", "Beta", "Alpha"}, resp.Data.Debtors)
}

func TestListDebtors_DistinctNames(t *testing.T) {
	r, _, _ := setupPaymentRouter(t)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/trosa", gin.H{
			"debtor_name":   "Rakoto",
			"description":   "stock advance",
			"montant_total": "100",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/debtors", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Debtors []string `json:"debtors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"Rakoto"}, resp.Data.Debtors)
}
