package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTrosa(total string) models.Trosa {
	return models.Trosa{
		ID:           1,
		DebtorName:   "Rakoto",
		MontantTotal: dec(total),
	}
}

func payment(id uint, montant string) models.TrosaPayment {
	return models.TrosaPayment{
		ID:           id,
		TrosaID:      1,
		Montant:      dec(montant),
		DatePaiement: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestAddPayment_PartialThenFull(t *testing.T) {
	trosa := newTrosa("1000")

	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)

	agg := Recompute(trosa.MontantTotal, payments)
	assert.True(t, agg.TotalPaid.Equal(dec("600")))
	assert.True(t, agg.Remaining.Equal(dec("400")))
	assert.False(t, agg.IsPaid)
	assert.False(t, trosa.IsPaid)
	assert.Nil(t, trosa.DatePaiement)

	trosa, payments, err = AddPayment(trosa, payments, payment(2, "400"), now)
	require.NoError(t, err)

	agg = Recompute(trosa.MontantTotal, payments)
	assert.True(t, agg.TotalPaid.Equal(dec("1000")))
	assert.True(t, agg.Remaining.Equal(decimal.Zero))
	assert.True(t, agg.IsPaid)
	assert.True(t, trosa.IsPaid)
	require.NotNil(t, trosa.DatePaiement)
	assert.Equal(t, now, *trosa.DatePaiement)
}

func TestAddPayment_AlreadyPaidRejected(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "1000"), now)
	require.NoError(t, err)
	require.True(t, trosa.IsPaid)

	_, _, err = AddPayment(trosa, payments, payment(2, "1"), now)
	var invErr InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, invErr.Error(), "already fully paid")

	// state unchanged
	agg := Recompute(trosa.MontantTotal, payments)
	assert.True(t, agg.TotalPaid.Equal(dec("1000")))
}

func TestAddPayment_ExceedsRemainingRejected(t *testing.T) {
	trosa := newTrosa("500")

	_, _, err := AddPayment(trosa, nil, payment(1, "600"), now)
	var invErr InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.True(t, invErr.Remaining.Equal(dec("500")), "remaining %s", invErr.Remaining)
	assert.Contains(t, invErr.Error(), "500.00")
}

func TestAddPayment_NonPositiveRejected(t *testing.T) {
	trosa := newTrosa("500")

	for _, amount := range []string{"0", "-5"} {
		_, _, err := AddPayment(trosa, nil, payment(1, amount), now)
		var valErr ValidationError
		assert.ErrorAs(t, err, &valErr, amount)
	}
}

func TestAddPayment_ZeroTotalRejectsAnyPayment(t *testing.T) {
	trosa := newTrosa("0")

	_, _, err := AddPayment(trosa, nil, payment(1, "1"), now)
	var invErr InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.True(t, invErr.Remaining.IsZero())
}

func TestRemovePayment_RevivesPaidTrosa(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)
	trosa, payments, err = AddPayment(trosa, payments, payment(2, "400"), now)
	require.NoError(t, err)
	require.True(t, trosa.IsPaid)

	trosa, payments, err = RemovePayment(trosa, payments, 2)
	require.NoError(t, err)

	assert.False(t, trosa.IsPaid)
	assert.Nil(t, trosa.DatePaiement)
	agg := Recompute(trosa.MontantTotal, payments)
	assert.True(t, agg.TotalPaid.Equal(dec("600")))
	assert.True(t, agg.Remaining.Equal(dec("400")))
}

func TestRemovePayment_NotFound(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)

	_, _, err = RemovePayment(trosa, payments, 99)
	var nfErr NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "payment", nfErr.Resource)
	assert.Equal(t, uint(99), nfErr.ID)
}

func TestRemovePayment_StaysPaidWhenSumStillCoversTotal(t *testing.T) {
	// only possible when the total was edited independently
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)
	trosa, payments, err = AddPayment(trosa, payments, payment(2, "400"), now)
	require.NoError(t, err)

	trosa.MontantTotal = dec("300")

	trosa, _, err = RemovePayment(trosa, payments, 2)
	require.NoError(t, err)
	assert.True(t, trosa.IsPaid)
}

func TestRecompute_Idempotent(t *testing.T) {
	payments := []models.TrosaPayment{payment(1, "100.50"), payment(2, "249.50")}
	total := dec("1000")

	first := Recompute(total, payments)
	second := Recompute(total, payments)

	assert.True(t, first.TotalPaid.Equal(second.TotalPaid))
	assert.True(t, first.Remaining.Equal(second.Remaining))
	assert.Equal(t, first.IsPaid, second.IsPaid)
}

func TestRecompute_RemainingNeverNegative(t *testing.T) {
	agg := Recompute(dec("100"), []models.TrosaPayment{payment(1, "150")})
	assert.True(t, agg.Remaining.IsZero())
	assert.True(t, agg.IsPaid)
}

func TestApplyTotalChange_ForbidsLoweringBelowPaid(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)

	_, err = ApplyTotalChange(trosa, payments, dec("500"), now)
	var invErr InvariantError
	require.ErrorAs(t, err, &invErr)
	assert.Contains(t, invErr.Error(), "600.00")
}

func TestApplyTotalChange_RaisingTotalRevivesPaidTrosa(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "1000"), now)
	require.NoError(t, err)
	require.True(t, trosa.IsPaid)

	trosa, err = ApplyTotalChange(trosa, payments, dec("1500"), now)
	require.NoError(t, err)
	assert.False(t, trosa.IsPaid)
	assert.Nil(t, trosa.DatePaiement)
}

func TestApplyTotalChange_LoweringToPaidSumMarksPaid(t *testing.T) {
	trosa := newTrosa("1000")
	trosa, payments, err := AddPayment(trosa, nil, payment(1, "600"), now)
	require.NoError(t, err)

	trosa, err = ApplyTotalChange(trosa, payments, dec("600"), now)
	require.NoError(t, err)
	assert.True(t, trosa.IsPaid)
	require.NotNil(t, trosa.DatePaiement)
}

// TestReplay_InvariantHoldsUnderRandomSequences replays random add/remove
// sequences and checks the core invariant after every operation: the
// payment sum never exceeds the total, and paid status always matches the
// sum exactly.
func TestReplay_InvariantHoldsUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		total := decimal.NewFromInt(int64(rng.Intn(2000) + 1))
		trosa := models.Trosa{ID: 1, DebtorName: "Rasoa", MontantTotal: total}
		var payments []models.TrosaPayment
		nextID := uint(1)

		for op := 0; op < 40; op++ {
			if rng.Intn(3) > 0 || len(payments) == 0 {
				amount := decimal.NewFromInt(int64(rng.Intn(800) + 1))
				p := models.TrosaPayment{ID: nextID, TrosaID: 1, Montant: amount, DatePaiement: now}
				updated, updatedPayments, err := AddPayment(trosa, payments, p, now)
				if err == nil {
					trosa, payments = updated, updatedPayments
					nextID++
				}
			} else {
				victim := payments[rng.Intn(len(payments))].ID
				updated, updatedPayments, err := RemovePayment(trosa, payments, victim)
				require.NoError(t, err)
				trosa, payments = updated, updatedPayments
			}

			agg := Recompute(trosa.MontantTotal, payments)
			require.True(t, agg.TotalPaid.LessThanOrEqual(trosa.MontantTotal),
				"run %d op %d: paid %s exceeds total %s", run, op, agg.TotalPaid, trosa.MontantTotal)
			require.Equal(t, agg.IsPaid, trosa.IsPaid,
				"run %d op %d: stored flag drifted from payment sum", run, op)
			if trosa.IsPaid {
				require.NotNil(t, trosa.DatePaiement)
			} else {
				require.Nil(t, trosa.DatePaiement)
			}
		}
	}
}
