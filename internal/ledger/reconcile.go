// Package ledger reconciles trosa (debt) records against their payments.
// All functions are pure: they take a consistent snapshot of a trosa and
// its payments and return updated values for the caller to persist. The
// storage layer must serialize the read-modify-write window per trosa
// (handlers run these inside a transaction) so the invariant holds under
// concurrent writers.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AndrianinaH/cyberzone-finance/internal/models"
)

// Aggregate is the derived view of a trosa: how much has been paid, how
// much remains, and whether it counts as fully paid.
type Aggregate struct {
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
	IsPaid    bool
}

// Recompute projects the aggregate from the payment sum. It is run on every
// list/detail view rather than trusting the stored is_paid flag, as a
// self-check against drift from partial failures.
func Recompute(montantTotal decimal.Decimal, payments []models.TrosaPayment) Aggregate {
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Montant)
	}
	remaining := montantTotal.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Aggregate{
		TotalPaid: totalPaid,
		Remaining: remaining,
		IsPaid:    totalPaid.GreaterThanOrEqual(montantTotal),
	}
}

// AddPayment validates and applies a new payment against a trosa.
//
// Rejections, in order: non-positive montant (ValidationError), trosa
// already fully paid (InvariantError), payment exceeding the remaining
// balance (InvariantError carrying the exact remainder). On success the
// payment is appended and, if the total is now reached, the trosa flips to
// paid with DatePaiement stamped at now.
func AddPayment(trosa models.Trosa, payments []models.TrosaPayment, payment models.TrosaPayment, now time.Time) (models.Trosa, []models.TrosaPayment, error) {
	if !payment.Montant.IsPositive() {
		return trosa, payments, ValidationError{Reason: "payment amount must be greater than 0"}
	}
	if trosa.IsPaid {
		return trosa, payments, InvariantError{
			Reason:    "trosa is already fully paid",
			Remaining: decimal.Zero,
		}
	}

	agg := Recompute(trosa.MontantTotal, payments)
	newTotal := agg.TotalPaid.Add(payment.Montant)
	if newTotal.GreaterThan(trosa.MontantTotal) {
		return trosa, payments, InvariantError{
			Reason: fmt.Sprintf("payment of %s MGA exceeds the remaining balance (%s MGA)",
				payment.Montant.StringFixed(2), agg.Remaining.StringFixed(2)),
			Remaining: agg.Remaining,
		}
	}

	updated := append(append([]models.TrosaPayment(nil), payments...), payment)
	if newTotal.GreaterThanOrEqual(trosa.MontantTotal) {
		trosa.IsPaid = true
		trosa.DatePaiement = &now
	}
	return trosa, updated, nil
}

// RemovePayment removes a payment by ID and recomputes the trosa status.
// A paid trosa whose sum drops below the total is revived: is_paid and
// date_paiement are cleared. If the sum somehow still covers the total
// (only possible when the total was edited independently) the trosa stays
// paid.
func RemovePayment(trosa models.Trosa, payments []models.TrosaPayment, paymentID uint) (models.Trosa, []models.TrosaPayment, error) {
	remaining := make([]models.TrosaPayment, 0, len(payments))
	found := false
	for _, p := range payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return trosa, payments, NotFoundError{Resource: "payment", ID: paymentID}
	}

	agg := Recompute(trosa.MontantTotal, remaining)
	if !agg.IsPaid && trosa.IsPaid {
		trosa.IsPaid = false
		trosa.DatePaiement = nil
	}
	return trosa, remaining, nil
}

// ApplyTotalChange updates a trosa's montant_total against its recorded
// payments. Lowering the total below the paid sum is forbidden: it would
// silently break the payment invariant. Raising the total past the paid
// sum revives a paid trosa.
func ApplyTotalChange(trosa models.Trosa, payments []models.TrosaPayment, newTotal decimal.Decimal, now time.Time) (models.Trosa, error) {
	if !newTotal.IsPositive() {
		return trosa, ValidationError{Reason: "montant total must be greater than 0"}
	}

	agg := Recompute(trosa.MontantTotal, payments)
	if newTotal.LessThan(agg.TotalPaid) {
		return trosa, InvariantError{
			Reason: fmt.Sprintf("total cannot be lowered below the %s MGA already paid",
				agg.TotalPaid.StringFixed(2)),
			Remaining: agg.Remaining,
		}
	}

	trosa.MontantTotal = newTotal
	nowPaid := agg.TotalPaid.GreaterThanOrEqual(newTotal)
	switch {
	case nowPaid && !trosa.IsPaid:
		trosa.IsPaid = true
		trosa.DatePaiement = &now
	case !nowPaid && trosa.IsPaid:
		trosa.IsPaid = false
		trosa.DatePaiement = nil
	}
	return trosa, nil
}
