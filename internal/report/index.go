package report

import (
	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// PaymentIndex maps a commitment ID to its real (non-tax) payments. It is
// built once per evaluation and shared across every classifier call; the
// classifier must never rescan the full payment set per commitment.
type PaymentIndex struct {
	byCommitment map[uint][]models.Payment
	totalPaid    map[uint]float64
}

// BuildPaymentIndex builds the index in a single pass over the payment set.
// 4x1000 tax entries are skipped entirely: they contribute to neither the
// per-commitment list nor the paid total, so a commitment whose only payments
// are tax deductions indexes as having no payments at all. Unattributed
// payments (no commitment reference) are skipped too.
func BuildPaymentIndex(payments []models.Payment) PaymentIndex {
	idx := PaymentIndex{
		byCommitment: make(map[uint][]models.Payment),
		totalPaid:    make(map[uint]float64),
	}
	for _, p := range payments {
		if p.Is4x1000Tax || p.CommitmentID == nil {
			continue
		}
		id := *p.CommitmentID
		idx.byCommitment[id] = append(idx.byCommitment[id], p)
		idx.totalPaid[id] += p.Amount
	}
	return idx
}

// Payments returns the non-tax payments recorded against a commitment, in
// insertion order.
func (idx PaymentIndex) Payments(commitmentID uint) []models.Payment {
	return idx.byCommitment[commitmentID]
}

// TotalPaid returns the summed non-tax amount paid against a commitment.
func (idx PaymentIndex) TotalPaid(commitmentID uint) float64 {
	return idx.totalPaid[commitmentID]
}

// HasPayments reports whether at least one real payment with a positive
// amount exists for the commitment.
func (idx PaymentIndex) HasPayments(commitmentID uint) bool {
	return len(idx.byCommitment[commitmentID]) > 0 && idx.totalPaid[commitmentID] > 0
}
