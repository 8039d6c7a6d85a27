package report

import (
	"sort"
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// BucketTotal is a count plus a monetary sum.
type BucketTotal struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

func (t *BucketTotal) add(amount float64) {
	t.Count++
	t.Amount += amount
}

// Summary is the renderer payload shared by the dashboard endpoint, the
// Telegram commands and the scheduled daily report. It carries numbers and
// sorted lists only; currency formatting, HTML and emoji belong to the
// presentation layers.
//
// Pending is a reporting superset: partial payments, due-today and due-soon
// commitments are counted into it in addition to their own buckets. Overdue
// and paid are not.
type Summary struct {
	Overdue        BucketTotal `json:"overdue"`
	PartialPayment BucketTotal `json:"partialPayment"`
	DueToday       BucketTotal `json:"dueToday"`
	Next7Days      BucketTotal `json:"next7Days"`
	Pending        BucketTotal `json:"pending"`
	Paid           BucketTotal `json:"paid"`

	// Unclassified counts records with no usable due date that fell through
	// to pending. Their amounts are inside Pending already.
	Unclassified     int `json:"unclassified"`
	TotalCommitments int `json:"totalCommitments"`

	TotalPayments       int     `json:"totalPayments"`
	TotalPaymentsAmount float64 `json:"totalPaymentsAmount"`
	MonthPayments       BucketTotal `json:"monthPayments"`
	TodayPayments       BucketTotal `json:"todayPayments"`

	// Commitments ascending by due date, Payments descending by date. The
	// rendering layers rely on this ordering; do not change it.
	Commitments []models.Commitment `json:"commitments"`
	Payments    []models.Payment    `json:"payments"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// DashboardSummary aggregates the whole dataset with no period filter.
func DashboardSummary(commitments []models.Commitment, payments []models.Payment, now time.Time) Summary {
	return buildSummary(commitments, payments, now)
}

// MonthSummary aggregates one calendar month: commitments whose due date
// falls inside the month, payments whose date does. Classification inside the
// subset is still relative to now, not to the filtered month — a commitment
// due in a past month that was never paid is overdue today, not merely
// "unpaid for that month".
func MonthSummary(commitments []models.Commitment, payments []models.Payment, month time.Month, year int, now time.Time) Summary {
	// Membership is decided on the normalized calendar day, not the stored
	// instant: a due day carried at midnight UTC and one at local midnight
	// must land in the same month.
	var cs []models.Commitment
	for _, c := range commitments {
		due, err := ParseDay(c.DueDate)
		if err != nil {
			continue
		}
		if due.Year() == year && due.Month() == month {
			cs = append(cs, c)
		}
	}

	var ps []models.Payment
	for _, p := range payments {
		d := normalizeStored(p.Date)
		if d.Year() == year && d.Month() == month {
			ps = append(ps, p)
		}
	}

	return buildSummary(cs, ps, now)
}

func buildSummary(commitments []models.Commitment, payments []models.Payment, now time.Time) Summary {
	today := NormalizeDay(now)
	idx := BuildPaymentIndex(payments)

	s := Summary{GeneratedAt: now, TotalCommitments: len(commitments)}

	for _, c := range commitments {
		cl := Classify(c, idx, today)
		switch cl.Bucket {
		case BucketPaid:
			s.Paid.add(cl.Amount)
		case BucketPartial:
			s.PartialPayment.add(cl.Amount)
		case BucketOverdue:
			s.Overdue.add(cl.Amount)
		case BucketDueToday:
			s.DueToday.add(cl.Amount)
		case BucketNext7Days:
			s.Next7Days.add(cl.Amount)
		case BucketPending:
			s.Pending.add(cl.Amount)
		}
		// The pending superset: buckets that remain outstanding are counted
		// into pending on top of their own bucket.
		if cl.InPending && cl.Bucket != BucketPending {
			s.Pending.add(cl.Amount)
		}
		if cl.Unclassifiable {
			s.Unclassified++
		}
	}

	for _, p := range payments {
		if p.Is4x1000Tax {
			continue
		}
		s.TotalPayments++
		s.TotalPaymentsAmount += p.Amount

		d := normalizeStored(p.Date)
		if d.Year() == today.Year() && d.Month() == today.Month() {
			s.MonthPayments.add(p.Amount)
		}
		if SameDay(d, today) {
			s.TodayPayments.add(p.Amount)
		}
	}

	s.Commitments = sortCommitmentsByDueDate(commitments)
	s.Payments = sortPaymentsByDateDesc(payments)
	return s
}

// sortCommitmentsByDueDate returns a copy sorted ascending by due date.
// Commitments without a due date sort last.
func sortCommitmentsByDueDate(commitments []models.Commitment) []models.Commitment {
	out := make([]models.Commitment, len(commitments))
	copy(out, commitments)
	sort.SliceStable(out, func(i, j int) bool {
		di, ei := ParseDay(out[i].DueDate)
		dj, ej := ParseDay(out[j].DueDate)
		if ei != nil {
			return false
		}
		if ej != nil {
			return true
		}
		return di.Before(dj)
	})
	return out
}

// sortPaymentsByDateDesc returns a copy sorted most recent first.
func sortPaymentsByDateDesc(payments []models.Payment) []models.Payment {
	out := make([]models.Payment, len(payments))
	copy(out, payments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
