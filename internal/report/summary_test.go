package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

func TestDashboardSummarySingleOverdue(t *testing.T) {
	cs := []models.Commitment{commitment(1, 1000, daysFromToday(-5))}

	s := DashboardSummary(cs, nil, today)

	assert.Equal(t, BucketTotal{Count: 1, Amount: 1000}, s.Overdue)
	assert.Zero(t, s.Pending.Count)
	assert.Zero(t, s.PartialPayment.Count)
	assert.Equal(t, 1, s.TotalCommitments)
}

func TestDashboardSummaryPartialCountsIntoPending(t *testing.T) {
	cs := []models.Commitment{commitment(2, 2000, daysFromToday(-5))}
	ps := []models.Payment{payment(2, 500, false)}

	s := DashboardSummary(cs, ps, today)

	assert.Equal(t, 1, s.PartialPayment.Count)
	assert.Equal(t, 1, s.Pending.Count)
	assert.Zero(t, s.Overdue.Count)
	assert.Equal(t, 2000.0, s.Pending.Amount)
}

func TestDashboardSummaryTaxExclusion(t *testing.T) {
	ps := []models.Payment{
		{Amount: 100, Date: today, Is4x1000Tax: true},
		{Amount: 200, Date: today, Is4x1000Tax: false},
	}

	s := DashboardSummary(nil, ps, today)

	assert.Equal(t, 1, s.TotalPayments)
	assert.Equal(t, 200.0, s.TotalPaymentsAmount)
	assert.Equal(t, BucketTotal{Count: 1, Amount: 200}, s.TodayPayments)
}

func TestDashboardSummaryAllTaxPaymentsYieldZero(t *testing.T) {
	ps := []models.Payment{
		{Amount: 100, Date: today, Is4x1000Tax: true},
		{Amount: 350, Date: today.AddDate(0, 0, -10), Is4x1000Tax: true},
	}

	s := DashboardSummary(nil, ps, today)

	assert.Zero(t, s.TotalPayments)
	assert.Zero(t, s.TotalPaymentsAmount)
	assert.Zero(t, s.MonthPayments.Count)
	assert.Zero(t, s.TodayPayments.Count)
}

// Exhaustiveness: every commitment lands in exactly one top-level bucket, and
// the pending total equals its own bucket plus the superset members.
func TestDashboardSummaryExhaustiveness(t *testing.T) {
	paid := commitment(1, 100, daysFromToday(-30))
	paid.Status = "paid"

	cs := []models.Commitment{
		paid,
		commitment(2, 200, daysFromToday(-3)), // partial (payment below)
		commitment(3, 300, daysFromToday(-1)), // overdue
		commitment(4, 400, daysFromToday(0)),  // due today
		commitment(5, 500, daysFromToday(6)),  // next 7 days
		commitment(6, 600, daysFromToday(45)), // plain pending
		commitment(7, 700, nil),               // unclassifiable -> pending
	}
	ps := []models.Payment{payment(2, 50, false)}

	s := DashboardSummary(cs, ps, today)

	topLevel := s.Paid.Count + s.PartialPayment.Count + s.Overdue.Count +
		s.DueToday.Count + s.Next7Days.Count +
		(s.Pending.Count - s.PartialPayment.Count - s.DueToday.Count - s.Next7Days.Count)
	assert.Equal(t, len(cs), topLevel)

	assert.Equal(t, 1, s.Paid.Count)
	assert.Equal(t, 1, s.PartialPayment.Count)
	assert.Equal(t, 1, s.Overdue.Count)
	assert.Equal(t, 1, s.DueToday.Count)
	assert.Equal(t, 1, s.Next7Days.Count)
	// pending = partial + dueToday + next7 + plain pending + unclassifiable
	assert.Equal(t, 5, s.Pending.Count)
	assert.Equal(t, 200.0+400+500+600+700, s.Pending.Amount)
	assert.Equal(t, 1, s.Unclassified)
}

func TestSummaryOrderingContract(t *testing.T) {
	cs := []models.Commitment{
		commitment(1, 100, daysFromToday(10)),
		commitment(2, 200, daysFromToday(-2)),
		commitment(3, 300, nil),
		commitment(4, 400, daysFromToday(3)),
	}
	ps := []models.Payment{
		{Amount: 1, Date: today.AddDate(0, 0, -8)},
		{Amount: 2, Date: today},
		{Amount: 3, Date: today.AddDate(0, 0, -1)},
	}

	s := DashboardSummary(cs, ps, today)

	require.Len(t, s.Commitments, 4)
	assert.Equal(t, uint(2), s.Commitments[0].ID)
	assert.Equal(t, uint(4), s.Commitments[1].ID)
	assert.Equal(t, uint(1), s.Commitments[2].ID)
	// Missing due date sorts last.
	assert.Equal(t, uint(3), s.Commitments[3].ID)

	require.Len(t, s.Payments, 3)
	assert.Equal(t, 2.0, s.Payments[0].Amount)
	assert.Equal(t, 3.0, s.Payments[1].Amount)
	assert.Equal(t, 1.0, s.Payments[2].Amount)
}

func TestMonthSummaryFiltersBothSets(t *testing.T) {
	// Evaluation date 2025-06-16; aggregate May 2025.
	may5 := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	june2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	cs := []models.Commitment{
		commitment(1, 1000, dayPtr(may5)),  // in May, never paid
		commitment(2, 2000, dayPtr(june2)), // outside the month
	}
	ps := []models.Payment{
		{Amount: 300, Date: may5},
		{Amount: 400, Date: june2},
		{Amount: 70, Date: may5, Is4x1000Tax: true},
	}

	s := MonthSummary(cs, ps, time.May, 2025, today)

	// Classification is relative to today, not to the filtered month: an
	// unpaid May commitment is overdue in June, not merely "unpaid for May".
	assert.Equal(t, BucketTotal{Count: 1, Amount: 1000}, s.Overdue)
	assert.Equal(t, 1, s.TotalCommitments)

	assert.Equal(t, 1, s.TotalPayments)
	assert.Equal(t, 300.0, s.TotalPaymentsAmount)
}

func TestMonthSummaryBoundariesInclusive(t *testing.T) {
	first := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	cs := []models.Commitment{
		commitment(1, 100, dayPtr(first)),
		commitment(2, 200, dayPtr(last)),
	}

	s := MonthSummary(cs, nil, time.May, 2025, today)
	assert.Equal(t, 2, s.TotalCommitments)
}

// Month membership is decided on the calendar day, so a first-of-month due
// date stored as midnight UTC stays in its month even when the evaluation
// zone sits west of UTC.
func TestMonthSummaryKeepsUTCStoredFirstOfMonth(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	stored, err := time.Parse("2006-01-02", "2025-05-01")
	require.NoError(t, err)
	fromDB := stored.In(bogota)

	cs := []models.Commitment{commitment(1, 500, &fromDB)}
	ps := []models.Payment{{Amount: 120, Date: fromDB}}

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, bogota)
	s := MonthSummary(cs, ps, time.May, 2025, now)

	assert.Equal(t, 1, s.TotalCommitments)
	assert.Equal(t, BucketTotal{Count: 1, Amount: 120}, s.MonthPayments)
	assert.Equal(t, BucketTotal{Count: 1, Amount: 120}, s.TodayPayments)
}

func TestSummaryIdempotence(t *testing.T) {
	cs := []models.Commitment{
		commitment(1, 100, daysFromToday(-1)),
		commitment(2, 200, daysFromToday(2)),
	}
	ps := []models.Payment{payment(2, 20, false)}

	first := DashboardSummary(cs, ps, today)
	second := DashboardSummary(cs, ps, today)
	assert.Equal(t, first, second)
}
