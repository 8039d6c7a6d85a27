package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

func TestSelectReminders(t *testing.T) {
	cs := []models.Commitment{
		commitment(1, 100, daysFromToday(-10)), // overdue
		commitment(2, 200, daysFromToday(-1)),  // overdue
		commitment(3, 300, daysFromToday(0)),   // due today
		commitment(4, 400, daysFromToday(3)),   // exactly three days out
		commitment(5, 500, daysFromToday(2)),   // not a reminder: 3 is exact, not a range
		commitment(6, 600, daysFromToday(4)),   // not a reminder
		commitment(7, 700, nil),                // unparseable date: skipped
	}

	r := SelectReminders(cs, today)

	assert.Len(t, r.Overdue, 2)
	assert.Len(t, r.DueToday, 1)
	assert.Len(t, r.Due3Days, 1)
	assert.Equal(t, uint(3), r.DueToday[0].ID)
	assert.Equal(t, uint(4), r.Due3Days[0].ID)
}

// The reminder policy ignores partial payments on purpose: the dashboard
// classifier suppresses overdue when money has come in, the reminder job does
// not. This asymmetry favors a noisy alert over a missed one.
func TestSelectRemindersIgnoresPartialPayments(t *testing.T) {
	partiallyPaid := commitment(1, 1000, daysFromToday(-2))

	r := SelectReminders([]models.Commitment{partiallyPaid}, today)

	assert.Len(t, r.Overdue, 1)

	// DashboardSummary classifies the same record as partial, not overdue.
	s := DashboardSummary(
		[]models.Commitment{partiallyPaid},
		[]models.Payment{payment(1, 250, false)},
		today,
	)
	assert.Zero(t, s.Overdue.Count)
	assert.Equal(t, 1, s.PartialPayment.Count)
}

func TestSelectRemindersSkipsSettled(t *testing.T) {
	settled := commitment(1, 100, daysFromToday(-5))
	settled.Paid = true

	r := SelectReminders([]models.Commitment{settled}, today)

	assert.Empty(t, r.Overdue)
	assert.Empty(t, r.DueToday)
	assert.Empty(t, r.Due3Days)
}
