package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

var today = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func commitment(id uint, amount float64, due *time.Time) models.Commitment {
	return models.Commitment{
		Model:   gorm.Model{ID: id},
		Amount:  amount,
		DueDate: due,
		Status:  "pending",
	}
}

func dayPtr(t time.Time) *time.Time { return &t }

func daysFromToday(n int) *time.Time {
	return dayPtr(today.AddDate(0, 0, n))
}

func payment(commitmentID uint, amount float64, tax bool) models.Payment {
	id := commitmentID
	return models.Payment{CommitmentID: &id, Amount: amount, Date: today, Is4x1000Tax: tax}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name string
		c    models.Commitment
		want Status
	}{
		{"plain pending", models.Commitment{Status: "pending"}, StatusOpen},
		{"advisory overdue", models.Commitment{Status: "overdue"}, StatusOpen},
		{"status paid", models.Commitment{Status: "paid"}, StatusSettled},
		{"status completed", models.Commitment{Status: "completed"}, StatusSettled},
		{"status mixed case", models.Commitment{Status: " Paid "}, StatusSettled},
		{"paid flag wins over status", models.Commitment{Status: "pending", Paid: true}, StatusSettled},
		{"isPaid flag wins over status", models.Commitment{Status: "overdue", IsPaid: true}, StatusSettled},
		{"empty everything", models.Commitment{}, StatusOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.c))
		})
	}
}

func TestBuildPaymentIndexExcludesTax(t *testing.T) {
	idx := BuildPaymentIndex([]models.Payment{
		payment(1, 100, true),
		payment(1, 200, false),
		payment(2, 300, true),
		{Amount: 400, Date: today}, // no commitment reference
	})

	assert.Len(t, idx.Payments(1), 1)
	assert.Equal(t, 200.0, idx.TotalPaid(1))
	assert.True(t, idx.HasPayments(1))

	// Tax-only commitments index as having no payments at all.
	assert.Empty(t, idx.Payments(2))
	assert.Zero(t, idx.TotalPaid(2))
	assert.False(t, idx.HasPayments(2))
}

func TestClassifyDecisionOrder(t *testing.T) {
	tests := []struct {
		name        string
		c           models.Commitment
		payments    []models.Payment
		wantBucket  Bucket
		wantPending bool
	}{
		{
			name:       "settled status wins over everything",
			c:          models.Commitment{Model: gorm.Model{ID: 1}, Status: "paid", DueDate: daysFromToday(-30)},
			payments:   []models.Payment{payment(1, 50, false)},
			wantBucket: BucketPaid,
		},
		{
			name:        "partial payment suppresses overdue",
			c:           commitment(2, 2000, daysFromToday(-5)),
			payments:    []models.Payment{payment(2, 500, false)},
			wantBucket:  BucketPartial,
			wantPending: true,
		},
		{
			name:       "tax-only payments do not suppress overdue",
			c:          commitment(3, 1000, daysFromToday(-5)),
			payments:   []models.Payment{payment(3, 4, true)},
			wantBucket: BucketOverdue,
		},
		{
			name:       "no payments past due",
			c:          commitment(4, 1000, daysFromToday(-1)),
			wantBucket: BucketOverdue,
		},
		{
			name:        "due exactly today",
			c:           commitment(5, 1000, daysFromToday(0)),
			wantBucket:  BucketDueToday,
			wantPending: true,
		},
		{
			name:        "due tomorrow",
			c:           commitment(6, 1000, daysFromToday(1)),
			wantBucket:  BucketNext7Days,
			wantPending: true,
		},
		{
			name:        "due in exactly seven days",
			c:           commitment(7, 1000, daysFromToday(7)),
			wantBucket:  BucketNext7Days,
			wantPending: true,
		},
		{
			name:        "due in eight days",
			c:           commitment(8, 1000, daysFromToday(8)),
			wantBucket:  BucketPending,
			wantPending: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildPaymentIndex(tt.payments)
			got := Classify(tt.c, idx, today)
			assert.Equal(t, tt.wantBucket, got.Bucket)
			assert.Equal(t, tt.wantPending, got.InPending)
			assert.Equal(t, tt.c.Amount, got.Amount)
			assert.False(t, got.Unclassifiable)
		})
	}
}

// When the process runs west of UTC, a due date stored as midnight UTC comes
// back from the database as the previous local evening. On its own due date
// the commitment must classify as due today, never as overdue.
func TestClassifyUTCStoredDueDateOnItsOwnDay(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	stored, err := time.Parse("2006-01-02", "2025-05-01")
	require.NoError(t, err)
	fromDB := stored.In(bogota) // 2025-04-30 19:00 -05
	c := commitment(11, 1000, &fromDB)

	onDueDate := NormalizeDay(time.Date(2025, 5, 1, 9, 30, 0, 0, bogota))
	assert.Equal(t, BucketDueToday, Classify(c, BuildPaymentIndex(nil), onDueDate).Bucket)

	dayAfter := NormalizeDay(time.Date(2025, 5, 2, 9, 30, 0, 0, bogota))
	assert.Equal(t, BucketOverdue, Classify(c, BuildPaymentIndex(nil), dayAfter).Bucket)

	// The seven-day window boundary holds across the zone skew too.
	sevenOut := NormalizeDay(time.Date(2025, 4, 24, 9, 30, 0, 0, bogota))
	assert.Equal(t, BucketNext7Days, Classify(c, BuildPaymentIndex(nil), sevenOut).Bucket)
	eightOut := NormalizeDay(time.Date(2025, 4, 23, 9, 30, 0, 0, bogota))
	assert.Equal(t, BucketPending, Classify(c, BuildPaymentIndex(nil), eightOut).Bucket)
}

func TestClassifyMissingDueDate(t *testing.T) {
	c := commitment(9, 750, nil)
	got := Classify(c, BuildPaymentIndex(nil), today)

	// No usable date and no other signal: the record lands in pending with
	// its amount counted, flagged rather than dropped.
	assert.Equal(t, BucketPending, got.Bucket)
	assert.True(t, got.Unclassifiable)
	assert.Equal(t, 750.0, got.Amount)
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := commitment(10, 1200, daysFromToday(3))
	idx := BuildPaymentIndex([]models.Payment{payment(10, 100, false)})

	first := Classify(c, idx, today)
	second := Classify(c, idx, today)
	require.Equal(t, first, second)
}
