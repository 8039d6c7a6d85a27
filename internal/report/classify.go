package report

import (
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// Bucket is the classification result of one commitment at one evaluation
// instant. Buckets are mutually exclusive; see Classification.InPending for
// the reporting superset.
type Bucket string

const (
	BucketPaid      Bucket = "paid"
	BucketPartial   Bucket = "partialPayment"
	BucketOverdue   Bucket = "overdue"
	BucketDueToday  Bucket = "dueToday"
	BucketNext7Days Bucket = "next7Days"
	BucketPending   Bucket = "pending"
)

// upcomingWindowDays is the horizon of the "due soon" bucket.
const upcomingWindowDays = 7

// Classification is the classifier's verdict for a single commitment.
type Classification struct {
	Bucket Bucket
	Amount float64
	// InPending marks buckets that also count toward the pending total for
	// reporting: partial payments, due today and due within 7 days all remain
	// outstanding work. Overdue and paid do not.
	InPending bool
	// Unclassifiable is set when the commitment has no usable due date and no
	// other signal. Such records land in pending with their amount counted,
	// and are surfaced separately so they never silently vanish from totals.
	Unclassifiable bool
}

// Classify buckets one commitment. The decision policy runs in fixed order,
// first match wins:
//
//  1. settled by any stored hint            -> paid
//  2. has real payments with amount > 0     -> partialPayment (also pending)
//  3. due date before today                 -> overdue
//  4. due date is today                     -> dueToday (also pending)
//  5. due date within the next 7 days       -> next7Days (also pending)
//  6. otherwise                             -> pending
//
// A partial payment suppresses the overdue signal on purpose: the commitment
// still counts as outstanding, but it is not flagged late while money is
// coming in. `today` must already be midnight-normalized by the caller.
func Classify(c models.Commitment, idx PaymentIndex, today time.Time) Classification {
	out := Classification{Amount: c.Amount}

	if ResolveStatus(c) == StatusSettled {
		out.Bucket = BucketPaid
		return out
	}

	if idx.HasPayments(c.ID) {
		out.Bucket = BucketPartial
		out.InPending = true
		return out
	}

	due, err := ParseDay(c.DueDate)
	if err != nil {
		// Bad or missing date on a single record must not poison the batch.
		out.Bucket = BucketPending
		out.InPending = true
		out.Unclassifiable = true
		return out
	}

	switch diff := DaysBetween(today, due); {
	case diff < 0:
		out.Bucket = BucketOverdue
	case diff == 0:
		out.Bucket = BucketDueToday
		out.InPending = true
	case diff <= upcomingWindowDays:
		out.Bucket = BucketNext7Days
		out.InPending = true
	default:
		out.Bucket = BucketPending
		out.InPending = true
	}
	return out
}
