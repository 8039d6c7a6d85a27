package report

import (
	"time"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// reminderLeadDays is the exact offset of the third reminder list: a
// commitment due exactly this many days out, not a range.
const reminderLeadDays = 3

// Reminders is the proactive-notification selection: three disjoint lists
// keyed by how urgent the commitment is today.
type Reminders struct {
	Overdue  []models.Commitment `json:"overdue"`
	DueToday []models.Commitment `json:"dueToday"`
	Due3Days []models.Commitment `json:"due3Days"`
}

// SelectReminders applies the notification policy: status plus date only.
//
// Unlike Classify, this deliberately ignores partial payments — a commitment
// with money already against it still triggers an overdue reminder. The
// dashboard suppresses the overdue flag in that case; the reminder job
// prefers a noisy alert over a missed one. Keep the two policies separate.
//
// Callers are expected to pre-filter the input to open commitments (status
// 'pending' or 'overdue') at the query layer; settled hints are still checked
// here so a stray record cannot produce a reminder for a paid commitment.
func SelectReminders(commitments []models.Commitment, now time.Time) Reminders {
	today := NormalizeDay(now)
	var r Reminders

	for _, c := range commitments {
		if ResolveStatus(c) == StatusSettled {
			continue
		}
		due, err := ParseDay(c.DueDate)
		if err != nil {
			continue
		}
		switch diff := DaysBetween(today, due); {
		case diff < 0:
			r.Overdue = append(r.Overdue, c)
		case diff == 0:
			r.DueToday = append(r.DueToday, c)
		case diff == reminderLeadDays:
			r.Due3Days = append(r.Due3Days, c)
		}
	}
	return r
}
