package report

import (
	"strings"

	"github.com/DiChris2901/Dr-Group-sub015/models"
)

// Status is the canonical settled/open resolution of a commitment's stored
// hints. The store carries three overlapping signals (the advisory status
// string plus two legacy booleans); everything downstream of ingestion sees
// only this enum.
type Status string

const (
	// StatusSettled means the commitment is fully paid and leaves the
	// outstanding set entirely.
	StatusSettled Status = "settled"
	// StatusOpen means the commitment still counts toward outstanding work.
	StatusOpen Status = "open"
)

// ResolveStatus collapses the status/paid/isPaid hints into one Status. Any
// settled hint wins: 'paid' or 'completed' in the status string, or either
// boolean set. The advisory values 'pending' and 'overdue' resolve to open —
// they are hints, not authority, and the classifier recomputes them.
func ResolveStatus(c models.Commitment) Status {
	switch strings.ToLower(strings.TrimSpace(c.Status)) {
	case "paid", "completed":
		return StatusSettled
	}
	if c.Paid || c.IsPaid {
		return StatusSettled
	}
	return StatusOpen
}
