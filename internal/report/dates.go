package report

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDate is returned when a stored date value cannot be interpreted
// as a calendar day. Callers must fail the single record, never the batch.
var ErrInvalidDate = errors.New("invalid date value")

// NormalizeDay truncates t to midnight in its own location. Every date
// comparison in this package goes through this function first; comparing a
// raw timestamp against a normalized one is how off-by-one bugs are born.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day. The
// comparison is on date components, so two midnights carried in different
// zones still match.
func SameDay(a, b time.Time) bool {
	an, bn := NormalizeDay(a), NormalizeDay(b)
	return an.Year() == bn.Year() && an.Month() == bn.Month() && an.Day() == bn.Day()
}

// DaysBetween returns the number of calendar days from `from` to `to`
// (negative when `to` is in the past). Both operands are normalized to
// midnight and the difference is rounded, so neither a daylight-saving
// transition inside the window (23h or 25h day) nor a sub-day zone offset
// between the two midnights (a UTC day value against a local today) can
// shift the result.
func DaysBetween(from, to time.Time) int {
	f := NormalizeDay(from)
	t := NormalizeDay(to)
	return int(math.Round(t.Sub(f).Hours() / 24))
}

// dayLayouts are the formats legacy imports store dates in.
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// ParseDay converts a heterogeneous stored date value into a normalized
// calendar day. Accepted inputs are native times, the formats in dayLayouts
// and unix-millisecond numbers (an artifact of the old document exports).
// Anything else, including nil, yields ErrInvalidDate.
func ParseDay(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return normalizeStored(d), nil
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return normalizeStored(*d), nil
	case string:
		for _, layout := range dayLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return NormalizeDay(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, d)
	case int64:
		return parseMillis(d)
	case float64:
		return parseMillis(int64(d))
	default:
		return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidDate, v)
	}
}

// normalizeStored recovers the calendar day of a due date that went through
// the database. The old document exports (and a plain date parse) encode a
// day as midnight UTC, but the driver re-expresses that timestamptz in the
// process zone — in Bogota, "2025-05-01" comes back as 2025-04-30 19:00 -05,
// and truncating in the value's own location would move the due date a day
// earlier. An instant sitting exactly on midnight UTC is therefore taken as
// that UTC calendar day; anything else is a zone-aware midnight already and
// truncates in place.
func normalizeStored(t time.Time) time.Time {
	if u := t.UTC(); u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u
	}
	return NormalizeDay(t)
}

func parseMillis(ms int64) (time.Time, error) {
	if ms <= 0 {
		return time.Time{}, ErrInvalidDate
	}
	// Millisecond values come from the old document exports and carry no
	// zone; interpret them in UTC so the result does not depend on the host.
	return NormalizeDay(time.UnixMilli(ms).UTC()), nil
}
