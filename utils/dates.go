package utils

import "time"

// Today returns midnight of the current day in local time. Check-in and
// check-out dates are stored at day granularity.
func Today() time.Time {
	return Midnight(time.Now())
}

// Midnight truncates t to the start of its day in local time.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a to b. The dates
// are re-anchored in UTC first so a DST transition inside the interval
// cannot shorten a day below 24 hours and truncate the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD payload value into local midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders a date the way payloads carry it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
