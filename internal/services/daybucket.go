package services

import "time"

// dayBucket maps an instant to the start and end of its calendar day in
// the instant's own location: start is midnight, end is the last
// representable millisecond of the day. Two instants on the same day
// always bucket identically; the start is the session lookup key.
func dayBucket(t time.Time) (start, end time.Time) {
	year, month, day := t.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end = time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}
