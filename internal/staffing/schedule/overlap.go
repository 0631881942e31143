package schedule

import "time"

// Normalize truncates t to midnight UTC so that two dates on the same
// calendar day always compare equal regardless of time-of-day or zone.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Ranges that touch at exactly one day overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = Normalize(aStart), Normalize(aEnd)
	bStart, bEnd = Normalize(bStart), Normalize(bEnd)
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
