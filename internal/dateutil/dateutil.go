// Package dateutil provides the calendar-day arithmetic the tracker
// relies on for streaks, goal windows and retention sweeps. All
// computations work on whole local calendar days so that DST shifts
// never change a day difference.
package dateutil

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a yyyy-MM-dd calendar-day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDayKey parses a yyyy-MM-dd key in the local location.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, time.Local)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b's day precedes a's.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// MostRecentSunday returns the most recent Sunday at midnight, local to
// t. If t itself falls on a Sunday the result is that day's midnight.
func MostRecentSunday(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}
