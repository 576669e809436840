// Package calendar holds the date arithmetic the resolver builds on.
// Days, months and years are plain ints (month 1-12, weekday 1-7 with
// Monday = 1) so callers can carry partially known dates around.
package calendar

import (
	"strconv"
	"time"
)

const (
	Minute = 60
	Hour   = 60 * Minute
	Day    = 24 * Hour
	Week   = 7 * Day
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Location is the fixed zone for a signed offset in seconds east of UTC.
func Location(tzOffset int) *time.Location {
	if tzOffset == 0 {
		return time.UTC
	}
	return time.FixedZone("", tzOffset)
}

func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns 0 for a month outside 1-12.
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	}
	return 0
}

func NextMonth(month, year int) (int, int) {
	month++
	if month > 12 {
		month -= 12
		year++
	}
	return month, year
}

func NextDay(year, month, day int) (int, int, int) {
	total := DaysInMonth(month, year)
	day++
	if day > total {
		day -= total
		month, year = NextMonth(month, year)
	}
	return year, month, day
}

// Weekday maps time.Weekday onto 1 (Monday) .. 7 (Sunday).
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ExpandYear prefixes a two digit year with the century of now.
func ExpandYear(year string, now time.Time) int {
	if len(year) == 2 {
		century := now.Year() / 100
		yy, err := strconv.Atoi(year)
		if err != nil {
			return 0
		}
		return century*100 + yy
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return y
}

// Unix builds a timestamp from wall clock fields in loc; out of range
// fields roll over the way time.Date normalises them.
func Unix(loc *time.Location, year, month, day, hour, minute, second int) int64 {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc).Unix()
}
