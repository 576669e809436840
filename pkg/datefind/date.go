package datefind

import (
	"fmt"
	"time"

	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/teambition/rrule-go"
)

type Recurrence int

const (
	RecurNone Recurrence = iota
	RecurDaily
	RecurWeekly
	RecurMonthly
	RecurYearly
)

func (r Recurrence) String() string {
	switch r {
	case RecurNone:
		return "none"
	case RecurDaily:
		return "daily"
	case RecurWeekly:
		return "weekly"
	case RecurMonthly:
		return "monthly"
	case RecurYearly:
		return "yearly"
	}
	return fmt.Sprintf("Recurrence(%d)", int(r))
}

// Frequency maps onto the rrule frequency; false for RecurNone.
func (r Recurrence) Frequency() (rrule.Frequency, bool) {
	switch r {
	case RecurDaily:
		return rrule.DAILY, true
	case RecurWeekly:
		return rrule.WEEKLY, true
	case RecurMonthly:
		return rrule.MONTHLY, true
	case RecurYearly:
		return rrule.YEARLY, true
	}
	return 0, false
}

// Date is one resolved occurrence. Start and Stop are unix seconds; Stop is
// exclusive when it falls on a midnight.
type Date struct {
	Start      int64
	Stop       int64
	Recurrence Recurrence
	// the part of the input the date was read from
	Text string
	// descriptive part of day, see TimeOfDay
	TimeTag int
}

func (d Date) StartTime(loc *time.Location) time.Time {
	return time.Unix(d.Start, 0).In(loc)
}

func (d Date) StopTime(loc *time.Location) time.Time {
	return time.Unix(d.Stop, 0).In(loc)
}

func (d Date) Duration() time.Duration {
	return time.Duration(d.Stop-d.Start) * time.Second
}

func (d Date) IsInterval() bool {
	return d.Stop > d.Start
}

func (d Date) IsRecurring() bool {
	return d.Recurrence != RecurNone
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

// BestStop moves a stop that lands exactly on midnight back one second, into
// the day it closes.
func (d Date) BestStop(loc *time.Location) int64 {
	if d.IsInterval() && isMidnight(d.StopTime(loc)) {
		return d.Stop - 1
	}
	return d.Stop
}

// IsAllDay is true when the date covers whole days only.
func (d Date) IsAllDay(loc *time.Location) bool {
	return d.IsInterval() && isMidnight(d.StartTime(loc)) && isMidnight(d.StopTime(loc))
}

func (d Date) IsSameDay(loc *time.Location) bool {
	start := d.StartTime(loc)
	stop := time.Unix(d.BestStop(loc), 0).In(loc)
	return start.YearDay() == stop.YearDay() && start.Year() == stop.Year()
}

func (d Date) IsMultiDay(loc *time.Location) bool {
	return !d.IsSameDay(loc)
}

func (d Date) ISO8601(loc *time.Location) (string, string) {
	return d.StartTime(loc).Format(time.RFC3339), d.StopTime(loc).Format(time.RFC3339)
}

// TimeOfDay names the part of day the date was described with ("night",
// "evening", "afternoon", "morning"), "" when it was not.
func (d Date) TimeOfDay() string {
	return TimeOfDayWord(d.TimeTag)
}

// RRule anchors the recurrence at Start. count limits the occurrences, 0
// leaves the rule open ended.
func (d Date) RRule(loc *time.Location, count int) (*rrule.RRule, error) {
	freq, ok := d.Recurrence.Frequency()
	if !ok {
		return nil, fmt.Errorf("%w: '%s' does not recur", terrors.ErrValue, d.Text)
	}
	return rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: d.StartTime(loc),
		Count:   count,
	})
}

// Occurrences lists the next count starts of a recurring date; a one-off
// date yields its own start.
func (d Date) Occurrences(loc *time.Location, count int) ([]time.Time, error) {
	if !d.IsRecurring() {
		return []time.Time{d.StartTime(loc)}, nil
	}
	rule, err := d.RRule(loc, count)
	if err != nil {
		return nil, err
	}
	return rule.All(), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%s -> start: %d, stop: %d", d.Text, d.Start, d.Stop)
}
