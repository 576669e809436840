package datefind

import (
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
)

type ymd struct {
	year, month, day int
}

func ymdOf(t time.Time) ymd {
	y, m, d := t.Date()
	return ymd{y, int(m), d}
}

func (d ymd) time(loc *time.Location) time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
}

// wallClock is a normalised 24h clock reading.
type wallClock struct {
	hour, minute, increment, tag int
}

func wall(t TimeOfDay) wallClock {
	return wallClock{hour: t.HourMil(), minute: t.Minute, increment: t.Increment, tag: t.Tag}
}

var (
	startOfDay = wallClock{}
	// 23:59 plus a minute, so the stop lands on the next midnight
	endOfDay = wallClock{hour: 23, minute: 59, increment: calendar.Minute}
)

func withMeridian(t TimeOfDay, meridian string) TimeOfDay {
	if !t.HasMeridian() {
		t.Meridian = meridian
	}
	return t
}

// lastMinute stands in for a stop hour that falls on the next day; the
// increment carries it over midnight.
func lastMinute(nextDayHour int) TimeOfDay {
	return TimeOfDay{Hour: 11, Minute: 59, Meridian: "pm", Increment: nextDayHour*calendar.Hour + calendar.Minute}
}

// normalizePair fills in missing meridians of an interval and pushes a stop
// that reads earlier than its start onto the next day.
func normalizePair(meridian string, start, stop TimeOfDay) (TimeOfDay, TimeOfDay) {
	if !start.HasMeridian() && !stop.HasMeridian() {
		start.Meridian = meridian
	}
	if stop.Hour < start.Hour {
		stop.Meridian = "pm"
		switch {
		case start.IsPm():
			if start.Hour < 12 {
				stop = lastMinute(stop.Hour)
			}
		case start.Hour < 12:
			start.Meridian = "am"
		default:
			start.Meridian = "pm"
			stop = lastMinute(stop.Hour)
		}
		return start, stop
	}
	if !start.HasMeridian() {
		start.Meridian = stop.Meridian
	} else if !stop.HasMeridian() {
		stop.Meridian = start.Meridian
	}
	return start, stop
}

type resolver struct {
	m    *Match
	now  time.Time
	loc  *time.Location
	text string

	times    Tokens
	interval *Interval
	// start supplied by a day keyword when the input names no time
	defaultTime *TimeOfDay
	// whole periods ("this week", "in 5 days") stay one date when untimed
	period   bool
	timeSpan bool
}

// resolve turns a match into dates. The first captured category decides the
// strategy: month, then week day, then implied unit, then a bare time.
func resolve(m *Match, input string, now time.Time) []Date {
	r := &resolver{
		m:     m,
		now:   now,
		loc:   now.Location(),
		text:  m.Text(input),
		times: m.Times,
	}
	if m.Interval != nil {
		iv := m.Interval.Interval
		r.interval = &iv
	}
	switch {
	case len(m.Months) > 0:
		return r.month()
	case len(m.DayIndexes) > 0:
		return r.weekday()
	case len(m.Implied) > 0:
		return r.implied()
	case m.HasTime():
		return r.bareTime()
	}
	return nil
}

// clockRange picks the clock window: a captured time, a captured interval,
// a keyword default, or the whole day.
func (r *resolver) clockRange(meridian string) (wallClock, wallClock) {
	switch {
	case len(r.times) > 0:
		clk := wall(withMeridian(r.times[0].Clock, meridian))
		return clk, clk
	case r.interval != nil:
		start, stop := normalizePair(meridian, r.interval.Start, r.interval.Stop)
		return wall(start), wall(stop)
	}
	start, stop := startOfDay, endOfDay
	if r.defaultTime != nil {
		start = wall(withMeridian(*r.defaultTime, meridian))
		r.timeSpan = true
	}
	if r.period {
		r.timeSpan = true
	}
	return start, stop
}

func (r *resolver) recurrence() Recurrence {
	if r.m.Prefix != nil && r.m.Prefix.Keyword.IsRecurring() {
		return r.m.Rule.Recur
	}
	return RecurNone
}

func (r *resolver) date(start, stop ymd, cs, ce wallClock) Date {
	d := Date{
		Start:      calendar.Unix(r.loc, start.year, start.month, start.day, cs.hour, cs.minute, 0) + int64(cs.increment),
		Stop:       calendar.Unix(r.loc, stop.year, stop.month, stop.day, ce.hour, ce.minute, 0) + int64(ce.increment),
		Recurrence: r.recurrence(),
		Text:       r.text,
	}
	if d.Stop < d.Start {
		d.Stop = d.Start
	}
	if cs.tag != 0 && cs.tag == ce.tag {
		d.TimeTag = cs.tag
	}
	return d
}

// timestamps emits a single date when the clock window spans the whole
// range. Otherwise it emits one date per day of the start month from the
// start day on, then one per day of the stop month up to the stop day;
// months in between are not filled in.
func (r *resolver) timestamps(start, stop ymd, cs, ce wallClock) []Date {
	if r.timeSpan || start == stop {
		return []Date{r.date(start, stop, cs, ce)}
	}
	if stop.time(r.loc).Before(start.time(r.loc)) {
		return []Date{r.date(start, start, cs, ce)}
	}

	sameMonth := start.year == stop.year && start.month == stop.month
	lastDay := stop.day
	if !sameMonth {
		lastDay = calendar.DaysInMonth(start.month, start.year)
	}
	var out []Date
	for day := start.day; day <= lastDay; day++ {
		d := ymd{start.year, start.month, day}
		out = append(out, r.date(d, d, cs, ce))
	}
	if sameMonth {
		return out
	}
	for day := 1; day <= stop.day; day++ {
		d := ymd{stop.year, stop.month, day}
		out = append(out, r.date(d, d, cs, ce))
	}
	return out
}

func (r *resolver) emit(start, stop ymd, meridian string) []Date {
	cs, ce := r.clockRange(meridian)
	return r.timestamps(start, stop, cs, ce)
}

func (r *resolver) month() []Date {
	m := r.m
	monthStart := m.Months[0].Value
	monthStop := monthStart
	if len(m.Months) > 1 {
		monthStop = m.Months[1].Value
	}

	dayStart := 1
	if len(m.Days) > 0 {
		dayStart = atoi(m.Days[0].Text)
	}

	var yearStart int
	if len(m.Years) > 0 {
		yearStart = m.Years[0].Value
	} else {
		yearStart = r.now.Year()
		cur := int(r.now.Month())
		if cur > monthStart || (cur == monthStart && r.now.Day() > dayStart) {
			yearStart++
		}
	}
	yearStop := yearStart
	if len(m.Years) > 1 {
		// a written stop year is taken as is, no rollover for a start
		// month after the stop month
		yearStop = max(m.Years[1].Value, yearStart)
	} else if monthStart > monthStop {
		yearStop++
	}

	var dayStop int
	switch {
	case len(m.Days) > 1:
		dayStop = atoi(m.Days[1].Text)
	case len(m.Days) > 0:
		dayStop = dayStart
	default:
		dayStop = calendar.DaysInMonth(monthStop, yearStop)
	}
	if monthStart == monthStop && yearStart == yearStop && dayStart > dayStop {
		dayStop = dayStart
	}

	return r.emit(ymd{yearStart, monthStart, dayStart}, ymd{yearStop, monthStop, dayStop}, "")
}

func (r *resolver) weekday() []Date {
	m := r.m
	today := calendar.Weekday(r.now)
	var (
		start    time.Time
		duration int
		kw       *Keyword
	)

	if len(m.Days) > 0 {
		// "monday the 15th": the number decides, rolling into next month
		day := atoi(m.Days[0].Text)
		month, year := int(r.now.Month()), r.now.Year()
		if day < r.now.Day() {
			month, year = calendar.NextMonth(month, year)
		}
		start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, r.loc)
		kw = m.Days[0].Keyword
	} else {
		first := m.DayIndexes[0]
		kw = first.Keyword
		dayStart := first.Value
		if len(m.DayIndexes) > 1 {
			dayStop := m.DayIndexes[1].Value
			switch {
			case dayStop == dayStart:
				duration = 7
			case dayStop > dayStart:
				duration = dayStop - dayStart
			default:
				duration = 7 - dayStart + dayStop
			}
		}
		offset := 7 - today + dayStart
		if kw.SubType == SubTypeSameDay || (m.Prefix == nil && today <= dayStart) || today < dayStart {
			offset = dayStart - today
		}
		start = r.now.AddDate(0, 0, offset)
	}

	if kw.Start != nil {
		if kw.SubType != SubTypeSameDay && start.Hour() > kw.Start.HourMil() {
			start = start.AddDate(0, 0, 1)
		}
		if !m.HasTime() {
			from := *kw.Start
			from.Tag = kw.TimeTag
			if duration == 0 {
				to := from
				if kw.Stop != nil {
					to = *kw.Stop
					to.Tag = kw.TimeTag
				}
				r.interval = &Interval{Start: from, Stop: to}
			} else {
				r.defaultTime = &from
			}
		}
	}
	if kw.Duration > 0 {
		duration = kw.Duration
	}
	stop := start.AddDate(0, 0, duration)

	return r.emit(ymdOf(start), ymdOf(stop), kw.DefaultMeridian)
}

func (r *resolver) implied() []Date {
	m := r.m
	unit := m.Implied[0].Value

	if len(m.Numbers) > 0 {
		n := atoi(m.Numbers[0].Text)
		r.times = nil
		r.period = true
		switch unit {
		case UnitMinute, UnitHour:
			step := time.Minute
			if unit == UnitHour {
				step = time.Hour
			}
			at := r.now.Add(time.Duration(n) * step)
			r.times = Tokens{{
				Kind:      KindTime,
				CharStart: noOffset,
				CharStop:  noOffset,
				Clock:     TimeOfDay{Hour: at.Hour(), Minute: at.Minute(), Military: true},
			}}
			return r.emit(ymdOf(at), ymdOf(at), "")
		case UnitDay:
			at := r.now.AddDate(0, 0, n)
			return r.emit(ymdOf(at), ymdOf(at), "")
		case UnitWeek:
			at := r.now.AddDate(0, 0, 7*n)
			wd := calendar.Weekday(at)
			return r.emit(ymdOf(at.AddDate(0, 0, 1-wd)), ymdOf(at.AddDate(0, 0, 7-wd)), "")
		case UnitMonth:
			// a month is four weeks here; the whole month that lands in is used
			at := r.now.Add(time.Duration(n*4*calendar.Week) * time.Second)
			y, mo := at.Year(), int(at.Month())
			return r.emit(ymd{y, mo, 1}, ymd{y, mo, calendar.DaysInMonth(mo, y)}, "")
		}
		return nil
	}

	isNext := m.Prefix != nil && m.Prefix.Keyword.IsNext()
	switch unit {
	case UnitMonth:
		month, year := int(r.now.Month()), r.now.Year()
		if isNext {
			month, year = calendar.NextMonth(month, year)
		}
		dayStart, dayStop := 1, calendar.DaysInMonth(month, year)
		if len(m.Days) > 0 {
			dayStart = atoi(m.Days[0].Text)
			dayStop = dayStart
			if len(m.Days) > 1 {
				dayStop = atoi(m.Days[1].Text)
			}
		} else {
			r.period = true
		}
		if dayStart > dayStop {
			dayStop = dayStart
		}
		return r.emit(ymd{year, month, dayStart}, ymd{year, month, dayStop}, "")
	case UnitWeek:
		r.period = true
		start := r.now
		if today := calendar.Weekday(r.now); isNext || today > 5 {
			start = r.now.AddDate(0, 0, 8-today)
		}
		stop := start.AddDate(0, 0, 7-calendar.Weekday(start))
		return r.emit(ymdOf(start), ymdOf(stop), "")
	}
	return nil
}

// bareTime places a time with no date on today, or on the next occurrence
// when it has already passed.
func (r *resolver) bareTime() []Date {
	hasMeridian := false
	if len(r.times) > 0 {
		hasMeridian = r.times[0].Clock.HasMeridian()
	} else if r.interval != nil {
		hasMeridian = r.interval.Start.HasMeridian() || r.interval.Stop.HasMeridian()
	}

	cs, ce := r.clockRange("")
	day := ymdOf(r.now)
	if ce.hour < r.now.Hour() {
		if hasMeridian {
			day.year, day.month, day.day = calendar.NextDay(day.year, day.month, day.day)
		} else {
			cs.hour += 12
			ce.hour += 12
			if cs.hour > 23 {
				cs.hour %= 24
				ce.hour %= 24
				day.year, day.month, day.day = calendar.NextDay(day.year, day.month, day.day)
			}
		}
	}
	return r.timestamps(day, day, cs, ce)
}
