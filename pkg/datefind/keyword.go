package datefind

import (
	"slices"
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/utils"
)

type Category int

const (
	// raw digit runs; never looked up, the tokenizer makes these itself
	CatNumber Category = iota
	CatNumberName
	CatMonth
	CatDayName
	CatPrefix
	CatMeridian
	CatTimeDelim
	CatTime
	CatThrough
	CatSeparator
	CatDateDelim
	CatImplied
)

func (c Category) String() string {
	switch c {
	case CatNumber:
		return "number"
	case CatNumberName:
		return "number-name"
	case CatMonth:
		return "month"
	case CatDayName:
		return "day-name"
	case CatPrefix:
		return "prefix"
	case CatMeridian:
		return "meridian"
	case CatTimeDelim:
		return "time-delim"
	case CatTime:
		return "time"
	case CatThrough:
		return "through"
	case CatSeparator:
		return "separator"
	case CatDateDelim:
		return "date-delim"
	case CatImplied:
		return "implied"
	}
	return "unknown"
}

const (
	PrefixNext  = 1
	PrefixThis  = 2
	PrefixOn    = 3
	PrefixFor   = 4
	PrefixEvery = 5
)

// implied date units
const (
	UnitWeek   = 1
	UnitMonth  = 2
	UnitDay    = 3
	UnitHour   = 4
	UnitMinute = 5
)

// time tags describe the part of the day a time keyword covers
const (
	TagNight     = 1
	TagEvening   = 2
	TagAfternoon = 3
	TagMorning   = 4
)

// SubTypeSameDay marks day keywords that always resolve to the current week
// day, even when their start hour has already passed.
const SubTypeSameDay = 1

type Keyword struct {
	Name     string
	Category Category
	Value    int
	SubType  int
	// clock window, nil when the keyword carries no time
	Start *TimeOfDay
	Stop  *TimeOfDay
	// days added on top of the resolved start day
	Duration        int
	DefaultMeridian string
	TimeTag         int
	// display word for TimeTag, defaults to Name
	TimeValue string
}

func (kw *Keyword) IsNext() bool {
	return kw.Category == CatPrefix && kw.Value == PrefixNext
}

func (kw *Keyword) IsRecurring() bool {
	return kw.Category == CatPrefix && kw.Value == PrefixEvery
}

func (kw *Keyword) TimeWord() string {
	if kw.TimeValue != "" {
		return kw.TimeValue
	}
	return kw.Name
}

type KeywordTable struct {
	byName  map[string]*Keyword
	ordered []*Keyword
}

func (kt *KeywordTable) add(kws ...*Keyword) {
	for _, kw := range kws {
		if _, ok := kt.byName[kw.Name]; !ok {
			kt.ordered = append(kt.ordered, kw)
		}
		kt.byName[kw.Name] = kw
	}
}

// Lookup finds the keyword for a raw word; case and surrounding punctuation
// are ignored.
func (kt *KeywordTable) Lookup(word string) (*Keyword, bool) {
	kw, ok := kt.byName[utils.CleanWord(word)]
	return kw, ok
}

// ByTimeTag returns the first keyword registered with tag, or nil.
func (kt *KeywordTable) ByTimeTag(tag int) *Keyword {
	if tag == 0 {
		return nil
	}
	for _, kw := range kt.ordered {
		if kw.TimeTag == tag {
			return kw
		}
	}
	return nil
}

func (kt *KeywordTable) Len() int {
	return len(kt.ordered)
}

func (kt *KeywordTable) Keywords() []*Keyword {
	return slices.Clone(kt.ordered)
}

func kwList(cat Category, value int, names ...string) []*Keyword {
	out := make([]*Keyword, len(names))
	for ndx, name := range names {
		out[ndx] = &Keyword{Name: name, Category: cat, Value: value}
	}
	return out
}

func clock(hour, minute int, meridian string) *TimeOfDay {
	return &TimeOfDay{Hour: hour, Minute: minute, Meridian: meridian}
}

var ordinalUnits = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth"}
var numberUnits = []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var ordinalTeens = []string{
	"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth",
	"sixteenth", "seventeenth", "eighteenth", "nineteenth", "twentieth",
}
var numberTeens = []string{
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
}

// numberNames builds one..thirty-one and first..thirty-first, compound forms
// both with and without the dash.
func numberNames() []*Keyword {
	var out []*Keyword
	addUnits := func(units []string, base int, tens string) {
		for ndx, unit := range units {
			value := base + ndx + 1
			if tens == "" {
				out = append(out, kwList(CatNumberName, value, unit)...)
				continue
			}
			out = append(out, kwList(CatNumberName, value, tens+"-"+unit, tens+unit)...)
		}
	}
	addUnits(ordinalUnits, 0, "")
	addUnits(numberUnits, 0, "")
	for ndx := range ordinalTeens {
		out = append(out, kwList(CatNumberName, 10+ndx, ordinalTeens[ndx], numberTeens[ndx])...)
	}
	addUnits(ordinalUnits, 20, "twenty")
	addUnits(numberUnits, 20, "twenty")
	out = append(out, kwList(CatNumberName, 30, "thirtieth", "thirty")...)
	out = append(out, kwList(CatNumberName, 31, "thirty-first", "thirtyfirst", "thirty-one", "thirtyone")...)
	return out
}

var monthNames = [][]string{
	{"january", "jan"}, {"february", "feb"}, {"march", "mar"}, {"april", "apr"},
	{"may"}, {"june", "jun"}, {"july", "jul"}, {"august", "aug"},
	{"september", "sept"}, {"october", "oct"}, {"november", "nov"}, {"december", "dec"},
}

var dayNames = [][]string{
	{"monday", "mon"},
	{"tuesday", "tues"},
	{"wednesday", "wednes", "weds"},
	{"thursday", "thurs", "thur", "thu"},
	{"friday", "fri"},
	{"saturday"},
	{"sunday"},
}

// keywords that do not depend on the reference time
func staticKeywords() []*Keyword {
	var out []*Keyword
	out = append(out, numberNames()...)
	for ndx, names := range monthNames {
		out = append(out, kwList(CatMonth, ndx+1, names...)...)
	}
	for ndx, names := range dayNames {
		out = append(out, kwList(CatDayName, ndx+1, names...)...)
	}
	out = append(out, &Keyword{
		Name: "weekend", Category: CatDayName, Value: 6, Duration: 1,
	})
	out = append(out, kwList(CatImplied, UnitWeek, "week", "weeks")...)
	out = append(out, kwList(CatImplied, UnitMonth, "month", "months")...)
	out = append(out, kwList(CatImplied, UnitDay, "day", "days")...)
	out = append(out, kwList(CatImplied, UnitHour, "hour", "hours")...)
	out = append(out, kwList(CatImplied, UnitMinute, "minute", "minutes")...)
	out = append(out, kwList(CatSeparator, 0, "&", "and", "or")...)
	out = append(out, kwList(CatThrough, 0, "-", "through", "thru", "to", "til", "till", "until", "—")...)
	out = append(out, kwList(CatMeridian, 0, "am", "a.m.", "a.m", "pm", "p.m.", "p.m", "hr", "hrs")...)
	out = append(out, kwList(CatTimeDelim, 0, ":")...)
	out = append(out, timeKeywords...)
	out = append(out, kwList(CatPrefix, PrefixNext, "next")...)
	out = append(out, kwList(CatPrefix, PrefixThis, "this")...)
	out = append(out, kwList(CatPrefix, PrefixOn, "on")...)
	out = append(out, kwList(CatPrefix, PrefixFor, "for")...)
	out = append(out, kwList(CatPrefix, PrefixEvery, "every")...)
	out = append(out, kwList(CatDateDelim, 0, "/", "|", "_", `\`)...)
	return out
}

var timeKeywords = []*Keyword{
	{Name: "noon", Category: CatTime, Start: clock(12, 0, "pm")},
	{Name: "midnight", Category: CatTime, Start: &TimeOfDay{Hour: 11, Minute: 59, Meridian: "pm", Increment: calendar.Minute}},
	{Name: "night", Category: CatTime, Start: clock(19, 0, "pm"), TimeTag: TagNight},
	{
		Name: "evening", Category: CatTime, TimeTag: TagEvening, DefaultMeridian: "pm",
		Start: clock(18, 0, "pm"), Stop: clock(23, 0, "pm"),
	},
	{
		Name: "afternoon", Category: CatTime, TimeTag: TagAfternoon, DefaultMeridian: "pm",
		Start: clock(12, 0, "pm"), Stop: clock(18, 0, "pm"),
	},
	{
		Name: "morning", Category: CatTime, TimeTag: TagMorning, DefaultMeridian: "am",
		Start: clock(6, 0, "am"), Stop: clock(12, 0, "pm"),
	},
}

// TimeOfDayWord is the display word of a time tag, "" when no time keyword
// carries it.
func TimeOfDayWord(tag int) string {
	for _, kw := range timeKeywords {
		if tag != 0 && kw.TimeTag == tag {
			return kw.TimeWord()
		}
	}
	return ""
}

// NewKeywordTable builds the registry; tomorrow, today, now, tonight and soon
// are computed from now.
func NewKeywordTable(now time.Time) *KeywordTable {
	kt := &KeywordTable{byName: make(map[string]*Keyword)}
	today := calendar.Weekday(now)
	hour, minute := now.Hour(), now.Minute()
	kt.add(
		&Keyword{Name: "tomorrow", Category: CatDayName, Value: today + 1},
		&Keyword{Name: "today", Category: CatDayName, Value: today, SubType: SubTypeSameDay},
		&Keyword{
			Name: "now", Category: CatDayName, Value: today,
			Start: &TimeOfDay{Hour: hour, Military: true},
			Stop:  &TimeOfDay{Hour: (hour + 2) % 24, Military: true},
		},
		&Keyword{
			Name: "tonight", Category: CatDayName, Value: today, SubType: SubTypeSameDay,
			Start:           &TimeOfDay{Hour: 18, Meridian: "pm", Military: true},
			Stop:            &TimeOfDay{Hour: 23, Minute: 59, Meridian: "pm", Increment: calendar.Minute, Military: true},
			DefaultMeridian: "pm", TimeTag: TagNight, TimeValue: "night",
		},
		&Keyword{
			Name: "soon", Category: CatDayName, Value: today,
			Start: &TimeOfDay{Hour: (hour + 1) % 24, Minute: minute, Military: true},
			Stop:  &TimeOfDay{Hour: (hour + 3) % 24, Minute: minute, Military: true},
		},
	)
	kt.add(staticKeywords()...)
	return kt
}

// KeywordNames lists every registered name of category cat.
func (kt *KeywordTable) KeywordNames(cat Category) []string {
	var names []string
	for _, kw := range kt.ordered {
		if kw.Category == cat {
			names = append(names, kw.Name)
		}
	}
	return names
}
