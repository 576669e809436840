package datefind

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindNumber Kind = iota
	KindDay
	KindMonth
	KindYear
	KindThrough
	KindDateDelim
	KindPrefix
	KindImplied
	KindTime
	KindTimeInterval
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDay:
		return "day"
	case KindMonth:
		return "month"
	case KindYear:
		return "year"
	case KindThrough:
		return "through"
	case KindDateDelim:
		return "date-delim"
	case KindPrefix:
		return "prefix"
	case KindImplied:
		return "implied"
	case KindTime:
		return "time"
	case KindTimeInterval:
		return "time-interval"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// TimeOfDay is a clock reading as written: Hour is 12h unless Military.
type TimeOfDay struct {
	Hour     int
	Minute   int
	Meridian string
	// seconds added to the final timestamp, 60 for the 23:59 end of day
	Increment int
	Military  bool
	Tag       int
}

func (t TimeOfDay) HasMeridian() bool {
	return t.Meridian != ""
}

func (t TimeOfDay) IsPm() bool {
	return strings.HasPrefix(strings.ToLower(t.Meridian), "p")
}

// no meridian reads as am
func (t TimeOfDay) IsAm() bool {
	return !t.IsPm()
}

func (t TimeOfDay) HourMil() int {
	if t.Military {
		return t.Hour
	}
	if t.IsPm() {
		if t.Hour < 12 {
			return t.Hour + 12
		}
		return t.Hour
	}
	if t.Hour == 12 {
		return 0
	}
	return t.Hour
}

func (t TimeOfDay) String() string {
	out := fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
	if t.Meridian != "" {
		out += t.Meridian
	}
	if t.Increment > 0 {
		out += fmt.Sprintf("+%ds", t.Increment)
	}
	return out
}

type Interval struct {
	Start TimeOfDay
	Stop  TimeOfDay
}

// Token is a compiled, classified piece of the input. Which payload field is
// meaningful depends on Kind.
type Token struct {
	Kind Kind
	// index of the word the token ends on
	WordOffset int
	// rune offsets into the input; -1 when the token was synthesized
	CharStart int
	CharStop  int
	Keyword   *Keyword
	// digits for KindNumber
	Text     string
	Value    int
	Clock    TimeOfDay
	Interval Interval
}

// rune offsets of tokens that do not come from the input
const noOffset = -1

func (tk *Token) HasOffset() bool {
	return tk.CharStart >= 0
}

func (tk *Token) String() string {
	switch tk.Kind {
	case KindNumber:
		return tk.Kind.String() + "(" + tk.Text + ")"
	case KindDay, KindMonth, KindYear, KindPrefix, KindImplied:
		return fmt.Sprintf("%s(%d)", tk.Kind, tk.Value)
	case KindTime:
		return tk.Kind.String() + "(" + tk.Clock.String() + ")"
	case KindTimeInterval:
		return tk.Kind.String() + "(" + tk.Interval.Start.String() + "-" + tk.Interval.Stop.String() + ")"
	}
	return tk.Kind.String()
}

type Tokens []*Token

type TkCond func(*Token) bool

func TkByKind(kind Kind) TkCond {
	return func(tk *Token) bool {
		return tk.Kind == kind
	}
}

func (tks Tokens) Find(cond TkCond) (*Token, int) {
	for ndx, tk := range tks {
		if cond(tk) {
			return tk, ndx
		}
	}
	return nil, -1
}

func (tks Tokens) Filter(cond TkCond) Tokens {
	var out Tokens
	for _, tk := range tks {
		if cond(tk) {
			out = append(out, tk)
		}
	}
	return out
}

func (tks Tokens) Kinds() []Kind {
	out := make([]Kind, len(tks))
	for ndx, tk := range tks {
		out[ndx] = tk.Kind
	}
	return out
}

func (tks Tokens) String() string {
	parts := make([]string, len(tks))
	for ndx, tk := range tks {
		parts[ndx] = tk.String()
	}
	return strings.Join(parts, " ")
}
