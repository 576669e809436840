package datefind

import (
	"strings"

	"github.com/Jaymon/DateParser/pkg/utils"
)

// Match collects what one successful rule-set captured.
type Match struct {
	Days       Tokens
	Numbers    Tokens
	DayIndexes Tokens
	Months     Tokens
	Years      Tokens
	Times      Tokens
	Interval   *Token
	Implied    Tokens
	Prefix     *Token
	Rule       RuleSet
	RuleIndex  int

	first *Token
	last  *Token
}

func (m *Match) track(tk *Token) {
	if !tk.HasOffset() {
		return
	}
	if m.first == nil || tk.CharStart < m.first.CharStart {
		m.first = tk
	}
	if m.last == nil || tk.CharStart > m.last.CharStart {
		m.last = tk
	}
}

func (m *Match) addDay(tk *Token) {
	m.Days = append(m.Days, tk)
	m.track(tk)
}

func (m *Match) addNumber(tk *Token) {
	m.Numbers = append(m.Numbers, tk)
	m.track(tk)
}

func (m *Match) addDayIndex(tk *Token) {
	m.DayIndexes = append(m.DayIndexes, tk)
	m.track(tk)
}

func (m *Match) addMonth(tk *Token) {
	m.Months = append(m.Months, tk)
	m.track(tk)
}

func (m *Match) addYear(tk *Token) {
	m.Years = append(m.Years, tk)
	m.track(tk)
}

func (m *Match) addTime(tk *Token) {
	m.Times = append(m.Times, tk)
	m.track(tk)
}

func (m *Match) addImplied(tk *Token) {
	m.Implied = append(m.Implied, tk)
	m.track(tk)
}

func (m *Match) setInterval(tk *Token) {
	m.Interval = tk
	m.track(tk)
}

func (m *Match) setPrefix(tk *Token) {
	m.Prefix = tk
	m.track(tk)
}

func (m *Match) clearTimes() {
	m.Times = nil
}

func (m *Match) HasTime() bool {
	return len(m.Times) > 0 || m.Interval != nil
}

// Bounds are the rune offsets of the captured span, -1 when nothing with a
// position was captured.
func (m *Match) Bounds() (int, int) {
	if m.first == nil {
		return -1, -1
	}
	return m.first.CharStart, m.last.CharStop
}

// Text is the captured span of input, stretched to the end of its last word.
func (m *Match) Text(input string) string {
	start, stop := m.Bounds()
	if start < 0 {
		return ""
	}
	stop = utils.NextSpace([]rune(input), stop)
	return strings.TrimSpace(utils.RuneSlice(input, start, stop))
}
