package datefind

import (
	"regexp"
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/terrors"
)

var (
	dayNumRegex   = regexp.MustCompile(`^(?:[12][0-9]|3[01]|0?[1-9])$`)
	monthNumRegex = regexp.MustCompile(`^(?:0?[1-9]|1[0-2])$`)
	year2Regex    = regexp.MustCompile(`^(?:1[4-9]|20)?[0-9]{2}$`)
	year4Regex    = regexp.MustCompile(`^(?:1[4-9]|20)[0-9]{2}$`)
)

// synth derives a token of another kind from a number, keeping its position.
func synth(tk *Token, kind Kind) *Token {
	out := *tk
	out.Kind = kind
	return &out
}

// classify reports whether tk satisfies rt and captures it into m. WORD_n
// markers always hit and return their skip allowance instead.
func classify(rt RuleToken, tk *Token, m *Match, now time.Time) (bool, int) {
	isNum := tk.Kind == KindNumber
	switch rt {
	case RuleWord1, RuleWord2, RuleWord3, RuleWord4, RuleWord5:
		return true, rt.Skip()
	case RuleNum:
		if isNum {
			m.addNumber(tk)
			return true, 0
		}
	case RuleDayNum:
		if isNum && dayNumRegex.MatchString(tk.Text) {
			m.addDay(tk)
			return true, 0
		}
	case RuleDayName:
		if tk.Kind == KindDay {
			m.addDayIndex(tk)
			return true, 0
		}
	case RuleYear2:
		if isNum && year2Regex.MatchString(tk.Text) {
			year := synth(tk, KindYear)
			year.Value = calendar.ExpandYear(tk.Text, now)
			m.addYear(year)
			return true, 0
		}
	case RuleYear4:
		if isNum && year4Regex.MatchString(tk.Text) {
			year := synth(tk, KindYear)
			year.Value = atoi(tk.Text)
			m.addYear(year)
			return true, 0
		}
	case RuleMonthName:
		if tk.Kind == KindMonth {
			m.addMonth(tk)
			return true, 0
		}
	case RuleMonthNum:
		if isNum && monthNumRegex.MatchString(tk.Text) {
			month := synth(tk, KindMonth)
			month.Value = atoi(tk.Text)
			m.addMonth(month)
			return true, 0
		}
	case RuleThrough:
		return tk.Kind == KindThrough, 0
	case RuleDateDelim:
		return tk.Kind == KindDateDelim, 0
	case RuleTime:
		if tk.Kind == KindTime {
			m.addTime(tk)
			return true, 0
		}
	case RuleTimeInterval:
		if tk.Kind == KindTimeInterval {
			m.setInterval(tk)
			return true, 0
		}
	case RuleTimeAll:
		switch tk.Kind {
		case KindTime:
			m.addTime(tk)
			return true, 0
		case KindTimeInterval:
			m.setInterval(tk)
			return true, 0
		}
	case RuleTimeNum:
		if isNum && validHour(tk.Text) {
			clk := synth(tk, KindTime)
			clk.Clock = TimeOfDay{Hour: atoi(tk.Text)}
			if len(m.Times) == 0 {
				m.addTime(clk)
				return true, 0
			}
			// a second bare hour closes an interval with the first
			first := m.Times[0]
			interval := synth(clk, KindTimeInterval)
			interval.CharStart = first.CharStart
			interval.Interval = Interval{Start: first.Clock, Stop: clk.Clock}
			m.clearTimes()
			m.setInterval(interval)
			return true, 0
		}
	case RulePrefix:
		if tk.Kind == KindPrefix {
			m.setPrefix(tk)
			return true, 0
		}
	case RuleDateImplied:
		if tk.Kind == KindImplied {
			m.addImplied(tk)
			return true, 0
		}
	case RuleDateImpliedMonth:
		if tk.Kind == KindImplied && tk.Value == UnitMonth {
			m.addImplied(tk)
			return true, 0
		}
	default:
		// grammars are validated before they are scanned
		panic(terrors.ErrorRule(-1, "unknown rule token %s", rt))
	}
	return false, 0
}

// scanState is where the walk of one rule-set over the tokens stands.
type scanState struct {
	// position the current attempt started from
	scanStart int
	position  int
	ruleIndex int
	// filler tokens still allowed before the next concrete marker
	skipBudget int
	// position to resume from when an attempt fails inside a skip
	skipAnchor int
	lastWord   int
	inRule     bool
}

func (st *scanState) begin() {
	st.scanStart = st.position
	st.skipAnchor = -1
	st.lastWord = -1
	st.inRule = false
}

func (st *scanState) rewind() {
	if st.skipAnchor >= 0 {
		st.position = st.skipAnchor
	}
	st.ruleIndex = 0
}

// match tries every rule-set in order and returns the first that matches
// anywhere in tokens, or nil.
func match(tokens Tokens, rules []RuleSet, forField bool, now time.Time) *Match {
	for ndx, rs := range rules {
		if m := matchRuleSet(tokens, rs, forField, now); m != nil {
			m.Rule = rs
			m.RuleIndex = ndx
			return m
		}
	}
	return nil
}

func matchRuleSet(tokens Tokens, rs RuleSet, forField bool, now time.Time) *Match {
	st := &scanState{}
	for st.position < len(tokens) {
		st.begin()
		m := &Match{}
		matched := false
		for st.ruleIndex < len(rs.Tokens) {
			matched = false
			if st.position >= len(tokens) {
				return nil
			}
			tk := tokens[st.position]
			hit, skip := classify(rs.Tokens[st.ruleIndex], tk, m, now)

			if !hit {
				st.position++
				st.skipBudget--
				if st.skipBudget < 0 {
					if st.skipAnchor < 0 && st.inRule {
						st.position--
					}
					st.rewind()
					break
				}
				continue
			}

			st.ruleIndex++
			if skip > 0 {
				st.skipBudget += skip
				st.skipAnchor = st.position
			} else {
				// in free text the words of one expression stay close together
				if st.inRule && !forField && tk.WordOffset-st.lastWord > max(st.skipBudget, 0)+2 {
					st.rewind()
					break
				}
				st.skipBudget = 0
				st.skipAnchor = -1
				st.position++
			}
			matched = true
			st.lastWord = tk.WordOffset
			st.inRule = true
		}
		if matched {
			return m
		}
		if st.position <= st.scanStart {
			st.position = st.scanStart + 1
		}
	}
	return nil
}
