package datefind

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Jaymon/DateParser/pkg/terrors"
)

// RuleToken is one marker of a rule-set: a token class to capture, a
// structural delimiter, or a WORD_n allowance for n filler words.
type RuleToken int

const (
	RuleNum RuleToken = iota + 1
	RuleDayNum
	RuleDayName
	RuleYear2
	RuleYear4
	RuleMonthName
	RuleMonthNum
	RuleThrough
	RuleWord1
	RuleWord2
	RuleWord3
	RuleWord4
	RuleWord5
	RuleTime
	RuleTimeInterval
	RuleTimeAll
	RuleTimeNum
	RuleDateDelim
	RulePrefix
	RuleDateImplied
	RuleDateImpliedMonth
)

var ruleTokenNames = map[RuleToken]string{
	RuleNum:              "NUM",
	RuleDayNum:           "DAY_NUM",
	RuleDayName:          "DAY_NAME",
	RuleYear2:            "YEAR_2",
	RuleYear4:            "YEAR_4",
	RuleMonthName:        "MONTH_NAME",
	RuleMonthNum:         "MONTH_NUM",
	RuleThrough:          "THROUGH",
	RuleWord1:            "WORD_1",
	RuleWord2:            "WORD_2",
	RuleWord3:            "WORD_3",
	RuleWord4:            "WORD_4",
	RuleWord5:            "WORD_5",
	RuleTime:             "TIME",
	RuleTimeInterval:     "TIME_INTERVAL",
	RuleTimeAll:          "TIME_ALL",
	RuleTimeNum:          "TIME_NUM",
	RuleDateDelim:        "DATE_DELIM",
	RulePrefix:           "PREFIX",
	RuleDateImplied:      "DATE_IMPLIED",
	RuleDateImpliedMonth: "DATE_IMPLIED_MONTH",
}

var ruleTokensByName = func() map[string]RuleToken {
	m := make(map[string]RuleToken, len(ruleTokenNames))
	for rt, name := range ruleTokenNames {
		m[name] = rt
	}
	return m
}()

func (rt RuleToken) String() string {
	if name, ok := ruleTokenNames[rt]; ok {
		return name
	}
	return fmt.Sprintf("RuleToken(%d)", int(rt))
}

func (rt RuleToken) Valid() bool {
	_, ok := ruleTokenNames[rt]
	return ok
}

// Skip is the filler-word allowance of a WORD_n marker, 0 for anything else.
func (rt RuleToken) Skip() int {
	if rt >= RuleWord1 && rt <= RuleWord5 {
		return int(rt-RuleWord1) + 1
	}
	return 0
}

type RuleSet struct {
	Tokens []RuleToken
	Recur  Recurrence
	// only used when the whole input is expected to be a date
	FieldOnly bool
	Example   string
}

func (rs RuleSet) String() string {
	names := make([]string, len(rs.Tokens))
	for ndx, rt := range rs.Tokens {
		names[ndx] = rt.String()
	}
	return strings.Join(names, " ")
}

// concrete markers only, WORD_n removed
func (rs RuleSet) concrete() []RuleToken {
	out := make([]RuleToken, 0, len(rs.Tokens))
	for _, rt := range rs.Tokens {
		if rt.Skip() == 0 {
			out = append(out, rt)
		}
	}
	return out
}

type ruleDef struct {
	pattern string
	recur   Recurrence
	field   bool
	example string
}

// most specific first: the matcher commits to the first rule-set that
// matches anywhere in the input.
var grammarDefs = []ruleDef{
	// month through month
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on 24 september 2009 - 15 october 2009"},
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "7-8pm on 24 september 2009 - october 15, 2009"},
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on 24 september - 15 october 2009"},
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "7-8pm on 24 september - october 15, 2009"},
	{"DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24 september 2009 - 15 october 2009 at 7-8pm"},
	{"DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24 september 2009 - october 15, 2009 at 7-8pm"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24 september - 15 october 2009 at 7-8pm"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24 september - october 15, 2009 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on september 24, 2009 - 15 october 2009"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "7-8pm on september 24, 2009 - october 15, 2009"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on september 24 - 15 october 2009"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "7-8pm on september 24 - october 15, 2009"},
	{"MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24, 2009 - 15 october 2009 at 7-8pm"},
	{"MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24, 2009 - october 15, 2009 at 7-8pm"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24 - 15 october 2009 at 7-8pm"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24 - october 15, 2009 at 7-8pm"},
	{"DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "24 september 2009 - 15 october 2009"},
	{"DAY_NUM MONTH_NAME YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "24 september 2009 - october 15, 2009"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "24 september - 15 october 2009"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "24 september - october 15, 2009"},
	{"MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "september 24, 2009 - 15 october 2009"},
	{"MONTH_NAME DAY_NUM YEAR_4 WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "september 24, 2009 - october 15, 2009"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "september 24 - 15 october 2009"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "september 24 - october 15, 2009"},
	{"PREFIX DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME", RecurYearly, false, "every 24 september - 15 october"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME", RecurNone, false, "24 september - 15 october"},
	{"PREFIX DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM", RecurYearly, false, "every 24 september - october 15"},
	{"DAY_NUM MONTH_NAME WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM", RecurNone, false, "24 september - october 15"},
	{"PREFIX MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME", RecurYearly, false, "every september 24 - 15 october"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 DAY_NUM MONTH_NAME", RecurNone, false, "september 24 - 15 october"},
	{"PREFIX MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM", RecurYearly, false, "every september 24 - october 15"},
	{"MONTH_NAME DAY_NUM WORD_2 THROUGH WORD_2 MONTH_NAME DAY_NUM", RecurNone, false, "september 24 - october 15"},
	{"MONTH_NAME YEAR_4 THROUGH MONTH_NAME YEAR_4", RecurNone, false, "september 2009 - october 2009"},
	{"MONTH_NAME THROUGH MONTH_NAME YEAR_4", RecurNone, false, "september - october 2009"},
	{"PREFIX MONTH_NAME THROUGH MONTH_NAME", RecurYearly, false, "every september - october"},
	{"MONTH_NAME THROUGH MONTH_NAME", RecurNone, false, "september - october"},

	// day month_name year time
	{"TIME_ALL WORD_3 DAY_NUM THROUGH DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on 24-26 september 2009"},
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "7-8pm on 24 september 2009"},
	{"DAY_NUM THROUGH DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24-26 september 2009 at 7-8pm"},
	{"DAY_NUM MONTH_NAME YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "24 september 2009 at 7-8pm"},
	{"PREFIX DAY_NUM THROUGH DAY_NUM MONTH_NAME WORD_3 TIME_ALL", RecurMonthly, false, "every 24-26 september at 7-8pm"},
	{"TIME_ALL WORD_3 DAY_NUM THROUGH DAY_NUM MONTH_NAME", RecurNone, false, "7-8pm on 24-26 september"},
	{"DAY_NUM THROUGH DAY_NUM MONTH_NAME WORD_3 TIME_ALL", RecurNone, false, "24-26 september at 7-8pm"},
	{"PREFIX DAY_NUM MONTH_NAME WORD_3 TIME_ALL", RecurMonthly, false, "every 24 september at 7-8pm"},
	{"TIME_ALL WORD_3 DAY_NUM MONTH_NAME", RecurNone, false, "7-8pm on 24 september"},
	{"DAY_NUM MONTH_NAME WORD_3 TIME_ALL", RecurNone, false, "24 september at 7-8pm"},
	{"DAY_NUM THROUGH DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "24-26 september 2009"},
	{"DAY_NUM MONTH_NAME YEAR_4", RecurNone, false, "24 september 2009"},
	{"PREFIX DAY_NUM THROUGH DAY_NUM MONTH_NAME", RecurMonthly, false, "every 24-26 september"},
	{"DAY_NUM THROUGH DAY_NUM MONTH_NAME", RecurNone, false, "24-26 september"},
	{"PREFIX DAY_NUM MONTH_NAME", RecurMonthly, false, "every 24 september"},
	{"DAY_NUM MONTH_NAME", RecurNone, false, "24 september"},

	// month_name day year time
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM THROUGH DAY_NUM YEAR_4", RecurNone, false, "7-8pm on september 24-26, 2009"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "7-8pm on september 24, 2009"},
	{"MONTH_NAME DAY_NUM THROUGH DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24-26, 2009 at 7-8pm"},
	{"MONTH_NAME DAY_NUM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "september 24, 2009 at 7-8pm"},
	{"PREFIX MONTH_NAME DAY_NUM THROUGH DAY_NUM WORD_3 TIME_ALL", RecurMonthly, false, "every september 24-26 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM THROUGH DAY_NUM", RecurNone, false, "7-8pm on september 24-26"},
	{"MONTH_NAME DAY_NUM THROUGH DAY_NUM WORD_3 TIME_ALL", RecurNone, false, "september 24-26 at 7-8pm"},
	{"PREFIX MONTH_NAME DAY_NUM WORD_3 TIME_ALL", RecurMonthly, false, "every september 24 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NAME DAY_NUM", RecurNone, false, "7-8pm on september 24"},
	{"MONTH_NAME DAY_NUM WORD_3 TIME_ALL", RecurNone, false, "september 24 at 7-8pm"},
	{"MONTH_NAME DAY_NUM THROUGH DAY_NUM YEAR_4", RecurNone, false, "september 24-26 2009"},
	{"MONTH_NAME DAY_NUM YEAR_4", RecurNone, false, "september 24 2009"},
	{"PREFIX MONTH_NAME DAY_NUM THROUGH DAY_NUM", RecurMonthly, false, "every september 24-26"},
	{"MONTH_NAME DAY_NUM THROUGH DAY_NUM", RecurNone, false, "september 24-26"},
	{"PREFIX MONTH_NAME DAY_NUM", RecurMonthly, false, "every september 24"},
	{"MONTH_NAME DAY_NUM", RecurNone, false, "september 24"},

	// month_name on its own
	{"MONTH_NAME YEAR_4", RecurNone, false, "september 2009"},
	{"PREFIX MONTH_NAME", RecurYearly, false, "this september"},
	{"MONTH_NAME", RecurNone, true, "september"},

	// yyyy/mm/dd
	{"YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM THROUGH YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM WORD_3 TIME_INTERVAL", RecurNone, false, "2009/09/24 - 2009/10/15 at 7-8pm"},
	{"TIME_ALL WORD_3 YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM THROUGH YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, false, "7-8pm on 2009/09/24 - 2009/10/15"},
	{"YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM THROUGH YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, false, "2009/09/24 - 2009/10/15"},
	{"YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM WORD_3 TIME_ALL", RecurNone, false, "2009/09/24 at 7-8pm"},
	{"TIME_ALL WORD_3 YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, false, "7-8pm on 2009/09/24"},
	{"YEAR_4 DATE_DELIM MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, false, "2009/09/24"},

	// mm/dd/yyyy
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "09/24/2009 - 10/15/2009 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4", RecurNone, false, "7-8pm on 09/24/2009 - 10/15/2009"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4", RecurNone, false, "09/24/2009 - 10/15/2009"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4 WORD_3 TIME_ALL", RecurNone, false, "09/24/2009 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4", RecurNone, false, "7-8pm on 09/24/2009"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_4", RecurNone, false, "09/24/2009"},

	// mm/dd/yy and mm/dd, too ambiguous for free text
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2 WORD_3 TIME_ALL", RecurNone, true, "09/24/09 - 10/15/09 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2", RecurNone, true, "7-8pm on 09/24/09 - 10/15/09"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2 THROUGH MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2", RecurNone, true, "09/24/09 - 10/15/09"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2 WORD_3 TIME_ALL", RecurNone, true, "09/24/09 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2", RecurNone, true, "7-8pm on 09/24/09"},
	{"TIME WORD_3 MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2", RecurNone, true, "8pm on 09/24/09"},
	{"MONTH_NUM DATE_DELIM DAY_NUM DATE_DELIM YEAR_2", RecurNone, true, "09/24/09"},
	{"MONTH_NUM DATE_DELIM DAY_NUM THROUGH MONTH_NUM DATE_DELIM DAY_NUM WORD_3 TIME_ALL", RecurNone, true, "09/24 - 10/15 at 7-8pm"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM THROUGH MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, true, "7-8pm on 09/24 - 10/15"},
	{"MONTH_NUM DATE_DELIM DAY_NUM THROUGH MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, true, "09/24 - 10/15"},
	{"PREFIX MONTH_NUM DATE_DELIM DAY_NUM WORD_3 TIME_ALL", RecurMonthly, true, "every 09/24 at 7-8pm"},
	{"MONTH_NUM DATE_DELIM DAY_NUM WORD_3 TIME_ALL", RecurNone, true, "09/24 at 7-8pm"},
	{"PREFIX TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM", RecurMonthly, true, "every 7-8pm on 09/24"},
	{"TIME_ALL WORD_3 MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, true, "7-8pm on 09/24"},
	{"PREFIX MONTH_NUM DATE_DELIM DAY_NUM", RecurMonthly, true, "every 09/24"},
	{"MONTH_NUM DATE_DELIM DAY_NUM", RecurNone, true, "09/24"},

	// day_name day_num time
	{"TIME_ALL WORD_3 DAY_NAME WORD_2 DAY_NUM", RecurNone, false, "7-8pm on monday the 15th"},
	{"DAY_NAME WORD_2 DAY_NUM WORD_3 TIME_ALL", RecurNone, false, "monday the 15th at 7-8pm"},
	{"DAY_NAME WORD_2 DAY_NUM", RecurNone, false, "monday the 15th"},

	// prefix day_name time
	{"PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_ALL", RecurWeekly, false, "next tuesday-friday at 7-8pm"},
	{"PREFIX DAY_NAME WORD_3 TIME_ALL", RecurWeekly, false, "next tuesday at 7-8pm"},
	{"DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_ALL", RecurNone, true, "tuesday - friday at 7-8pm"},
	{"DAY_NAME WORD_3 TIME_ALL", RecurNone, true, "tuesday at 7-8pm"},
	{"PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_NUM THROUGH TIME_NUM", RecurWeekly, true, "every tuesday - friday at 7-8"},
	{"PREFIX DAY_NAME WORD_3 TIME_NUM THROUGH TIME_NUM", RecurWeekly, true, "every tuesday at 7-8"},
	{"DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_NUM THROUGH TIME_NUM", RecurNone, true, "tuesday - friday at 7-8"},
	{"DAY_NAME WORD_3 TIME_NUM THROUGH TIME_NUM", RecurNone, true, "tuesday at 7-8"},
	{"PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_NUM", RecurWeekly, true, "every tuesday-friday at 7"},
	{"PREFIX DAY_NAME WORD_3 TIME_NUM", RecurWeekly, true, "every tuesday at 7"},
	{"DAY_NAME THROUGH WORD_1 DAY_NAME WORD_3 TIME_NUM", RecurNone, true, "tuesday-friday at 7"},
	{"DAY_NAME WORD_3 TIME_NUM", RecurNone, true, "tuesday at 7"},

	// time prefix day_name
	{"TIME_ALL WORD_2 PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME", RecurWeekly, false, "7-8pm next tuesday-friday"},
	{"TIME_ALL WORD_2 PREFIX DAY_NAME", RecurWeekly, false, "7-8pm next tuesday"},
	{"TIME_ALL WORD_2 DAY_NAME THROUGH WORD_1 DAY_NAME", RecurNone, true, "7-8pm on tuesday-friday"},
	{"TIME_ALL WORD_2 DAY_NAME", RecurNone, true, "7-8pm on tuesday"},
	{"TIME_NUM THROUGH TIME_NUM WORD_2 PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME", RecurWeekly, true, "7-8 every tuesday-friday"},
	{"TIME_NUM THROUGH TIME_NUM WORD_2 PREFIX DAY_NAME", RecurWeekly, true, "7-8 every tuesday"},
	{"TIME_NUM THROUGH TIME_NUM WORD_2 DAY_NAME THROUGH WORD_1 DAY_NAME", RecurNone, true, "7-8 on tuesday-friday"},
	{"TIME_NUM THROUGH TIME_NUM WORD_2 DAY_NAME", RecurNone, true, "7-8 on tuesday"},
	{"TIME_NUM WORD_2 PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME", RecurWeekly, true, "7 every tuesday-friday"},
	{"TIME_NUM WORD_2 PREFIX DAY_NAME", RecurWeekly, true, "7 every tuesday"},
	{"TIME_NUM WORD_2 DAY_NAME THROUGH WORD_1 DAY_NAME", RecurNone, true, "7 on tuesday-friday"},
	{"TIME_NUM WORD_2 DAY_NAME", RecurNone, true, "7 on tuesday"},

	// prefix day_name
	{"PREFIX DAY_NAME THROUGH WORD_1 DAY_NAME", RecurWeekly, false, "next tuesday-friday"},
	{"PREFIX DAY_NAME", RecurWeekly, false, "next tuesday"},
	{"DAY_NAME THROUGH WORD_1 DAY_NAME", RecurNone, true, "tuesday-friday"},
	{"DAY_NAME", RecurNone, true, "tuesday"},

	// day_num of an implied month
	{"TIME_ALL WORD_2 DAY_NUM THROUGH DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH", RecurMonthly, false, "7-8pm on 24-26 of this month"},
	{"DAY_NUM THROUGH DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH WORD_2 TIME_ALL", RecurMonthly, false, "24-26 of this month at 7-8pm"},
	{"TIME_ALL WORD_2 DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH", RecurMonthly, false, "7-8pm on 24 of this month"},
	{"DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH WORD_2 TIME_ALL", RecurMonthly, false, "24 of this month at 7-8pm"},
	{"DAY_NUM THROUGH DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH", RecurMonthly, false, "24-26 of this month"},
	{"DAY_NUM WORD_2 PREFIX DATE_IMPLIED_MONTH", RecurMonthly, false, "24 of this month"},
	{"PREFIX DATE_IMPLIED", RecurNone, true, "this week"},
	{"NUM DATE_IMPLIED", RecurNone, true, "in 5 days"},

	// time only
	{"PREFIX TIME_ALL", RecurDaily, false, "every 7-8pm"},
	{"TIME_ALL", RecurNone, true, "7-8pm"},
	{"TIME_NUM THROUGH TIME_NUM", RecurNone, true, "7-8"},
	{"TIME_NUM", RecurNone, true, "7"},
}

// ParseRule turns a space separated list of marker names into a rule-set.
func ParseRule(pattern string, recur Recurrence, fieldOnly bool) (RuleSet, error) {
	fields := strings.Fields(pattern)
	if len(fields) == 0 {
		return RuleSet{}, fmt.Errorf("%w: %w: empty rule pattern", terrors.ErrConf, terrors.ErrEmptyText)
	}
	rs := RuleSet{Tokens: make([]RuleToken, len(fields)), Recur: recur, FieldOnly: fieldOnly}
	for ndx, name := range fields {
		rt, ok := ruleTokensByName[name]
		if !ok {
			return RuleSet{}, fmt.Errorf("%w: %w: unknown rule token '%s' in '%s'", terrors.ErrConf, terrors.ErrValue, name, pattern)
		}
		rs.Tokens[ndx] = rt
	}
	return rs, nil
}

func compileGrammar(defs []ruleDef) ([]RuleSet, error) {
	out := make([]RuleSet, 0, len(defs))
	for ndx, def := range defs {
		rs, err := ParseRule(def.pattern, def.recur, def.field)
		if err != nil {
			return nil, fmt.Errorf("rule-set %d: %w", ndx, err)
		}
		rs.Example = def.example
		out = append(out, rs)
	}
	return out, ValidateGrammar(out)
}

var grammar = sync.OnceValues(func() ([]RuleSet, error) {
	return compileGrammar(grammarDefs)
})

// Rules returns the built-in grammar in matching order; field mode adds the
// loose rule-sets.
func Rules(forField bool) ([]RuleSet, error) {
	all, err := grammar()
	if err != nil {
		return nil, err
	}
	return FilterRules(all, forField), nil
}

func FilterRules(all []RuleSet, forField bool) []RuleSet {
	if forField {
		return slices.Clone(all)
	}
	out := make([]RuleSet, 0, len(all))
	for _, rs := range all {
		if !rs.FieldOnly {
			out = append(out, rs)
		}
	}
	return out
}

// ValidateGrammar rejects malformed rule-sets and rule-sets that can never
// be reached because an earlier one always matches first.
func ValidateGrammar(rules []RuleSet) error {
	for ndx, rs := range rules {
		if len(rs.Tokens) == 0 {
			return terrors.ErrorRule(ndx, "no rule tokens")
		}
		for _, rt := range rs.Tokens {
			if !rt.Valid() {
				return terrors.ErrorRule(ndx, "invalid rule token %d", int(rt))
			}
		}
		if rs.Tokens[0].Skip() > 0 || rs.Tokens[len(rs.Tokens)-1].Skip() > 0 {
			return terrors.ErrorRule(ndx, "'%s' starts or ends with a word skip", rs)
		}
		if rs.Recur < RecurNone || rs.Recur > RecurYearly {
			return terrors.ErrorRule(ndx, "invalid recurrence %d", int(rs.Recur))
		}
	}
	for later := range rules {
		specific := rules[later].concrete()
		// field mode tries every rule-set, so field-only ones shadow too
		for earlier := 0; earlier < later; earlier++ {
			if shadows(rules[earlier].concrete(), specific) {
				return terrors.ErrorRule(later, "'%s' is unreachable behind rule-set %d '%s'", rules[later], earlier, rules[earlier])
			}
		}
	}
	return nil
}

// general shadows specific when it is a strict prefix or suffix of it
func shadows(general, specific []RuleToken) bool {
	if len(general) >= len(specific) {
		return false
	}
	return slices.Equal(general, specific[:len(general)]) ||
		slices.Equal(general, specific[len(specific)-len(general):])
}
