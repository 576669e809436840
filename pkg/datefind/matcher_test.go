package datefind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchText(t *testing.T, input string, forField bool, patterns ...string) *Match {
	rules := make([]RuleSet, len(patterns))
	for ndx, pattern := range patterns {
		rules[ndx] = mustRule(t, pattern)
	}
	return match(Tokenize(input, refNow), rules, forField, refNow)
}

func TestMatchFirstRuleSetWins(t *testing.T) {
	m := matchText(t, "next tuesday at 7pm", false, "DAY_NUM MONTH_NAME", "PREFIX DAY_NAME WORD_3 TIME_ALL", "PREFIX DAY_NAME")
	require.NotNil(t, m)
	assert.Equal(t, 1, m.RuleIndex)
	assert.Len(t, m.DayIndexes, 1)
	assert.Len(t, m.Times, 1)
	assert.NotNil(t, m.Prefix)
}

func TestMatchSkips(t *testing.T) {
	assert := assert.New(t)

	t.Run("filler tokens inside the allowance", func(t *testing.T) {
		m := matchText(t, "monday next 15", false, "DAY_NAME WORD_2 DAY_NUM")
		require.NotNil(t, m)
		assert.Equal("15", m.Days[0].Text)
	})

	t.Run("too many filler tokens", func(t *testing.T) {
		m := matchText(t, "monday next next next 15", false, "DAY_NAME WORD_2 DAY_NUM")
		assert.Nil(m)
	})

	t.Run("no skip means adjacent", func(t *testing.T) {
		assert.Nil(matchText(t, "24 next september", false, "DAY_NUM MONTH_NAME"))
		assert.NotNil(matchText(t, "24 september", false, "DAY_NUM MONTH_NAME"))
	})

	t.Run("a failed attempt restarts at the failing token", func(t *testing.T) {
		m := matchText(t, "24 25 september", false, "DAY_NUM MONTH_NAME")
		require.NotNil(t, m)
		assert.Equal("25", m.Days[0].Text)
	})
}

func TestMatchWordDistance(t *testing.T) {
	assert := assert.New(t)
	input := "on 24 blah blah blah blah september"
	assert.Nil(matchText(t, input, false, "PREFIX DAY_NUM MONTH_NAME"))
	assert.NotNil(matchText(t, input, true, "PREFIX DAY_NUM MONTH_NAME"))
	// one unknown word between is still close enough, two is not
	assert.NotNil(matchText(t, "24 of september", false, "DAY_NUM MONTH_NAME"))
	assert.Nil(matchText(t, "24 of the september", false, "DAY_NUM MONTH_NAME"))
}

func TestMatchRunsOutOfTokens(t *testing.T) {
	assert.Nil(t, matchText(t, "next tuesday", false, "PREFIX DAY_NAME WORD_3 TIME_ALL"))
	assert.Nil(t, matchText(t, "", false, "DAY_NAME"))
}

func TestClassify(t *testing.T) {
	assert := assert.New(t)
	num := func(text string) *Token {
		return &Token{Kind: KindNumber, Text: text, CharStart: 0, CharStop: len(text)}
	}

	tests := []struct {
		rule RuleToken
		tk   *Token
		hit  bool
	}{
		{RuleDayNum, num("31"), true},
		{RuleDayNum, num("32"), false},
		{RuleDayNum, num("09"), true},
		{RuleMonthNum, num("12"), true},
		{RuleMonthNum, num("13"), false},
		{RuleMonthNum, num("0"), false},
		{RuleYear4, num("2010"), true},
		{RuleYear4, num("1399"), false},
		{RuleYear2, num("10"), true},
		{RuleYear2, num("2010"), true},
		{RuleTimeNum, num("23"), true},
		{RuleTimeNum, num("24"), false},
		{RuleNum, num("1000"), true},
		{RuleThrough, &Token{Kind: KindThrough}, true},
		{RuleDateImpliedMonth, &Token{Kind: KindImplied, Value: UnitWeek}, false},
		{RuleDateImpliedMonth, &Token{Kind: KindImplied, Value: UnitMonth}, true},
	}
	for _, tc := range tests {
		hit, skip := classify(tc.rule, tc.tk, &Match{}, refNow)
		assert.Equal(tc.hit, hit, "%s %s", tc.rule, tc.tk)
		assert.Zero(skip)
	}

	t.Run("word markers", func(t *testing.T) {
		hit, skip := classify(RuleWord2, num("1"), &Match{}, refNow)
		assert.True(hit)
		assert.Equal(2, skip)
	})

	t.Run("two digit years expand", func(t *testing.T) {
		m := &Match{}
		classify(RuleYear2, num("09"), m, refNow)
		require.Len(t, m.Years, 1)
		assert.Equal(2009, m.Years[0].Value)
	})

	t.Run("second bare hour closes an interval", func(t *testing.T) {
		m := &Match{}
		classify(RuleTimeNum, num("7"), m, refNow)
		classify(RuleTimeNum, num("9"), m, refNow)
		assert.Empty(m.Times)
		require.NotNil(t, m.Interval)
		assert.Equal(7, m.Interval.Interval.Start.Hour)
		assert.Equal(9, m.Interval.Interval.Stop.Hour)
	})

	t.Run("unknown rule token", func(t *testing.T) {
		assert.Panics(func() {
			classify(RuleToken(0), num("1"), &Match{}, refNow)
		})
	})
}

func TestMatchText(t *testing.T) {
	assert := assert.New(t)
	input := "dinner next tuesday at 7pm sharp"
	m := match(Tokenize(input, refNow), []RuleSet{mustRule(t, "PREFIX DAY_NAME WORD_3 TIME_ALL")}, false, refNow)
	require.NotNil(t, m)
	assert.Equal("next tuesday at 7pm", m.Text(input))

	start, stop := m.Bounds()
	assert.Equal(7, start)
	assert.Equal(26, stop)

	assert.Equal("", (&Match{}).Text(input))
}
