package datefind

import (
	"errors"
	"testing"
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/terrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).Unix()
}

func newTestParser(t *testing.T) *Parser {
	p, err := NewParser(WithClock(calendar.FixedClock(refNow)))
	require.NoError(t, err)
	return p
}

type span struct {
	start, stop int64
}

func spans(dates []Date) []span {
	out := make([]span, len(dates))
	for ndx, d := range dates {
		out[ndx] = span{d.Start, d.Stop}
	}
	return out
}

func TestFindInField(t *testing.T) {
	p := newTestParser(t)
	tests := []struct {
		name  string
		input string
		want  []span
		recur Recurrence
	}{
		{"numeric range expands per day", "10/8/2010 - 10/10/2010", []span{
			{at(2010, 10, 8, 0, 0), at(2010, 10, 9, 0, 0)},
			{at(2010, 10, 9, 0, 0), at(2010, 10, 10, 0, 0)},
			{at(2010, 10, 10, 0, 0), at(2010, 10, 11, 0, 0)},
		}, RecurNone},
		{"in 5 days", "in 5 days", []span{
			{at(2010, 10, 11, 0, 0), at(2010, 10, 12, 0, 0)},
		}, RecurNone},
		{"in 3 hours", "in 3 hours", []span{
			{at(2010, 10, 6, 15, 0), at(2010, 10, 6, 15, 0)},
		}, RecurNone},
		{"in 2 weeks is that whole week", "in 2 weeks", []span{
			{at(2010, 10, 18, 0, 0), at(2010, 10, 25, 0, 0)},
		}, RecurNone},
		{"in 3 months steps four weeks a month", "in 3 months", []span{
			{at(2010, 12, 1, 0, 0), at(2011, 1, 1, 0, 0)},
		}, RecurNone},
		{"in 5 months lands in february", "in 5 months", []span{
			{at(2011, 2, 1, 0, 0), at(2011, 3, 1, 0, 0)},
		}, RecurNone},
		{"this week runs to sunday", "this week", []span{
			{at(2010, 10, 6, 0, 0), at(2010, 10, 11, 0, 0)},
		}, RecurNone},
		{"next week", "next week", []span{
			{at(2010, 10, 11, 0, 0), at(2010, 10, 18, 0, 0)},
		}, RecurNone},
		{"next month", "next month", []span{
			{at(2010, 11, 1, 0, 0), at(2010, 12, 1, 0, 0)},
		}, RecurNone},
		{"tonight", "tonight", []span{
			{at(2010, 10, 6, 18, 0), at(2010, 10, 7, 0, 0)},
		}, RecurNone},
		{"now", "now", []span{
			{at(2010, 10, 6, 12, 0), at(2010, 10, 6, 14, 0)},
		}, RecurNone},
		{"bare time later today", "7pm", []span{
			{at(2010, 10, 6, 19, 0), at(2010, 10, 6, 19, 0)},
		}, RecurNone},
		{"passed time with meridian moves to tomorrow", "9am", []span{
			{at(2010, 10, 7, 9, 0), at(2010, 10, 7, 9, 0)},
		}, RecurNone},
		{"passed hour without meridian reads as pm", "9", []span{
			{at(2010, 10, 6, 21, 0), at(2010, 10, 6, 21, 0)},
		}, RecurNone},
		{"overnight interval", "10pm-2am", []span{
			{at(2010, 10, 6, 22, 0), at(2010, 10, 7, 2, 0)},
		}, RecurNone},
		{"day range", "tuesday-friday", []span{
			{at(2010, 10, 12, 0, 0), at(2010, 10, 13, 0, 0)},
			{at(2010, 10, 13, 0, 0), at(2010, 10, 14, 0, 0)},
			{at(2010, 10, 14, 0, 0), at(2010, 10, 15, 0, 0)},
			{at(2010, 10, 15, 0, 0), at(2010, 10, 16, 0, 0)},
		}, RecurNone},
		{"weekend", "weekend", []span{
			{at(2010, 10, 9, 0, 0), at(2010, 10, 10, 0, 0)},
			{at(2010, 10, 10, 0, 0), at(2010, 10, 11, 0, 0)},
		}, RecurNone},
		{"two digit year", "09/24/09", []span{
			{at(2009, 9, 24, 0, 0), at(2009, 9, 25, 0, 0)},
		}, RecurNone},
		{"far apart words are fine in a field", "on 24 blah blah blah blah september", []span{
			{at(2011, 9, 24, 0, 0), at(2011, 9, 25, 0, 0)},
		}, RecurNone},
		{"day of every month", "24 of every month", []span{
			{at(2010, 10, 24, 0, 0), at(2010, 10, 25, 0, 0)},
		}, RecurMonthly},
		{"every hour range", "every 7-8pm", []span{
			{at(2010, 10, 6, 19, 0), at(2010, 10, 6, 20, 0)},
		}, RecurDaily},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dates := p.FindInField(tc.input, 0, time.Time{})
			assert.Equal(t, tc.want, spans(dates))
			for _, d := range dates {
				assert.Equal(t, tc.recur, d.Recurrence)
			}
		})
	}
}

func TestFindInText(t *testing.T) {
	p := newTestParser(t)
	tests := []struct {
		name  string
		input string
		want  []span
		recur Recurrence
		text  string
	}{
		{"slashed date with time", "2010/10/27 7pm", []span{
			{at(2010, 10, 27, 19, 0), at(2010, 10, 27, 19, 0)},
		}, RecurNone, "2010/10/27 7pm"},
		{"dashed numbers are not a date in text", "2010-10-27 7pm", []span{}, RecurNone, ""},
		{"next tuesday", "next tuesday at 7pm", []span{
			{at(2010, 10, 12, 19, 0), at(2010, 10, 12, 19, 0)},
		}, RecurNone, "next tuesday at 7pm"},
		{"every tuesday", "every tuesday at 7pm", []span{
			{at(2010, 10, 12, 19, 0), at(2010, 10, 12, 19, 0)},
		}, RecurWeekly, "every tuesday at 7pm"},
		{"day month with interval", "meet me on 24 september at 7-8pm please", []span{
			{at(2011, 9, 24, 19, 0), at(2011, 9, 24, 20, 0)},
		}, RecurNone, "on 24 september at 7-8pm"},
		{"day range with year", "the conference is 24-26 september 2009!", []span{
			{at(2009, 9, 24, 0, 0), at(2009, 9, 25, 0, 0)},
			{at(2009, 9, 25, 0, 0), at(2009, 9, 26, 0, 0)},
			{at(2009, 9, 26, 0, 0), at(2009, 9, 27, 0, 0)},
		}, RecurNone, "24-26 september 2009!"},
		{"month name then day range", "september 24-26", []span{
			{at(2011, 9, 24, 0, 0), at(2011, 9, 25, 0, 0)},
			{at(2011, 9, 25, 0, 0), at(2011, 9, 26, 0, 0)},
			{at(2011, 9, 26, 0, 0), at(2011, 9, 27, 0, 0)},
		}, RecurNone, "september 24-26"},
		{"later this month keeps this year", "party on december 24", []span{
			{at(2010, 12, 24, 0, 0), at(2010, 12, 25, 0, 0)},
		}, RecurNone, "on december 24"},
		{"time before prefixed day", "7-8pm next tuesday", []span{
			{at(2010, 10, 12, 19, 0), at(2010, 10, 12, 20, 0)},
		}, RecurNone, "7-8pm next tuesday"},
		{"week day with day number", "monday the 15th", []span{
			{at(2010, 10, 15, 0, 0), at(2010, 10, 16, 0, 0)},
		}, RecurNone, "monday the 15th"},
		{"words too far apart", "on 24 blah blah blah blah september", []span{}, RecurNone, ""},
		{"loose rule-sets are field only", "tuesday", []span{}, RecurNone, ""},
		{"no date", "nothing to see here", []span{}, RecurNone, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dates := p.FindInText(tc.input, 0, time.Time{})
			require.Equal(t, tc.want, spans(dates))
			for _, d := range dates {
				assert.Equal(t, tc.recur, d.Recurrence)
				assert.Equal(t, tc.text, d.Text)
			}
		})
	}
}

func TestFieldOnlyTimeRules(t *testing.T) {
	assert := assert.New(t)
	p := newTestParser(t)

	// the dashed numbers never make a date, so field mode falls through to
	// the bare time and text mode finds nothing
	dates := p.FindInField("2010-10-27 7pm", 0, refNow)
	if assert.Len(dates, 1) {
		assert.Equal("7pm", dates[0].Text)
		assert.Equal(at(2010, 10, 6, 19, 0), dates[0].Start)
		assert.Equal(at(2010, 10, 6, 19, 0), dates[0].Stop)
	}
	assert.Empty(p.FindInText("2010-10-27 7pm", 0, refNow))

	var fieldOnly []string
	for _, rs := range p.Rules(true) {
		if rs.FieldOnly {
			fieldOnly = append(fieldOnly, rs.String())
		}
	}
	assert.Contains(fieldOnly, "TIME_ALL")
	for _, rs := range p.Rules(false) {
		assert.False(rs.FieldOnly, rs.String())
	}
}

func TestRulesIsACopy(t *testing.T) {
	assert := assert.New(t)
	p := newTestParser(t)

	rules := p.Rules(false)
	require.NotEmpty(t, rules)
	first := rules[0].String()
	rules[0] = RuleSet{Recur: RecurYearly}
	assert.Equal(first, p.Rules(false)[0].String())
	assert.Equal(RecurNone, p.Rules(false)[0].Recur)
}

func TestNextIsAfterNow(t *testing.T) {
	p := newTestParser(t)
	for offset := 0; offset < 7; offset++ {
		now := refNow.AddDate(0, 0, offset)
		dates := p.FindInText("next tuesday at 7pm", 0, now)
		if assert.Len(t, dates, 1, now.Weekday().String()) {
			assert.Greater(t, dates[0].Start, now.Unix())
			assert.Equal(t, time.Tuesday, dates[0].StartTime(time.UTC).Weekday())
		}
	}
}

func TestTimezoneOffset(t *testing.T) {
	assert := assert.New(t)
	p := newTestParser(t)
	offset := -7 * calendar.Hour
	dates := p.FindInText("2010/10/27 7pm", offset, time.Time{})
	require.Len(t, dates, 1)
	// 7pm at UTC-7 is 2am UTC the next day
	assert.Equal(at(2010, 10, 28, 2, 0), dates[0].Start)

	loc := calendar.Location(offset)
	assert.Equal(19, dates[0].StartTime(loc).Hour())
}

func TestEmptyInput(t *testing.T) {
	p := newTestParser(t)
	assert.Empty(t, p.FindInText("", 0, refNow))
	assert.Empty(t, p.FindInField("   ", 0, refNow))
}

func TestExplicitNowWins(t *testing.T) {
	p := newTestParser(t)
	now := time.Date(2012, time.March, 1, 8, 0, 0, 0, time.UTC)
	dates := p.FindInField("in 5 days", 0, now)
	require.Len(t, dates, 1)
	assert.Equal(t, at(2012, 3, 6, 0, 0), dates[0].Start)
}

func TestDefaultParser(t *testing.T) {
	dates := FindInText("2010/10/27 7pm", 0, refNow)
	require.Len(t, dates, 1)
	assert.Equal(t, at(2010, 10, 27, 19, 0), dates[0].Start)
	assert.Len(t, FindInField("10/8/2010 - 10/10/2010", 0, refNow), 3)
}

func TestParserTokens(t *testing.T) {
	p := newTestParser(t)
	tks := p.Tokens("next tuesday at 7pm", 0, time.Time{})
	assert.Equal(t, []Kind{KindPrefix, KindDay, KindTime}, tks.Kinds())
}

func TestWithGrammar(t *testing.T) {
	assert := assert.New(t)

	t.Run("invalid grammar is a configuration error", func(t *testing.T) {
		_, err := NewParser(WithGrammar([]RuleSet{{Tokens: []RuleToken{RuleToken(99)}}}))
		assert.True(errors.Is(err, terrors.ErrConf))
	})

	t.Run("custom grammar", func(t *testing.T) {
		only, err := ParseRule("PREFIX DAY_NAME", RecurWeekly, false)
		require.NoError(t, err)
		p, err := NewParser(WithClock(calendar.FixedClock(refNow)), WithGrammar([]RuleSet{only}))
		require.NoError(t, err)
		assert.Len(p.Rules(false), 1)
		assert.Empty(p.FindInText("2010/10/27 7pm", 0, time.Time{}))
		dates := p.FindInText("every friday", 0, time.Time{})
		if assert.Len(dates, 1) {
			assert.Equal(RecurWeekly, dates[0].Recurrence)
			assert.Equal(at(2010, 10, 8, 0, 0), dates[0].Start)
		}
	})
}
