package datefind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var refNow = time.Date(2010, time.October, 6, 12, 0, 0, 0, time.UTC)

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		input string
		kinds []Kind
	}{
		{"", nil},
		{"nothing to see here", []Kind{KindThrough}},
		{"10/8/2010 - 10/10/2010", []Kind{
			KindNumber, KindDateDelim, KindNumber, KindDateDelim, KindNumber, KindThrough,
			KindNumber, KindDateDelim, KindNumber, KindDateDelim, KindNumber,
		}},
		{"2010-10-27 7pm", []Kind{KindNumber, KindThrough, KindNumber, KindThrough, KindNumber, KindTime}},
		{"next tuesday at 7pm", []Kind{KindPrefix, KindDay, KindTime}},
		{"7-8pm", []Kind{KindTimeInterval}},
		{"7 - 8", []Kind{KindNumber, KindThrough, KindNumber}},
		{"25:00", []Kind{KindNumber, KindNumber}},
		{"in 5 days", []Kind{KindNumber, KindImplied}},
		{"tuesday-friday", []Kind{KindDay, KindThrough, KindDay}},
		{"this evening", []Kind{KindPrefix, KindTimeInterval}},
		{"noon - 2pm", []Kind{KindTimeInterval}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.kinds, Tokenize(tc.input, refNow).Kinds())
		})
	}
}

func TestTokenizeTimes(t *testing.T) {
	assert := assert.New(t)

	t.Run("interval with trailing meridian", func(t *testing.T) {
		tks := Tokenize("7-8pm", refNow)
		require.Len(t, tks, 1)
		tk := tks[0]
		assert.Equal(KindTimeInterval, tk.Kind)
		assert.Equal(TimeOfDay{Hour: 7}, tk.Interval.Start)
		assert.Equal(TimeOfDay{Hour: 8, Meridian: "pm"}, tk.Interval.Stop)
		assert.Equal(0, tk.CharStart)
		assert.Equal(5, tk.CharStop)
		assert.Equal(3, tk.WordOffset)
	})

	t.Run("hour colon minute", func(t *testing.T) {
		tks := Tokenize("at 7:30pm", refNow)
		require.Len(t, tks, 1)
		assert.Equal(TimeOfDay{Hour: 7, Minute: 30, Meridian: "pm"}, tks[0].Clock)
		assert.Equal(3, tks[0].CharStart)
		assert.Equal(9, tks[0].CharStop)
	})

	t.Run("packed digits", func(t *testing.T) {
		tks := Tokenize("730am", refNow)
		require.Len(t, tks, 1)
		assert.Equal(TimeOfDay{Hour: 7, Minute: 30, Meridian: "am"}, tks[0].Clock)

		tks = Tokenize("1930 hrs", refNow)
		require.Len(t, tks, 1)
		assert.Equal(19, tks[0].Clock.HourMil())
		assert.Equal(30, tks[0].Clock.Minute)
	})

	t.Run("invalid minute stays numbers", func(t *testing.T) {
		tks := Tokenize("7:75pm", refNow)
		assert.Equal([]Kind{KindNumber, KindNumber}, tks.Kinds())
	})

	t.Run("overnight interval", func(t *testing.T) {
		tks := Tokenize("10pm-2am", refNow)
		require.Len(t, tks, 1)
		assert.Equal(TimeOfDay{Hour: 10, Meridian: "pm"}, tks[0].Interval.Start)
		assert.Equal(TimeOfDay{Hour: 2, Meridian: "am"}, tks[0].Interval.Stop)
	})

	t.Run("time keywords carry their tag", func(t *testing.T) {
		tks := Tokenize("evening", refNow)
		require.Len(t, tks, 1)
		assert.Equal(TagEvening, tks[0].Interval.Start.Tag)
		assert.Equal(TagEvening, tks[0].Interval.Stop.Tag)

		tks = Tokenize("noon", refNow)
		require.Len(t, tks, 1)
		assert.Equal(KindTime, tks[0].Kind)
		assert.Equal(12, tks[0].Clock.HourMil())
	})
}

func TestTokenizeWords(t *testing.T) {
	assert := assert.New(t)

	t.Run("compound number names", func(t *testing.T) {
		tks := Tokenize("the twenty-fourth of September", refNow)
		require.Len(t, tks, 2)
		assert.Equal("24", tks[0].Text)
		assert.Equal(KindMonth, tks[1].Kind)
		assert.Equal(9, tks[1].Value)
	})

	t.Run("dashed day names split", func(t *testing.T) {
		tks := Tokenize("Tuesday-Friday", refNow)
		require.Len(t, tks, 3)
		assert.Equal(2, tks[0].Value)
		assert.Equal([2]int{0, 7}, [2]int{tks[0].CharStart, tks[0].CharStop})
		assert.Equal([2]int{7, 8}, [2]int{tks[1].CharStart, tks[1].CharStop})
		assert.Equal(5, tks[2].Value)
		assert.Equal([2]int{8, 14}, [2]int{tks[2].CharStart, tks[2].CharStop})
		assert.Equal([]int{0, 1, 2}, []int{tks[0].WordOffset, tks[1].WordOffset, tks[2].WordOffset})
	})

	t.Run("punctuation and case", func(t *testing.T) {
		tks := Tokenize("Sept. 24, NEXT Tues?", refNow)
		assert.Equal([]Kind{KindMonth, KindNumber, KindPrefix, KindDay}, tks.Kinds())
	})

	t.Run("unknown words still count", func(t *testing.T) {
		tks := Tokenize("lunch with bob tuesday", refNow)
		require.Len(t, tks, 1)
		assert.Equal(3, tks[0].WordOffset)
	})

	t.Run("rune offsets", func(t *testing.T) {
		tks := Tokenize("caf\u00e9 7pm", refNow)
		require.Len(t, tks, 1)
		assert.Equal(5, tks[0].CharStart)
		assert.Equal(8, tks[0].CharStop)

		// decomposed input is normalised first
		tks = Tokenize("cafe\u0301 7pm", refNow)
		require.Len(t, tks, 1)
		assert.Equal(5, tks[0].CharStart)
	})

	t.Run("offsets never go backwards", func(t *testing.T) {
		tks := Tokenize("on 24 september 2009 - october 15, 2009 at 7-8pm", refNow)
		require.NotEmpty(t, tks)
		for ndx := 1; ndx < len(tks); ndx++ {
			assert.GreaterOrEqual(tks[ndx].WordOffset, tks[ndx-1].WordOffset)
			assert.GreaterOrEqual(tks[ndx].CharStop, tks[ndx].CharStart)
		}
	})
}

func TestTimeBits(t *testing.T) {
	tests := []struct {
		in, hour, minute string
	}{
		{"7", "7", ""},
		{"12", "12", ""},
		{"730", "7", "30"},
		{"1930", "19", "30"},
		{"12345", "12345", ""},
	}
	for _, tc := range tests {
		hour, minute := timeBits(tc.in)
		assert.Equal(t, tc.hour, hour, tc.in)
		assert.Equal(t, tc.minute, minute, tc.in)
	}
}

func TestHourMil(t *testing.T) {
	tests := []struct {
		clock TimeOfDay
		want  int
	}{
		{TimeOfDay{Hour: 7}, 7},
		{TimeOfDay{Hour: 7, Meridian: "pm"}, 19},
		{TimeOfDay{Hour: 7, Meridian: "p.m."}, 19},
		{TimeOfDay{Hour: 12, Meridian: "pm"}, 12},
		{TimeOfDay{Hour: 12, Meridian: "am"}, 0},
		{TimeOfDay{Hour: 12}, 0},
		{TimeOfDay{Hour: 19, Meridian: "pm"}, 19},
		{TimeOfDay{Hour: 18, Military: true, Meridian: "pm"}, 18},
		{TimeOfDay{Hour: 0, Military: true}, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.clock.HourMil(), tc.clock.String())
	}
}
