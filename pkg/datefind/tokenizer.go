package datefind

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Jaymon/DateParser/pkg/utils"

	"golang.org/x/text/unicode/norm"
)

var (
	hourRegex   = regexp.MustCompile(`^(?:[0-1]?[0-9]|2[0-3])$`)
	minuteRegex = regexp.MustCompile(`^[0-5][0-9]$`)
)

func validHour(s string) bool {
	return hourRegex.MatchString(s)
}

func validMinute(s string) bool {
	return minuteRegex.MatchString(s)
}

// timeBits splits "730" into "7", "30" and "1930" into "19", "30"; anything
// else is all hour.
func timeBits(s string) (string, string) {
	switch len(s) {
	case 3:
		return s[:1], s[1:]
	case 4:
		return s[:2], s[2:]
	}
	return s, ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// raw digit runs share this keyword
var numberKeyword = &Keyword{Category: CatNumber}

// rawWord is a recognised word of the input before time assembly.
type rawWord struct {
	text       string
	keyword    *Keyword
	wordOffset int
	charStart  int
	charStop   int
}

func (w *rawWord) token(kind Kind) *Token {
	return &Token{
		Kind:       kind,
		WordOffset: w.wordOffset,
		CharStart:  w.charStart,
		CharStop:   w.charStop,
		Keyword:    w.keyword,
	}
}

type tokenizer struct {
	keywords *KeywordTable
	raw      []*rawWord
}

// Tokenize splits input into words, keeps the ones the keyword table knows
// (plus digit runs) and compiles them into date tokens.
func Tokenize(input string, now time.Time) Tokens {
	tz := &tokenizer{keywords: NewKeywordTable(now)}
	tz.parse([]rune(norm.NFC.String(input)))
	return tz.compile()
}

func (tz *tokenizer) parse(runes []rune) {
	var (
		word      []rune
		wordStart int
		wordIndex int
	)
	flush := func() {
		if len(word) == 0 {
			return
		}
		wordIndex = tz.saveWord(string(word), wordIndex, wordStart) + 1
		word = word[:0]
	}
	push := func(ndx int) {
		if len(word) == 0 {
			wordStart = ndx
		}
		word = append(word, runes[ndx])
	}

	for ndx := 0; ndx < len(runes); {
		r := runes[ndx]
		switch {
		case utils.IsASCIIDigit(r):
			flush()
			start := ndx
			for ndx < len(runes) && utils.IsASCIIDigit(runes[ndx]) {
				ndx++
			}
			tz.raw = append(tz.raw, &rawWord{
				text:       string(runes[start:ndx]),
				keyword:    numberKeyword,
				wordOffset: wordIndex,
				charStart:  start,
				charStop:   ndx,
			})
			wordIndex++
		case unicode.IsSpace(r):
			for ndx < len(runes) && unicode.IsSpace(runes[ndx]) {
				ndx++
			}
			flush()
		case r == '-' && len(word) > 0 && unicode.ToLower(runes[ndx-1]) == 'y':
			// twenty-four, monday-friday
			push(ndx)
			ndx++
		case r == '-':
			flush()
			push(ndx)
			flush()
			ndx++
		default:
			push(ndx)
			ndx++
		}
	}
	flush()
}

// saveWord keeps a known word and returns the last word index it used. A
// dashed compound that is not a keyword is split into its parts with a
// through delimiter between each.
func (tz *tokenizer) saveWord(text string, wordIndex, charStart int) int {
	if tz.addWord(text, wordIndex, charStart) || !strings.Contains(text, "-") {
		return wordIndex
	}
	offset := charStart
	for ndx, part := range strings.Split(text, "-") {
		if ndx > 0 {
			wordIndex++
			tz.addWord("-", wordIndex, offset)
			offset++
			wordIndex++
		}
		if part != "" {
			tz.addWord(part, wordIndex, offset)
		}
		offset += utils.RuneCount(part)
	}
	return wordIndex
}

func (tz *tokenizer) addWord(text string, wordIndex, charStart int) bool {
	kw, ok := tz.keywords.Lookup(text)
	if !ok {
		return false
	}
	tz.raw = append(tz.raw, &rawWord{
		text:       text,
		keyword:    kw,
		wordOffset: wordIndex,
		charStart:  charStart,
		charStop:   charStart + utils.RuneCount(text),
	})
	return true
}

// at returns the raw word at ndx when it is of one of cats.
func (tz *tokenizer) at(ndx int, cats ...Category) *rawWord {
	if ndx < 0 || ndx >= len(tz.raw) {
		return nil
	}
	w := tz.raw[ndx]
	for _, cat := range cats {
		if w.keyword.Category == cat {
			return w
		}
	}
	return nil
}

func (tz *tokenizer) compile() Tokens {
	var out Tokens
	for ndx := 0; ndx < len(tz.raw); ndx++ {
		w := tz.raw[ndx]
		var tk *Token
		last := ndx
		switch w.keyword.Category {
		case CatNumber:
			if tk, last = tz.compileTimeInterval(ndx); tk == nil {
				if tk, last = tz.compileTime(ndx); tk == nil {
					tk = w.token(KindNumber)
					tk.Text = w.text
				}
			}
		case CatNumberName:
			tk = w.token(KindNumber)
			tk.Text = strconv.Itoa(w.keyword.Value)
		case CatDayName:
			tk = w.token(KindDay)
			tk.Value = w.keyword.Value
		case CatMonth:
			tk = w.token(KindMonth)
			tk.Value = w.keyword.Value
		case CatPrefix:
			tk = w.token(KindPrefix)
			tk.Value = w.keyword.Value
		case CatImplied:
			tk = w.token(KindImplied)
			tk.Value = w.keyword.Value
		case CatTime:
			if tk, last = tz.compileTimeInterval(ndx); tk == nil {
				tk, last = tz.compileTime(ndx)
			}
		case CatThrough:
			tk = w.token(KindThrough)
		case CatDateDelim:
			tk = w.token(KindDateDelim)
		}
		// meridians, time and separator delimiters only matter inside a time
		if tk != nil {
			out = append(out, tk)
			ndx = last
		}
	}
	return out
}

// compileTime assembles a time keyword, "H:MM [meridian]" or "HMM meridian"
// starting at ndx. It returns nil when ndx does not start a valid time.
func (tz *tokenizer) compileTime(ndx int) (*Token, int) {
	w := tz.at(ndx, CatTime, CatNumber)
	if w == nil {
		return nil, ndx
	}

	if w.keyword.Category == CatTime {
		kw := w.keyword
		if kw.Start == nil {
			return nil, ndx
		}
		start := *kw.Start
		start.Tag = kw.TimeTag
		if kw.Stop != nil {
			stop := *kw.Stop
			stop.Tag = kw.TimeTag
			tk := w.token(KindTimeInterval)
			tk.Interval = Interval{Start: start, Stop: stop}
			return tk, ndx
		}
		tk := w.token(KindTime)
		tk.Clock = start
		return tk, ndx
	}

	if tz.at(ndx+1, CatTimeDelim) != nil {
		minute := tz.at(ndx+2, CatNumber)
		if minute == nil || !validHour(w.text) || !validMinute(minute.text) {
			return nil, ndx
		}
		end, last := minute, ndx+2
		clk := TimeOfDay{Hour: atoi(w.text), Minute: atoi(minute.text)}
		if mer := tz.at(ndx+3, CatMeridian); mer != nil {
			clk.Meridian = mer.keyword.Name
			end, last = mer, ndx+3
		}
		tk := w.token(KindTime)
		tk.Clock = clk
		tk.WordOffset = end.wordOffset
		tk.CharStop = end.charStop
		return tk, last
	}

	if mer := tz.at(ndx+1, CatMeridian); mer != nil {
		hour, minute := timeBits(w.text)
		if !validHour(hour) || (minute != "" && !validMinute(minute)) {
			return nil, ndx
		}
		tk := w.token(KindTime)
		tk.Clock = TimeOfDay{Hour: atoi(hour), Minute: atoi(minute), Meridian: mer.keyword.Name}
		tk.WordOffset = mer.wordOffset
		tk.CharStop = mer.charStop
		return tk, ndx + 1
	}
	return nil, ndx
}

// compileTimeInterval assembles "<time> <through> <time>". A bare number may
// open the interval when it directly precedes the delimiter, and may close
// it when the opening side is a real time.
func (tz *tokenizer) compileTimeInterval(ndx int) (*Token, int) {
	start, last := tz.compileTime(ndx)
	fromTime := start != nil
	if fromTime && start.Kind == KindTimeInterval {
		return start, last
	}
	if !fromTime {
		w := tz.at(ndx, CatNumber)
		if w == nil {
			return nil, ndx
		}
		hour, minute := timeBits(w.text)
		if !validHour(hour) || (minute != "" && !validMinute(minute)) {
			return nil, ndx
		}
		start = w.token(KindTime)
		start.Clock = TimeOfDay{Hour: atoi(hour), Minute: atoi(minute)}
		last = ndx
	}

	through := tz.at(last+1, CatThrough)
	if through == nil {
		return nil, ndx
	}
	if !fromTime && through.wordOffset-start.WordOffset > 1 {
		return nil, ndx
	}

	stop, stopLast := tz.compileTime(last + 2)
	if stop != nil && stop.Kind != KindTime {
		stop = nil
	}
	if stop == nil && fromTime {
		if w := tz.at(last+2, CatNumber); w != nil && validHour(w.text) {
			stop = w.token(KindTime)
			stop.Clock = TimeOfDay{Hour: atoi(w.text)}
			stopLast = last + 2
		}
	}
	if stop == nil {
		return nil, ndx
	}

	return &Token{
		Kind:       KindTimeInterval,
		WordOffset: stop.WordOffset,
		CharStart:  start.CharStart,
		CharStop:   stop.CharStop,
		Keyword:    start.Keyword,
		Interval:   Interval{Start: start.Clock, Stop: stop.Clock},
	}, stopLast
}
