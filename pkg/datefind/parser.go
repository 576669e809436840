// Package datefind finds natural language dates in text ("next tuesday at
// 7pm", "24-26 september", "every 09/24") and resolves them to unix
// timestamps.
//
// Input is tokenized against a keyword table, the tokens are scanned by an
// ordered grammar of rule-sets (most specific first) and the first rule-set
// that matches is resolved relative to a reference time.
package datefind

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Jaymon/DateParser/pkg/calendar"
	"github.com/Jaymon/DateParser/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

type Parser struct {
	clock      calendar.Clock
	logger     *zap.SugaredLogger
	textRules  []RuleSet
	fieldRules []RuleSet
	grammarErr error
}

type Option func(*Parser)

// WithClock sets where a zero reference time is read from.
func WithClock(c calendar.Clock) Option {
	return func(p *Parser) {
		p.clock = c
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// WithGrammar replaces the built-in rule-sets; field mode uses all of them,
// text mode skips the field-only ones.
func WithGrammar(rules []RuleSet) Option {
	return func(p *Parser) {
		if err := ValidateGrammar(rules); err != nil {
			p.grammarErr = err
			return
		}
		p.textRules = FilterRules(rules, false)
		p.fieldRules = FilterRules(rules, true)
	}
}

func NewParser(opts ...Option) (*Parser, error) {
	all, err := grammar()
	if err != nil {
		return nil, fmt.Errorf("built-in grammar: %w", err)
	}
	p := &Parser{
		clock:      calendar.SystemClock{},
		textRules:  FilterRules(all, false),
		fieldRules: FilterRules(all, true),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.grammarErr != nil {
		return nil, p.grammarErr
	}
	return p, nil
}

// log resolves late so the package logger can be initialised after the
// parser was built.
func (p *Parser) log() *zap.SugaredLogger {
	if p.logger != nil {
		return p.logger
	}
	return logging.Logger
}

func (p *Parser) reference(tzOffset int, now time.Time) time.Time {
	if now.IsZero() {
		now = p.clock.Now()
	}
	return now.In(calendar.Location(tzOffset))
}

// FindInText looks for a date anywhere in free text. tzOffset is in seconds
// east of UTC; a zero now reads the parser's clock.
func (p *Parser) FindInText(input string, tzOffset int, now time.Time) []Date {
	return p.find(input, tzOffset, now, false)
}

// FindInField reads input as a value that is expected to be a date, so the
// loose rule-sets apply and words may sit far apart.
func (p *Parser) FindInField(input string, tzOffset int, now time.Time) []Date {
	return p.find(input, tzOffset, now, true)
}

// Tokens is the compiled token stream the matcher would see.
func (p *Parser) Tokens(input string, tzOffset int, now time.Time) Tokens {
	return Tokenize(input, p.reference(tzOffset, now))
}

// Rules lists the rule-sets tried for the mode, in order. The slice is a
// copy.
func (p *Parser) Rules(forField bool) []RuleSet {
	if forField {
		return slices.Clone(p.fieldRules)
	}
	return slices.Clone(p.textRules)
}

func (p *Parser) find(input string, tzOffset int, now time.Time, forField bool) []Date {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	now = p.reference(tzOffset, now)
	input = norm.NFC.String(input)

	tokens := Tokenize(input, now)
	p.log().Debugw("tokenized", "input", input, "tokens", tokens.String())
	if len(tokens) == 0 {
		return nil
	}

	m := match(tokens, p.Rules(forField), forField, now)
	if m == nil {
		p.log().Debugw("no rule-set matched", "input", input, "field", forField)
		return nil
	}
	p.log().Debugw("rule-set matched", "index", m.RuleIndex, "rule", m.Rule.String(), "recur", m.Rule.Recur.String())

	dates := resolve(m, input, now)
	p.log().Debugw("resolved", "count", len(dates), "text", m.Text(input))
	return dates
}

var std = sync.OnceValue(func() *Parser {
	p, err := NewParser()
	if err != nil {
		panic(err)
	}
	return p
})

// FindInText uses a parser with the built-in grammar and the system clock.
func FindInText(input string, tzOffset int, now time.Time) []Date {
	return std().FindInText(input, tzOffset, now)
}

func FindInField(input string, tzOffset int, now time.Time) []Date {
	return std().FindInField(input, tzOffset, now)
}
