package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/scenic/log"
)

// DefaultPrefix is the prefix of generated variable names.
const DefaultPrefix = "__expr"

const operatorName = `\operatorname{`

// Parser turns source expressions into [Definition] lists.
//
// A Parser is not safe for concurrent use; its generated-name counter is
// shared by every call.
type Parser struct {
	sigs   Signatures
	prefix string
	count  int
	logger log.Logger
}

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithPrefix sets the prefix of generated variable names.
func WithPrefix(prefix string) Option {
	return func(p *Parser) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// NewParser returns a Parser that resolves parameter types with sigs.
func NewParser(sigs Signatures, opts ...Option) *Parser {
	p := &Parser{sigs: sigs, prefix: DefaultPrefix}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// IsGenerated reports whether name has the form of a name generated by p.
func (p *Parser) IsGenerated(name string) bool {
	rest, ok := strings.CutPrefix(name, p.prefix)
	if !ok || rest == "" {
		return false
	}

	_, err := strconv.Atoi(rest)

	return err == nil
}

// Result is the outcome of [Parser.ParseDefinitions].
type Result struct {
	Defs []Definition
	// Next is the byte offset just past the parsed definition.
	Next int
}

// ParseDefinitions parses one definition of text beginning at byte offset
// start. Text after the definition is left unread.
func (p *Parser) ParseDefinitions(text string, start int) (Result, error) {
	s := newScanner(text, start)

	defs, err := p.parseDefinition(s, true)
	if err != nil {
		p.logger.TraceContext(context.Background(), "parse failed",
			slog.Int("start", start),
			slog.Any("error", err),
		)

		return Result{}, err
	}

	p.logger.TraceContext(context.Background(), "parsed definitions",
		slog.Int("start", start),
		slog.Int("next", s.pos),
		slog.Int("count", len(defs)),
	)

	return Result{Defs: defs, Next: s.pos}, nil
}

// Parse parses text as exactly one definition. Anything other than
// whitespace after the definition is an error.
func (p *Parser) Parse(text string) ([]Definition, error) {
	res, err := p.ParseDefinitions(text, 0)
	if err != nil {
		return nil, err
	}

	s := newScanner(text, res.Next)
	s.skipWhitespace()

	if !s.eof() {
		return nil, ErrTrailingText.With(
			s.position().Attr(),
			slog.String("text", string(s.input[s.pos:])),
		)
	}

	return res.Defs, nil
}

// parseDefinition parses: ident | [ident '='] call.
// A bare identifier must be followed by ',' or ')', or end the text when top
// is set.
func (p *Parser) parseDefinition(s *scanner, top bool) ([]Definition, error) {
	s.skipWhitespace()

	pos := s.position()
	saved := s.save()

	if name, ok := s.identifier(); ok {
		s.skipWhitespace()

		if c := s.peek(); c == ',' || c == ')' || (top && s.eof()) {
			return []Definition{{Variable: name, Ref: true, Pos: pos}}, nil
		}

		if s.peek() == '=' {
			s.advance()

			return p.parseCall(s, name, false, pos)
		}

		s.restore(saved)
	}

	p.count++

	return p.parseCall(s, p.prefix+strconv.Itoa(p.count), true, pos)
}

// parseCall parses a function application whose result is bound to variable.
func (p *Parser) parseCall(
	s *scanner,
	variable string,
	generated bool,
	pos Position,
) ([]Definition, error) {
	fn, err := s.functionName()
	if err != nil {
		return nil, err
	}

	types, ok := p.sigs.ArgTypes(fn)
	if !ok {
		return nil, ErrUnknownFunction.With(
			pos.Attr(),
			slog.String("func", fn),
		)
	}

	var (
		defs []Definition
		args []string
	)

	s.skipWhitespace()

	if s.peek() == ')' {
		s.advance()

		return append(defs, Definition{
			Variable:  variable,
			Func:      fn,
			Generated: generated,
			Pos:       pos,
		}), nil
	}

	for {
		if s.eof() {
			return nil, ErrUnexpectedEOF.With(
				s.position().Attr(),
				slog.String("func", fn),
			)
		}

		if len(args) >= len(types) {
			return nil, ErrTooManyArgs.With(
				s.position().Attr(),
				slog.String("func", fn),
				slog.Int("expected", len(types)),
			)
		}

		if types[len(args)].Raw() {
			raw, err := s.captureRaw()
			if err != nil {
				return nil, err
			}

			args = append(args, raw)
		} else {
			sub, err := p.parseDefinition(s, false)
			if err != nil {
				return nil, err
			}

			defs = append(defs, sub...)
			args = append(args, sub[len(sub)-1].Variable)

			s.skipWhitespace()
		}

		switch {
		case s.peek() == ',':
			s.advance()

			continue

		case s.peek() == ')':
			s.advance()

		case s.eof():
			return nil, ErrUnexpectedEOF.With(
				s.position().Attr(),
				slog.String("func", fn),
			)

		default:
			return nil, ErrParse.With(
				s.position().Attr(),
				slog.String("expected", "',' or ')'"),
				slog.String("found", string(s.peek())),
			)
		}

		break
	}

	return append(defs, Definition{
		Variable:  variable,
		Func:      fn,
		Args:      args,
		Generated: generated,
		Pos:       pos,
	}), nil
}

// scanner holds the position state of one parse.
type scanner struct {
	input []byte
	pos   int
	line  int
	col   int
}

type mark struct{ pos, line, col int }

func newScanner(text string, start int) *scanner {
	s := &scanner{input: []byte(text), line: 1, col: 1}

	start = max(0, min(start, len(s.input)))
	for s.pos < start {
		s.advance()
	}

	return s
}

func (s *scanner) save() mark { return mark{s.pos, s.line, s.col} }

func (s *scanner) restore(m mark) { s.pos, s.line, s.col = m.pos, m.line, m.col }

// functionName parses ['\operatorname{'] [ident] ['}'] '('.
// The name may be empty.
func (s *scanner) functionName() (string, error) {
	s.skipWhitespace()

	pos := s.position()
	wrapped := strings.HasPrefix(string(s.input[s.pos:]), operatorName)

	if wrapped {
		for range len(operatorName) {
			s.advance()
		}
	}

	name, _ := s.identifier()

	if wrapped && !s.expect('}') {
		return "", ErrExpectedFunction.With(pos.Attr(), slog.String("expected", "'}'"))
	}

	s.skipWhitespace()

	if !s.expect('(') {
		return "", ErrExpectedFunction.With(pos.Attr())
	}

	return name, nil
}

// captureRaw reads raw argument text up to the next ',' or ')' that is not
// enclosed in brackets. The closing delimiter is not consumed.
func (s *scanner) captureRaw() (string, error) {
	const (
		opens  = "([{"
		closes = ")]}"
	)

	start := s.pos

	var stack []byte

	for {
		if s.eof() {
			return "", ErrUnexpectedEOF.With(
				s.position().Attr(),
				slog.String("context", "argument"),
				slog.Int("open", len(stack)),
			)
		}

		c := s.input[s.pos]

		if len(stack) == 0 && (c == ',' || c == ')') {
			break
		}

		if i := strings.IndexByte(opens, c); i >= 0 {
			stack = append(stack, c)
		} else if i := strings.IndexByte(closes, c); i >= 0 {
			if len(stack) == 0 || stack[len(stack)-1] != opens[i] {
				return "", ErrUnmatchedBrace.With(
					s.position().Attr(),
					slog.String("found", string(c)),
				)
			}

			stack = stack[:len(stack)-1]
		}

		s.advance()
	}

	return strings.TrimSpace(string(s.input[start:s.pos])), nil
}

// identifier reads an identifier if one starts at the current position.
func (s *scanner) identifier() (string, bool) {
	start := s.pos

	if s.eof() || !isIdentifierStart(s.peek()) {
		return "", false
	}

	for !s.eof() && isIdentifierContinue(s.peek()) {
		s.advance()
	}

	return string(s.input[start:s.pos]), true
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.input[s.pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRune(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) expect(ch rune) bool {
	if !s.eof() && s.peek() == ch {
		s.advance()

		return true
	}

	return false
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) position() Position {
	return Position{Offset: s.pos, Line: s.line, Column: s.col}
}

func (s *scanner) skipWhitespace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.advance()
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,
		unicode.Nd,
		unicode.Pc,
		unicode.Mn,
		unicode.Mc,
	)
}
