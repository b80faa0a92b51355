package planner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Expr is a node of a parsed search query.
type Expr interface {
	eval(match func(needle string) bool) bool
	String() string
}

type (
	Term      string
	Phrase    string
	And       struct{ L, R Expr }
	Or        struct{ L, R Expr }
	Not       struct{ X Expr }
	Mandatory struct{ X Expr }
)

func (t Term) eval(match func(string) bool) bool   { return match(strings.ToLower(string(t))) }
func (p Phrase) eval(match func(string) bool) bool { return match(strings.ToLower(string(p))) }
func (a And) eval(match func(string) bool) bool    { return a.L.eval(match) && a.R.eval(match) }
func (o Or) eval(match func(string) bool) bool     { return o.L.eval(match) || o.R.eval(match) }
func (n Not) eval(match func(string) bool) bool    { return !n.X.eval(match) }

// A mandatory node is also enforced at the top of the query, see Query.Eval.
func (m Mandatory) eval(match func(string) bool) bool { return m.X.eval(match) }

func (t Term) String() string      { return string(t) }
func (p Phrase) String() string    { return fmt.Sprintf("%q", string(p)) }
func (a And) String() string       { return fmt.Sprintf("AND(%s, %s)", a.L, a.R) }
func (o Or) String() string        { return fmt.Sprintf("OR(%s, %s)", o.L, o.R) }
func (n Not) String() string       { return fmt.Sprintf("NOT(%s)", n.X) }
func (m Mandatory) String() string { return fmt.Sprintf("+%s", m.X) }

var ErrEmptyQuery = errors.New("query: empty")

// ParseError describes where a query stopped making sense.
type ParseError struct {
	Pos int // token index
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query: %s at token %d", e.Msg, e.Pos)
}

// Query is a parsed boolean search query.
type Query struct {
	Root      Expr
	mandatory []Expr
}

// Eval reports whether a document matches. match is called with lowercased
// needles and should test them against a lowercased haystack.
func (q *Query) Eval(match func(needle string) bool) bool {
	for _, m := range q.mandatory {
		if !m.eval(match) {
			return false
		}
	}
	return q.Root.eval(match)
}

// Parse builds the expression tree of query. OR binds loosest, then explicit
// or implicit AND, then NOT and +, then groups, phrases and words.
func Parse(query string) (*Query, error) {
	toks, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyQuery
	}
	p := &parser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		return nil, p.errorf("unexpected %s", p.toks[p.pos])
	}
	q := &Query{Root: root}
	collectMandatory(root, &q.mandatory)
	return q, nil
}

// collectMandatory stops at negations: under NOT a +term is a plain term.
func collectMandatory(e Expr, out *[]Expr) {
	switch n := e.(type) {
	case Mandatory:
		*out = append(*out, n.X)
		collectMandatory(n.X, out)
	case And:
		collectMandatory(n.L, out)
		collectMandatory(n.R, out)
	case Or:
		collectMandatory(n.L, out)
		collectMandatory(n.R, out)
	}
}

type tokenKind int

const (
	tokWord tokenKind = iota
	tokPhrase
	tokAnd
	tokOr
	tokNot
	tokPlus
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func (t token) String() string {
	switch t.kind {
	case tokPhrase:
		return fmt.Sprintf("phrase %q", t.text)
	case tokWord:
		return fmt.Sprintf("word %q", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

func tokenize(query string) ([]token, error) {
	var toks []token
	runes := []rune(query)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case r == '"':
			end := i + 1
			for end < len(runes) && runes[end] != '"' {
				end++
			}
			if end == len(runes) {
				return nil, &ParseError{Pos: len(toks), Msg: "unterminated phrase"}
			}
			text := strings.TrimSpace(string(runes[i+1 : end]))
			if text == "" {
				return nil, &ParseError{Pos: len(toks), Msg: "empty phrase"}
			}
			toks = append(toks, token{tokPhrase, text})
			i = end + 1
		case r == '+':
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				return nil, &ParseError{Pos: len(toks), Msg: "dangling +"}
			}
			toks = append(toks, token{tokPlus, "+"})
			i++
		default:
			end := i
			for end < len(runes) && !unicode.IsSpace(runes[end]) && !strings.ContainsRune(`()"`, runes[end]) {
				end++
			}
			word := string(runes[i:end])
			switch word {
			case "AND":
				toks = append(toks, token{tokAnd, word})
			case "OR":
				toks = append(toks, token{tokOr, word})
			case "NOT":
				toks = append(toks, token{tokNot, word})
			default:
				toks = append(toks, token{tokWord, word})
			}
			i = end
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOr {
			return left, nil
		}
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{L: left, R: right}
	}
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}
		switch t.kind {
		case tokAnd:
			p.pos++
		case tokWord, tokPhrase, tokLParen, tokNot, tokPlus:
			// adjacent terms are AND-ed
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{L: left, R: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of query")
	}
	switch t.kind {
	case tokNot:
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	case tokPlus:
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Mandatory{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of query")
	}
	switch t.kind {
	case tokWord:
		p.pos++
		return Term(t.text), nil
	case tokPhrase:
		p.pos++
		return Phrase(t.text), nil
	case tokLParen:
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return nil, p.errorf("missing )")
		}
		p.pos++
		return inner, nil
	}
	return nil, p.errorf("unexpected %s", t)
}
