package parser

import (
	"lolli/internal/formula"
	"lolli/internal/sequent"
)

type parser struct {
	toks []token
	pos  int
}

// ParseFormula parses a single formula in either surface syntax.
func ParseFormula(src string) (formula.Formula, error) {
	toks, err := newLexer(src).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f, err := p.parseLolli()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseSequent parses a two-sided sequent "Γ |- Δ". Either side may be
// empty.
func ParseSequent(src string) (*sequent.TwoSided, error) {
	toks, err := newLexer(src).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var left []formula.Formula
	if p.peek().kind != tokTurnstile {
		left, err = p.parseFormulaList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(tokTurnstile); err != nil {
		return nil, err
	}
	var right []formula.Formula
	if p.peek().kind != tokEOF {
		right, err = p.parseFormulaList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return &sequent.TwoSided{Left: left, Right: right}, nil
}

// IsSequent reports whether src contains a turnstile, used by the REPL to
// pick between formula analysis and proving.
func IsSequent(src string) bool {
	toks, err := newLexer(src).tokens()
	if err != nil {
		return false
	}
	for _, t := range toks {
		if t.kind == tokTurnstile {
			return true
		}
	}
	return false
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) error {
	t := p.peek()
	if t.kind != k {
		return &Error{Line: t.line, Col: t.col, Msg: "expected " + k.String() + ", found " + t.kind.String()}
	}
	p.next()
	return nil
}

func (p *parser) parseFormulaList() ([]formula.Formula, error) {
	var fs []formula.Formula
	for {
		f, err := p.parseLolli()
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
		if p.peek().kind != tokComma {
			return fs, nil
		}
		p.next()
	}
}

// parseLolli parses the loosest level. Lolli is right associative.
func (p *parser) parseLolli() (formula.Formula, error) {
	l, err := p.parsePar()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokLolli {
		return l, nil
	}
	p.next()
	r, err := p.parseLolli()
	if err != nil {
		return nil, err
	}
	return formula.Lolli{L: l, R: r}, nil
}

func (p *parser) parsePar() (formula.Formula, error) {
	l, err := p.parseTensor()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPar {
		p.next()
		r, err := p.parseTensor()
		if err != nil {
			return nil, err
		}
		l = formula.Par{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseTensor() (formula.Formula, error) {
	l, err := p.parsePlus()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokTensor {
		p.next()
		r, err := p.parsePlus()
		if err != nil {
			return nil, err
		}
		l = formula.Tensor{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parsePlus() (formula.Formula, error) {
	l, err := p.parseWith()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPlus {
		p.next()
		r, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		l = formula.Plus{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseWith() (formula.Formula, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokWith {
		p.next()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = formula.With{L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseUnary() (formula.Formula, error) {
	switch p.peek().kind {
	case tokBang:
		p.next()
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.OfCourse{F: f}, nil
	case tokQuestion:
		p.next()
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.WhyNot{F: f}, nil
	case tokNeg:
		p.next()
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.Negate(f), nil
	}
	return p.parsePostfix()
}

// parsePostfix handles the negation suffixes "^" and "⊥". On an atom they
// build a negative literal; on anything else the dual is computed.
func (p *parser) parsePostfix() (formula.Formula, error) {
	f, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek().kind
		if k != tokCaret && k != tokPerp {
			return f, nil
		}
		p.next()
		f = formula.Negate(f)
	}
}

func (p *parser) parsePrimary() (formula.Formula, error) {
	t := p.peek()
	switch t.kind {
	case tokIdent:
		p.next()
		return formula.Atom{Name: t.text}, nil
	case tokOne:
		p.next()
		return formula.One{}, nil
	case tokBottom, tokPerp:
		// "⊥" in head position is the Bottom constant.
		p.next()
		return formula.Bottom{}, nil
	case tokTop:
		p.next()
		return formula.Top{}, nil
	case tokZero:
		p.next()
		return formula.Zero{}, nil
	case tokLParen:
		p.next()
		f, err := p.parseLolli()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, &Error{Line: t.line, Col: t.col, Msg: "expected a formula, found " + t.kind.String()}
}
