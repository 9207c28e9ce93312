package formula

import (
	"fmt"
	"strings"
)

// Precedence levels, loosest binding first. Matching the parser: lolli
// binds loosest, then par, tensor, plus, with, then the unary operators.
const (
	precLolli = iota + 1
	precPar
	precTensor
	precPlus
	precWith
	precUnary
	precAtom
)

type symbols struct {
	tensor, par, with, plus string
	lolli, ofCourse, whyNot string
	one, bottom, top, zero  string
	neg                     func(name string) string
	group                   func(s string) string
}

var unicodeSyms = symbols{
	tensor: " ⊗ ", par: " ⅋ ", with: " & ", plus: " ⊕ ",
	lolli: " ⊸ ", ofCourse: "!", whyNot: "?",
	one: "1", bottom: "⊥", top: "⊤", zero: "0",
	neg:   func(name string) string { return name + "⊥" },
	group: func(s string) string { return "(" + s + ")" },
}

var asciiSyms = symbols{
	tensor: " * ", par: " | ", with: " & ", plus: " + ",
	lolli: " -o ", ofCourse: "!", whyNot: "?",
	one: "1", bottom: "bot", top: "top", zero: "0",
	neg:   func(name string) string { return name + "^" },
	group: func(s string) string { return "(" + s + ")" },
}

var latexSyms = symbols{
	tensor: " \\otimes ", par: " \\parr ", with: " \\with ", plus: " \\oplus ",
	lolli: " \\multimap ", ofCourse: "\\oc ", whyNot: "\\wn ",
	one: "\\mathbf{1}", bottom: "\\bot", top: "\\top", zero: "\\mathbf{0}",
	neg:   func(name string) string { return name + "^{\\bot}" },
	group: func(s string) string { return "(" + s + ")" },
}

// Pretty renders f with Unicode connectives and minimal parentheses.
func Pretty(f Formula) string { return render(f, unicodeSyms, 0, false) }

// PrettyASCII renders f with the ASCII surface syntax.
func PrettyASCII(f Formula) string { return render(f, asciiSyms, 0, false) }

// PrettyLaTeX renders f with the cmll/kpfonts macro names.
func PrettyLaTeX(f Formula) string { return render(f, latexSyms, 0, false) }

// render prints f, parenthesizing when f binds looser than the context.
// rightOfSame is set for the right operand of an operator at the same
// precedence level as f, where left associativity forces parentheses
// (and conversely for the right-associative lolli).
func render(f Formula, sy symbols, ctx int, rightOfSame bool) string {
	prec := precedence(f)
	var s string
	switch f := f.(type) {
	case Atom:
		s = f.Name
	case NegAtom:
		s = sy.neg(f.Name)
	case One:
		s = sy.one
	case Bottom:
		s = sy.bottom
	case Top:
		s = sy.top
	case Zero:
		s = sy.zero
	case Tensor:
		s = renderBinary(f.L, f.R, sy.tensor, sy, prec)
	case Par:
		s = renderBinary(f.L, f.R, sy.par, sy, prec)
	case With:
		s = renderBinary(f.L, f.R, sy.with, sy, prec)
	case Plus:
		s = renderBinary(f.L, f.R, sy.plus, sy, prec)
	case Lolli:
		// Right associative: parenthesize a lolli on the left.
		l := render(f.L, sy, prec, true)
		r := render(f.R, sy, prec, false)
		s = l + sy.lolli + r
	case OfCourse:
		s = sy.ofCourse + render(f.F, sy, prec, false)
	case WhyNot:
		s = sy.whyNot + render(f.F, sy, prec, false)
	default:
		panic(fmt.Sprintf("formula: unknown variant %T", f))
	}
	if prec < ctx || (prec == ctx && rightOfSame) {
		return sy.group(s)
	}
	return s
}

func renderBinary(l, r Formula, op string, sy symbols, prec int) string {
	// Left associative: the right operand at equal precedence needs parens.
	return render(l, sy, prec, false) + op + render(r, sy, prec, true)
}

func precedence(f Formula) int {
	switch f.(type) {
	case Atom, NegAtom, One, Bottom, Top, Zero:
		return precAtom
	case OfCourse, WhyNot:
		return precUnary
	case With:
		return precWith
	case Plus:
		return precPlus
	case Tensor:
		return precTensor
	case Par:
		return precPar
	case Lolli:
		return precLolli
	}
	panic("formula: unknown variant")
}

// PrettyList joins formulas with commas, Unicode style.
func PrettyList(fs []Formula) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = Pretty(f)
	}
	return strings.Join(parts, ", ")
}
