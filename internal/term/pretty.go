package term

import (
	"fmt"
	"strings"
)

// Pretty renders t with minimal parentheses.
func Pretty(t Term) string {
	var b strings.Builder
	write(&b, t, 0)
	return b.String()
}

// Printing levels: binders and branches are loosest, then application,
// then atoms.
const (
	levelOuter = iota
	levelApp
	levelAtom
)

func write(b *strings.Builder, t Term, level int) {
	switch t := t.(type) {
	case Var:
		b.WriteString(t.Name)
	case Unit:
		b.WriteString("()")
	case Trivial:
		b.WriteString("<>")
	case Pair:
		b.WriteString("(")
		write(b, t.L, levelOuter)
		b.WriteString(", ")
		write(b, t.R, levelOuter)
		b.WriteString(")")
	case LetPair:
		open(b, level)
		fmt.Fprintf(b, "let (%s, %s) = ", t.X, t.Y)
		write(b, t.Src, levelApp)
		b.WriteString(" in ")
		write(b, t.Body, levelOuter)
		close_(b, level)
	case Abs:
		open(b, level)
		fmt.Fprintf(b, "λ%s. ", t.X)
		write(b, t.Body, levelOuter)
		close_(b, level)
	case App:
		if level > levelApp {
			b.WriteString("(")
		}
		write(b, t.Fn, levelApp)
		b.WriteString(" ")
		write(b, t.Arg, levelAtom)
		if level > levelApp {
			b.WriteString(")")
		}
	case Inl:
		unary(b, "inl", t.T, level)
	case Inr:
		unary(b, "inr", t.T, level)
	case Case:
		open(b, level)
		b.WriteString("case ")
		write(b, t.Scrut, levelApp)
		fmt.Fprintf(b, " of inl %s => ", t.X)
		write(b, t.L, levelOuter)
		fmt.Fprintf(b, " | inr %s => ", t.Y)
		write(b, t.R, levelOuter)
		close_(b, level)
	case Fst:
		unary(b, "fst", t.T, level)
	case Snd:
		unary(b, "snd", t.T, level)
	case Promote:
		b.WriteString("!")
		write(b, t.T, levelAtom)
	case Derelict:
		unary(b, "derelict", t.T, level)
	case Copy:
		open(b, level)
		b.WriteString("copy ")
		write(b, t.Src, levelApp)
		fmt.Fprintf(b, " as %s, %s in ", t.X, t.Y)
		write(b, t.Body, levelOuter)
		close_(b, level)
	case Discard:
		open(b, level)
		b.WriteString("discard ")
		write(b, t.Src, levelApp)
		b.WriteString(" in ")
		write(b, t.Body, levelOuter)
		close_(b, level)
	case Abort:
		unary(b, "abort", t.T, level)
	default:
		panic(fmt.Sprintf("term: unknown variant %T", t))
	}
}

func unary(b *strings.Builder, kw string, t Term, level int) {
	if level > levelApp {
		b.WriteString("(")
	}
	b.WriteString(kw)
	b.WriteString(" ")
	write(b, t, levelAtom)
	if level > levelApp {
		b.WriteString(")")
	}
}

func open(b *strings.Builder, level int) {
	if level > levelOuter {
		b.WriteString("(")
	}
}

func close_(b *strings.Builder, level int) {
	if level > levelOuter {
		b.WriteString(")")
	}
}
