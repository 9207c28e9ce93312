// Package viz renders proof trees: indented text for terminals,
// bussproofs LaTeX for papers, and Graphviz DOT for everything else.
package viz

import (
	"fmt"
	"strings"

	"lolli/internal/formula"
	"lolli/internal/proof"
	"lolli/internal/sequent"
)

// Tree renders a proof as an indented tree, conclusion first.
type Tree struct {
	ascii     bool
	showRules bool
}

// TreeOption configures a Tree renderer.
type TreeOption func(*Tree)

// ASCII restricts the output to ASCII connectives and connectors.
func ASCII() TreeOption {
	return func(t *Tree) { t.ascii = true }
}

// HideRules drops the [rule] tag after each sequent.
func HideRules() TreeOption {
	return func(t *Tree) { t.showRules = false }
}

// NewTree returns a Tree renderer.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{showRules: true}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Render returns the tree as text, one sequent per line.
func (t *Tree) Render(root *proof.Node) string {
	var b strings.Builder
	t.write(&b, root, "", "")
	return b.String()
}

func (t *Tree) write(b *strings.Builder, n *proof.Node, prefix, childPrefix string) {
	b.WriteString(prefix)
	b.WriteString(t.sequent(n.Conclusion))
	if t.showRules {
		fmt.Fprintf(b, "  [%s]", t.rule(n.Rule.Kind))
	}
	b.WriteString("\n")
	branch, cont, lastBranch, lastCont := "├─ ", "│  ", "└─ ", "   "
	if t.ascii {
		branch, cont, lastBranch, lastCont = "+- ", "|  ", "`- ", "   "
	}
	for i, p := range n.Premises {
		if i == len(n.Premises)-1 {
			t.write(b, p, childPrefix+lastBranch, childPrefix+lastCont)
		} else {
			t.write(b, p, childPrefix+branch, childPrefix+cont)
		}
	}
}

func (t *Tree) sequent(s sequent.Sequent) string {
	if !t.ascii {
		return s.String()
	}
	var b strings.Builder
	b.WriteString("|- ")
	b.WriteString(asciiList(s.Theta))
	b.WriteString(" ; ")
	b.WriteString(asciiList(s.Linear))
	return b.String()
}

func (t *Tree) rule(k proof.RuleKind) string {
	if !t.ascii {
		return k.String()
	}
	if s, ok := asciiRules[k]; ok {
		return s
	}
	return k.String()
}

var asciiRules = map[proof.RuleKind]string{
	proof.BottomIntro:    "bot",
	proof.TensorIntro:    "*",
	proof.ParIntro:       "|",
	proof.TopIntro:       "top",
	proof.PlusIntroLeft:  "+L",
	proof.PlusIntroRight: "+R",
	proof.FocusPositive:  "focus+",
	proof.FocusNegative:  "focus-",
}

func asciiList(fs []formula.Formula) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formula.PrettyASCII(f)
	}
	return strings.Join(parts, ", ")
}

// Latex renders a proof as a bussproofs derivation.
type Latex struct {
	shortLabels bool
	preamble    bool
	document    bool
}

// LatexOption configures a Latex renderer.
type LatexOption func(*Latex)

// ShortLabels uses connective symbols instead of rule names.
func ShortLabels() LatexOption {
	return func(l *Latex) { l.shortLabels = true }
}

// IncludePreamble prepends the \usepackage lines the output needs.
func IncludePreamble() LatexOption {
	return func(l *Latex) { l.preamble = true }
}

// FullDocument wraps the derivation in a compilable standalone document.
// Implies IncludePreamble.
func FullDocument() LatexOption {
	return func(l *Latex) { l.preamble = true; l.document = true }
}

// NewLatex returns a Latex renderer.
func NewLatex(opts ...LatexOption) *Latex {
	l := &Latex{}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Render returns the derivation, premises introduced bottom-up the way
// bussproofs wants them.
func (l *Latex) Render(root *proof.Node) string {
	var b strings.Builder
	if l.document {
		b.WriteString("\\documentclass{article}\n")
	}
	if l.preamble {
		b.WriteString("\\usepackage{bussproofs}\n\\usepackage{cmll}\n")
	}
	if l.document {
		b.WriteString("\\begin{document}\n")
	}
	b.WriteString("\\begin{prooftree}\n")
	l.write(&b, root)
	b.WriteString("\\end{prooftree}\n")
	if l.document {
		b.WriteString("\\end{document}\n")
	}
	return b.String()
}

func (l *Latex) write(b *strings.Builder, n *proof.Node) {
	switch len(n.Premises) {
	case 0:
		fmt.Fprintf(b, "\\AxiomC{}\n\\RightLabel{\\scriptsize %s}\n\\UnaryInfC{%s}\n",
			l.label(n.Rule.Kind), latexSequent(n.Conclusion))
	case 1:
		l.write(b, n.Premises[0])
		fmt.Fprintf(b, "\\RightLabel{\\scriptsize %s}\n\\UnaryInfC{%s}\n",
			l.label(n.Rule.Kind), latexSequent(n.Conclusion))
	case 2:
		l.write(b, n.Premises[0])
		l.write(b, n.Premises[1])
		fmt.Fprintf(b, "\\RightLabel{\\scriptsize %s}\n\\BinaryInfC{%s}\n",
			l.label(n.Rule.Kind), latexSequent(n.Conclusion))
	}
}

func (l *Latex) label(k proof.RuleKind) string {
	table := latexLongLabels
	if l.shortLabels {
		table = latexShortLabels
	}
	if s, ok := table[k]; ok {
		return s
	}
	return "?"
}

var latexShortLabels = map[proof.RuleKind]string{
	proof.Axiom:          "ax",
	proof.Cut:            "cut",
	proof.OneIntro:       "$\\one$",
	proof.BottomIntro:    "$\\bot$",
	proof.TensorIntro:    "$\\otimes$",
	proof.ParIntro:       "$\\parr$",
	proof.TopIntro:       "$\\top$",
	proof.WithIntro:      "$\\with$",
	proof.PlusIntroLeft:  "$\\oplus_1$",
	proof.PlusIntroRight: "$\\oplus_2$",
	proof.OfCourseIntro:  "$\\oc$",
	proof.WhyNotIntro:    "$\\wn$",
	proof.Weakening:      "$\\wn w$",
	proof.Contraction:    "$\\wn c$",
	proof.Dereliction:    "$\\wn d$",
	proof.FocusPositive:  "$F^{+}$",
	proof.FocusNegative:  "$F^{-}$",
	proof.Blur:           "$B$",
}

var latexLongLabels = map[proof.RuleKind]string{
	proof.Axiom:          "axiom",
	proof.Cut:            "cut",
	proof.OneIntro:       "one",
	proof.BottomIntro:    "bottom",
	proof.TensorIntro:    "tensor",
	proof.ParIntro:       "par",
	proof.TopIntro:       "top",
	proof.WithIntro:      "with",
	proof.PlusIntroLeft:  "plus-1",
	proof.PlusIntroRight: "plus-2",
	proof.OfCourseIntro:  "of-course",
	proof.WhyNotIntro:    "why-not",
	proof.Weakening:      "weakening",
	proof.Contraction:    "contraction",
	proof.Dereliction:    "dereliction",
	proof.FocusPositive:  "focus-pos",
	proof.FocusNegative:  "focus-neg",
	proof.Blur:           "blur",
}

func latexSequent(s sequent.Sequent) string {
	return fmt.Sprintf("$\\vdash %s \\,;\\, %s$", latexList(s.Theta), latexList(s.Linear))
}

func latexList(fs []formula.Formula) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = formula.PrettyLaTeX(f)
	}
	return strings.Join(parts, ", ")
}

// Dot renders proofs as Graphviz graphs.
type Dot struct {
	direction string
	shape     string
	font      string
	showRules bool
}

// DotOption configures a Dot renderer.
type DotOption func(*Dot)

// Direction sets rankdir, "BT" by default so conclusions sit at the
// bottom like on paper.
func Direction(d string) DotOption {
	return func(g *Dot) { g.direction = d }
}

// NodeShape sets the Graphviz node shape.
func NodeShape(s string) DotOption {
	return func(g *Dot) { g.shape = s }
}

// FontName sets the node font. Sequents need a font with the linear
// logic glyphs.
func FontName(f string) DotOption {
	return func(g *Dot) { g.font = f }
}

// HideDotRules drops the rule names from the node labels.
func HideDotRules() DotOption {
	return func(g *Dot) { g.showRules = false }
}

// NewDot returns a Dot renderer.
func NewDot(opts ...DotOption) *Dot {
	g := &Dot{direction: "BT", shape: "box", font: "DejaVu Sans", showRules: true}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Render returns the full proof tree as a directed graph, premises
// pointing at their conclusions.
func (g *Dot) Render(root *proof.Node) string {
	var b strings.Builder
	b.WriteString("digraph proof {\n")
	fmt.Fprintf(&b, "  rankdir=%s;\n", g.direction)
	fmt.Fprintf(&b, "  node [shape=%s, fontname=%q];\n", g.shape, g.font)
	id := 0
	var walk func(n *proof.Node) int
	walk = func(n *proof.Node) int {
		me := id
		id++
		label := n.Conclusion.String()
		if g.showRules {
			label += "\\n[" + n.Rule.Kind.String() + "]"
		}
		fmt.Fprintf(&b, "  n%d [label=\"%s\"];\n", me, escapeDot(label))
		for _, p := range n.Premises {
			child := walk(p)
			fmt.Fprintf(&b, "  n%d -> n%d;\n", child, me)
		}
		return me
	}
	walk(root)
	b.WriteString("}\n")
	return b.String()
}

// RenderProofNet returns an undirected graph of the logical rules only.
// Focusing bookkeeping collapses away, leaving one vertex per connective
// introduction or axiom link.
func (g *Dot) RenderProofNet(root *proof.Node) string {
	var b strings.Builder
	b.WriteString("graph proofnet {\n")
	fmt.Fprintf(&b, "  node [shape=%s, fontname=%q];\n", g.shape, g.font)
	id := 0
	var walk func(n *proof.Node) int
	walk = func(n *proof.Node) int {
		for structural(n.Rule.Kind) && len(n.Premises) == 1 {
			n = n.Premises[0]
		}
		me := id
		id++
		label := n.Rule.Kind.String()
		if n.Rule.Principal != nil {
			label += "\\n" + formula.Pretty(n.Rule.Principal)
		}
		fmt.Fprintf(&b, "  n%d [label=\"%s\"];\n", me, escapeDot(label))
		for _, p := range n.Premises {
			child := walk(p)
			fmt.Fprintf(&b, "  n%d -- n%d;\n", me, child)
		}
		return me
	}
	walk(root)
	b.WriteString("}\n")
	return b.String()
}

func structural(k proof.RuleKind) bool {
	return k == proof.FocusPositive || k == proof.FocusNegative || k == proof.Blur
}

func escapeDot(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
