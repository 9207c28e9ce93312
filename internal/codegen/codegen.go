// Package codegen emits Rust source for extracted witnesses.
//
// A formula becomes a Rust type, the normalized witness becomes the body
// of a `witness` function, and a small prelude supplies the sum, choice
// and empty types the mapping needs. The translation is type directed:
// introduction forms are checked against the formula they inhabit, heads
// of neutral terms synthesize theirs.
package codegen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"lolli/internal/formula"
	"lolli/internal/term"
)

// ErrUntypable is returned when the witness term cannot be typed against
// the sequent it was extracted from.
var ErrUntypable = errors.New("codegen: cannot type witness term")

const prelude = `use std::rc::Rc;

pub enum Either<A, B> {
    Left(A),
    Right(B),
}

pub struct Choice<A, B> {
    left: A,
    right: B,
}

impl<A, B> Choice<A, B> {
    pub fn new(left: A, right: B) -> Self {
        Choice { left, right }
    }
    pub fn fst(self) -> A {
        self.left
    }
    pub fn snd(self) -> B {
        self.right
    }
}

pub enum Empty {}

pub enum Never {}

pub struct Top;

pub struct Demand<A>(pub A);

pub fn take<T>(r: Rc<T>) -> T {
    Rc::try_unwrap(r).ok().expect("exclusive reference")
}
`

// Emit writes a complete Rust file: header, prelude, one unit struct per
// atom mentioned in the sequent, and the witness function. The term must
// be the normalized witness of antecedents ⊢ goal.
func Emit(w io.Writer, goal formula.Formula, antecedents []formula.Formula, t term.Term) error {
	env := map[string]formula.Formula{}
	for i, a := range antecedents {
		env[fmt.Sprintf("x%d", i)] = a
	}
	body, err := check(t, goal, env)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("// Code generated by lolli. DO NOT EDIT.\n\n")
	b.WriteString("#![allow(dead_code, unused_imports, unused_variables)]\n\n")
	b.WriteString(prelude)

	for _, name := range atomNames(goal, antecedents) {
		fmt.Fprintf(&b, "\npub struct %s;\n", name)
	}

	b.WriteString("\npub fn witness(")
	for i, a := range antecedents {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "x%d: %s", i, RustType(a))
	}
	fmt.Fprintf(&b, ") -> %s {\n    %s\n}\n", RustType(goal), body)

	_, err = io.WriteString(w, b.String())
	return err
}

// EmitFile is Emit targeting a file path.
func EmitFile(path string, goal formula.Formula, antecedents []formula.Formula, t term.Term) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Emit(f, goal, antecedents, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RustType maps a formula to the Rust type inhabited by its witnesses.
func RustType(f formula.Formula) string {
	switch f := f.(type) {
	case formula.Atom:
		return typeName(f.Name)
	case formula.NegAtom:
		return "Not" + typeName(f.Name)
	case formula.One:
		return "()"
	case formula.Bottom:
		return "Never"
	case formula.Top:
		return "Top"
	case formula.Zero:
		return "Empty"
	case formula.Tensor:
		return fmt.Sprintf("(%s, %s)", RustType(f.L), RustType(f.R))
	case formula.With:
		return fmt.Sprintf("Choice<%s, %s>", RustType(f.L), RustType(f.R))
	case formula.Plus:
		return fmt.Sprintf("Either<%s, %s>", RustType(f.L), RustType(f.R))
	case formula.OfCourse:
		return fmt.Sprintf("Rc<%s>", RustType(f.F))
	case formula.WhyNot:
		return fmt.Sprintf("Demand<%s>", RustType(f.F))
	case formula.Lolli:
		return RustType(parOf(f))
	case formula.Par:
		bound, result := parSplit(f)
		return fmt.Sprintf("Box<dyn FnOnce(%s) -> %s>", RustType(bound), RustType(result))
	}
	panic(fmt.Sprintf("codegen: unknown formula variant %T", f))
}

func parOf(f formula.Lolli) formula.Par {
	return formula.Par{L: formula.Negate(f.L), R: f.R}
}

// parSplit picks the component a ⅋ witness function binds. The negative
// component is bound, left on a tie, matching the witness extraction.
func parSplit(f formula.Par) (bound, result formula.Formula) {
	if formula.IsPositive(f.L) && !formula.IsPositive(f.R) {
		return formula.Negate(f.R), f.L
	}
	return formula.Negate(f.L), f.R
}

func check(t term.Term, f formula.Formula, env map[string]formula.Formula) (string, error) {
	switch t := t.(type) {
	case term.Unit:
		if _, ok := f.(formula.One); !ok {
			return "", fmt.Errorf("%w: () against %s", ErrUntypable, formula.Pretty(f))
		}
		return "()", nil

	case term.Trivial:
		if _, ok := f.(formula.Top); !ok {
			return "", fmt.Errorf("%w: <> against %s", ErrUntypable, formula.Pretty(f))
		}
		return "Top", nil

	case term.Pair:
		switch f := f.(type) {
		case formula.Tensor:
			l, err := check(t.L, f.L, env)
			if err != nil {
				return "", err
			}
			r, err := check(t.R, f.R, env)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("(%s, %s)", l, r), nil
		case formula.With:
			l, err := check(t.L, f.L, env)
			if err != nil {
				return "", err
			}
			r, err := check(t.R, f.R, env)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Choice::new(%s, %s)", l, r), nil
		}
		return "", fmt.Errorf("%w: pair against %s", ErrUntypable, formula.Pretty(f))

	case term.Abs:
		var par formula.Par
		switch f := f.(type) {
		case formula.Lolli:
			par = parOf(f)
		case formula.Par:
			par = f
		default:
			return "", fmt.Errorf("%w: λ against %s", ErrUntypable, formula.Pretty(f))
		}
		bound, result := parSplit(par)
		body, err := check(t.Body, result, withVar(env, t.X, bound))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Box::new(move |%s: %s| %s)", mangle(t.X), RustType(bound), body), nil

	case term.Inl:
		f, ok := f.(formula.Plus)
		if !ok {
			return "", fmt.Errorf("%w: inl against %s", ErrUntypable, formula.Pretty(f))
		}
		inner, err := check(t.T, f.L, env)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Either::Left(%s)", inner), nil

	case term.Inr:
		f, ok := f.(formula.Plus)
		if !ok {
			return "", fmt.Errorf("%w: inr against %s", ErrUntypable, formula.Pretty(f))
		}
		inner, err := check(t.T, f.R, env)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Either::Right(%s)", inner), nil

	case term.Promote:
		f, ok := f.(formula.OfCourse)
		if !ok {
			return "", fmt.Errorf("%w: promotion against %s", ErrUntypable, formula.Pretty(f))
		}
		inner, err := check(t.T, f.F, env)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Rc::new(%s)", inner), nil

	case term.LetPair:
		src, srcType, err := synth(t.Src, env)
		if err != nil {
			return "", err
		}
		tensor, ok := srcType.(formula.Tensor)
		if !ok {
			return "", fmt.Errorf("%w: let pair over %s", ErrUntypable, formula.Pretty(srcType))
		}
		body, err := check(t.Body, f, withVar(withVar(env, t.X, tensor.L), t.Y, tensor.R))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ let (%s, %s) = %s; %s }", mangle(t.X), mangle(t.Y), src, body), nil

	case term.Case:
		src, srcType, err := synth(t.Scrut, env)
		if err != nil {
			return "", err
		}
		plus, ok := srcType.(formula.Plus)
		if !ok {
			return "", fmt.Errorf("%w: case over %s", ErrUntypable, formula.Pretty(srcType))
		}
		l, err := check(t.L, f, withVar(env, t.X, plus.L))
		if err != nil {
			return "", err
		}
		r, err := check(t.R, f, withVar(env, t.Y, plus.R))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("match %s { Either::Left(%s) => %s, Either::Right(%s) => %s }",
			src, mangle(t.X), l, mangle(t.Y), r), nil

	case term.Copy:
		src, srcType, err := synth(t.Src, env)
		if err != nil {
			return "", err
		}
		if _, ok := srcType.(formula.OfCourse); !ok {
			return "", fmt.Errorf("%w: copy of %s", ErrUntypable, formula.Pretty(srcType))
		}
		body, err := check(t.Body, f, withVar(withVar(env, t.X, srcType), t.Y, srcType))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ let %s = %s; let %s = Rc::clone(&%s); %s }",
			mangle(t.X), src, mangle(t.Y), mangle(t.X), body), nil

	case term.Discard:
		src, _, err := synth(t.Src, env)
		if err != nil {
			return "", err
		}
		body, err := check(t.Body, f, env)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{ drop(%s); %s }", src, body), nil

	case term.Abort:
		src, srcType, err := synth(t.T, env)
		if err != nil {
			return "", err
		}
		if _, ok := srcType.(formula.Zero); !ok {
			return "", fmt.Errorf("%w: abort of %s", ErrUntypable, formula.Pretty(srcType))
		}
		return fmt.Sprintf("match %s {}", src), nil
	}

	expr, got, err := synth(t, env)
	if err != nil {
		return "", err
	}
	if !formula.Equal(got, f) {
		return "", fmt.Errorf("%w: have %s, want %s", ErrUntypable, formula.Pretty(got), formula.Pretty(f))
	}
	return expr, nil
}

func synth(t term.Term, env map[string]formula.Formula) (string, formula.Formula, error) {
	switch t := t.(type) {
	case term.Var:
		f, ok := env[t.Name]
		if !ok {
			return "", nil, fmt.Errorf("%w: unbound variable %s", ErrUntypable, t.Name)
		}
		return mangle(t.Name), f, nil

	case term.App:
		fn, fnType, err := synth(t.Fn, env)
		if err != nil {
			return "", nil, err
		}
		var par formula.Par
		switch ft := fnType.(type) {
		case formula.Lolli:
			par = parOf(ft)
		case formula.Par:
			par = ft
		default:
			return "", nil, fmt.Errorf("%w: applying a %s", ErrUntypable, formula.Pretty(fnType))
		}
		bound, result := parSplit(par)
		arg, err := check(t.Arg, bound, env)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("(%s)(%s)", fn, arg), result, nil

	case term.Fst:
		e, f, err := synth(t.T, env)
		if err != nil {
			return "", nil, err
		}
		with, ok := f.(formula.With)
		if !ok {
			return "", nil, fmt.Errorf("%w: fst of %s", ErrUntypable, formula.Pretty(f))
		}
		return fmt.Sprintf("(%s).fst()", e), with.L, nil

	case term.Snd:
		e, f, err := synth(t.T, env)
		if err != nil {
			return "", nil, err
		}
		with, ok := f.(formula.With)
		if !ok {
			return "", nil, fmt.Errorf("%w: snd of %s", ErrUntypable, formula.Pretty(f))
		}
		return fmt.Sprintf("(%s).snd()", e), with.R, nil

	case term.Derelict:
		e, f, err := synth(t.T, env)
		if err != nil {
			return "", nil, err
		}
		oc, ok := f.(formula.OfCourse)
		if !ok {
			return "", nil, fmt.Errorf("%w: dereliction of %s", ErrUntypable, formula.Pretty(f))
		}
		return fmt.Sprintf("take(%s)", e), oc.F, nil
	}
	return "", nil, fmt.Errorf("%w: cannot infer a type for %s", ErrUntypable, term.Pretty(t))
}

func withVar(env map[string]formula.Formula, x string, f formula.Formula) map[string]formula.Formula {
	out := make(map[string]formula.Formula, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	out[x] = f
	return out
}

// mangle turns λ-calculus variable names into Rust identifiers. Renamed
// binders carry primes, which Rust spells _p.
func mangle(name string) string {
	return strings.ReplaceAll(name, "'", "_p")
}

func typeName(atom string) string {
	return strings.ToUpper(atom[:1]) + atom[1:]
}

func atomNames(goal formula.Formula, antecedents []formula.Formula) []string {
	seen := map[string]bool{}
	var collect func(f formula.Formula)
	collect = func(f formula.Formula) {
		switch f := f.(type) {
		case formula.Atom:
			seen[typeName(f.Name)] = true
		case formula.NegAtom:
			seen["Not"+typeName(f.Name)] = true
		case formula.Tensor:
			collect(f.L)
			collect(f.R)
		case formula.Par:
			collect(f.L)
			collect(f.R)
		case formula.With:
			collect(f.L)
			collect(f.R)
		case formula.Plus:
			collect(f.L)
			collect(f.R)
		case formula.Lolli:
			collect(f.L)
			collect(f.R)
		case formula.OfCourse:
			collect(f.F)
		case formula.WhyNot:
			collect(f.F)
		}
	}
	collect(goal)
	for _, a := range antecedents {
		collect(a)
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
