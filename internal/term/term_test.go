package term

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func v(n string) Term { return Var{n} }

func TestFreeVars(t *testing.T) {
	var tm Term = Abs{"x", Pair{v("x"), v("y")}}
	fv := FreeVars(tm)
	if !fv["y"] || fv["x"] || len(fv) != 1 {
		t.Fatalf("FreeVars = %v, want {y}", fv)
	}

	tm = LetPair{"a", "b", v("p"), App{v("a"), v("b")}}
	fv = FreeVars(tm)
	if !fv["p"] || fv["a"] || fv["b"] {
		t.Fatalf("FreeVars = %v, want {p}", fv)
	}
}

func TestSubst(t *testing.T) {
	got := Subst(App{v("f"), v("x")}, "x", Unit{})
	want := Term(App{v("f"), Unit{}})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Subst (-want +got):\n%s", diff)
	}

	// Shadowed occurrences stay untouched.
	got = Subst(Abs{"x", v("x")}, "x", Unit{})
	if diff := cmp.Diff(Term(Abs{"x", v("x")}), got); diff != "" {
		t.Fatalf("Subst under shadow (-want +got):\n%s", diff)
	}
}

func TestSubstAvoidsCapture(t *testing.T) {
	// (λy. x y)[x := y] must not capture the free y.
	got := Subst(Abs{"y", App{v("x"), v("y")}}, "x", v("y"))
	abs, ok := got.(Abs)
	if !ok {
		t.Fatalf("got %T, want Abs", got)
	}
	if abs.X == "y" {
		t.Fatalf("binder not renamed: %s", Pretty(got))
	}
	app, ok := abs.Body.(App)
	if !ok {
		t.Fatalf("body %T, want App", abs.Body)
	}
	if diff := cmp.Diff(Term(v("y")), app.Fn); diff != "" {
		t.Fatalf("substituted head (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Term(v(abs.X)), app.Arg); diff != "" {
		t.Fatalf("bound occurrence should follow the binder (-want +got):\n%s", diff)
	}
}

func TestStepBeta(t *testing.T) {
	tm := App{Abs{"x", v("x")}, Unit{}}
	got, ok := Step(tm)
	if !ok {
		t.Fatal("no step")
	}
	if diff := cmp.Diff(Term(Unit{}), got); diff != "" {
		t.Fatalf("β step (-want +got):\n%s", diff)
	}
}

func TestStepOrderLeftmostOutermost(t *testing.T) {
	inner := App{Abs{"y", v("y")}, Unit{}}
	outer := App{Abs{"x", v("z")}, inner}
	got, ok := Step(outer)
	if !ok {
		t.Fatal("no step")
	}
	// The outer redex fires first, discarding the inner one.
	if diff := cmp.Diff(Term(v("z")), got); diff != "" {
		t.Fatalf("step (-want +got):\n%s", diff)
	}
}

func TestNormalizeReductions(t *testing.T) {
	cases := []struct {
		name string
		in   Term
		want Term
	}{
		{"beta", App{Abs{"x", v("x")}, v("a")}, v("a")},
		{"letpair", LetPair{"x", "y", Pair{v("a"), v("b")}, Pair{v("y"), v("x")}}, Pair{v("b"), v("a")}},
		{"case-inl", Case{Inl{v("a")}, "x", v("x"), "y", v("z")}, v("a")},
		{"case-inr", Case{Inr{v("a")}, "x", v("z"), "y", v("y")}, v("a")},
		{"fst", Fst{Pair{v("a"), v("b")}}, v("a")},
		{"snd", Snd{Pair{v("a"), v("b")}}, v("b")},
		{"derelict", Derelict{Promote{v("a")}}, v("a")},
		{"copy", Copy{Promote{v("a")}, "x", "y", Pair{v("x"), v("y")}}, Pair{Promote{v("a")}, Promote{v("a")}}},
		{"discard", Discard{Promote{v("a")}, v("b")}, v("b")},
		{"nested", App{App{Abs{"f", Abs{"x", App{v("f"), v("x")}}}, Abs{"y", v("y")}}, Unit{}}, Unit{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Normalize(c.in)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("Normalize (-want +got):\n%s", diff)
			}
			if !IsNormal(got) {
				t.Fatalf("result not normal: %s", Pretty(got))
			}
		})
	}
}

func TestNormalizeBounded(t *testing.T) {
	tm := App{Abs{"x", v("x")}, Unit{}}
	got, done := NormalizeBounded(tm, 10)
	if !done {
		t.Fatal("should finish within budget")
	}
	if diff := cmp.Diff(Term(Unit{}), got); diff != "" {
		t.Fatalf("NormalizeBounded (-want +got):\n%s", diff)
	}

	_, done = NormalizeBounded(tm, 0)
	if done {
		t.Fatal("zero budget cannot normalize a redex")
	}
}

func TestPretty(t *testing.T) {
	cases := []struct {
		in   Term
		want string
	}{
		{Abs{"x", v("x")}, "λx. x"},
		{App{v("f"), v("x")}, "f x"},
		{App{v("f"), App{v("g"), v("x")}}, "f (g x)"},
		{App{Abs{"x", v("x")}, v("y")}, "(λx. x) y"},
		{Pair{v("a"), v("b")}, "(a, b)"},
		{LetPair{"x", "y", v("p"), v("x")}, "let (x, y) = p in x"},
		{Case{v("s"), "x", v("x"), "y", v("y")}, "case s of inl x => x | inr y => y"},
		{Promote{v("a")}, "!a"},
		{Derelict{v("a")}, "derelict a"},
		{Copy{v("s"), "x", "y", Pair{v("x"), v("y")}}, "copy s as x, y in (x, y)"},
		{Discard{v("s"), Unit{}}, "discard s in ()"},
		{Fst{v("p")}, "fst p"},
		{Abort{v("t")}, "abort t"},
		{Trivial{}, "<>"},
		{Abs{"a", Abs{"b", App{v("f"), Pair{v("a"), v("b")}}}}, "λa. λb. f (a, b)"},
	}
	for _, c := range cases {
		if got := Pretty(c.in); got != c.want {
			t.Errorf("Pretty = %q, want %q", got, c.want)
		}
	}
}
