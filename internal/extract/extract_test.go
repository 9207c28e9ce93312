package extract

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lolli/internal/parser"
	"lolli/internal/prover"
	"lolli/internal/term"
)

func witness(t *testing.T, src string) term.Term {
	t.Helper()
	ts, err := parser.ParseSequent(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	seq, ante := ts.OneSided()
	node, _, err := prover.New().Prove(context.Background(), seq)
	if err != nil {
		t.Fatalf("prove %q: %v", src, err)
	}
	if node == nil {
		t.Fatalf("prove %q: not provable", src)
	}
	w, err := Extract(node, ante)
	if err != nil {
		t.Fatalf("extract %q: %v", src, err)
	}
	return term.Normalize(w)
}

func v(n string) term.Term { return term.Var{Name: n} }

func TestIdentity(t *testing.T) {
	got := witness(t, "A |- A")
	if diff := cmp.Diff(v("x0"), got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestEmptyLeftIdentity(t *testing.T) {
	got := witness(t, "|- A -o A")
	abs, ok := got.(term.Abs)
	if !ok {
		t.Fatalf("witness %s, want an abstraction", term.Pretty(got))
	}
	if diff := cmp.Diff(term.Term(v(abs.X)), abs.Body); diff != "" {
		t.Fatalf("body (-want +got):\n%s", diff)
	}
}

func TestTensorPairing(t *testing.T) {
	got := witness(t, "A, B |- A * B")
	want := term.Term(term.Pair{L: v("x0"), R: v("x1")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestApplication(t *testing.T) {
	got := witness(t, "A -o B, A |- B")
	want := term.Term(term.App{Fn: v("x0"), Arg: v("x1")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestCurrying(t *testing.T) {
	got := witness(t, "A * B -o C |- A -o B -o C")
	// λa. λb. x0 (a, b) up to the fresh names picked for a and b.
	outer, ok := got.(term.Abs)
	if !ok {
		t.Fatalf("witness %s, want λ", term.Pretty(got))
	}
	inner, ok := outer.Body.(term.Abs)
	if !ok {
		t.Fatalf("witness %s, want a second λ", term.Pretty(got))
	}
	app, ok := inner.Body.(term.App)
	if !ok {
		t.Fatalf("witness %s, want an application body", term.Pretty(got))
	}
	if diff := cmp.Diff(term.Term(v("x0")), app.Fn); diff != "" {
		t.Fatalf("head (-want +got):\n%s", diff)
	}
	pair, ok := app.Arg.(term.Pair)
	if !ok {
		t.Fatalf("argument %s, want a pair", term.Pretty(app.Arg))
	}
	if diff := cmp.Diff(term.Term(v(outer.X)), pair.L); diff != "" {
		t.Fatalf("pair left (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(term.Term(v(inner.X)), pair.R); diff != "" {
		t.Fatalf("pair right (-want +got):\n%s", diff)
	}
}

func TestDuplication(t *testing.T) {
	got := witness(t, "!A |- A * A")
	cp, ok := got.(term.Copy)
	if !ok {
		t.Fatalf("witness %s, want a copy", term.Pretty(got))
	}
	if diff := cmp.Diff(term.Term(v("x0")), cp.Src); diff != "" {
		t.Fatalf("copy source (-want +got):\n%s", diff)
	}
	pair, ok := cp.Body.(term.Pair)
	if !ok {
		t.Fatalf("copy body %s, want a pair", term.Pretty(cp.Body))
	}
	wantL := term.Term(term.Derelict{T: v(cp.X)})
	wantR := term.Term(term.Derelict{T: v(cp.Y)})
	if diff := cmp.Diff(wantL, pair.L); diff != "" {
		t.Fatalf("left component (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantR, pair.R); diff != "" {
		t.Fatalf("right component (-want +got):\n%s", diff)
	}
}

func TestDiscard(t *testing.T) {
	got := witness(t, "!A |- 1")
	want := term.Term(term.Discard{Src: v("x0"), Body: term.Unit{}})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestWithProjection(t *testing.T) {
	got := witness(t, "A & B |- A")
	want := term.Term(term.Fst{T: v("x0")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}

	got = witness(t, "A & B |- B")
	want = term.Term(term.Snd{T: v("x0")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestPlusInjection(t *testing.T) {
	got := witness(t, "A |- A + B")
	want := term.Term(term.Inl{T: v("x0")})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestCaseAnalysis(t *testing.T) {
	got := witness(t, "A + B |- B + A")
	c, ok := got.(term.Case)
	if !ok {
		t.Fatalf("witness %s, want a case", term.Pretty(got))
	}
	if diff := cmp.Diff(term.Term(v("x0")), c.Scrut); diff != "" {
		t.Fatalf("scrutinee (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(term.Term(term.Inr{T: v(c.X)}), c.L); diff != "" {
		t.Fatalf("left branch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(term.Term(term.Inl{T: v(c.Y)}), c.R); diff != "" {
		t.Fatalf("right branch (-want +got):\n%s", diff)
	}
}

func TestChainedFunctions(t *testing.T) {
	got := witness(t, "A, A -o B, B -o C |- C")
	want := term.Term(term.App{Fn: v("x2"), Arg: term.App{Fn: v("x1"), Arg: v("x0")}})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestUnit(t *testing.T) {
	got := witness(t, "|- 1")
	if diff := cmp.Diff(term.Term(term.Unit{}), got); diff != "" {
		t.Fatalf("witness (-want +got):\n%s", diff)
	}
}

func TestTop(t *testing.T) {
	got := witness(t, "A |- top")
	if _, ok := got.(term.Abort); !ok {
		if _, ok := got.(term.Trivial); !ok {
			t.Fatalf("witness %s, want abort or trivial", term.Pretty(got))
		}
	}
}

func TestSuccedentArity(t *testing.T) {
	ts, err := parser.ParseSequent("A, B |- A, B")
	if err != nil {
		t.Fatal(err)
	}
	seq, ante := ts.OneSided()
	node, _, err := prover.New().Prove(context.Background(), seq)
	if err != nil || node == nil {
		t.Fatalf("prove: (%v, %v)", node, err)
	}
	if _, err := Extract(node, ante); err == nil {
		t.Fatal("Extract should reject multiple succedents")
	}
}

func TestWitnessIsLinearInInputs(t *testing.T) {
	got := witness(t, "A * B |- B * A")
	fv := term.FreeVars(got)
	if !fv["x0"] || len(fv) != 1 {
		t.Fatalf("free variables %v, want exactly {x0}", fv)
	}
}
