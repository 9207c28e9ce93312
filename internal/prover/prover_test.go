package prover

import (
	"context"
	"errors"
	"testing"

	"lolli/internal/parser"
	"lolli/internal/proof"
	"lolli/internal/sequent"
)

func prove(t *testing.T, src string) (*proof.Node, error) {
	t.Helper()
	ts, err := parser.ParseSequent(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	seq, _ := ts.OneSided()
	p := New()
	node, _, err := p.Prove(context.Background(), seq)
	return node, err
}

func mustProve(t *testing.T, src string) *proof.Node {
	t.Helper()
	node, err := prove(t, src)
	if err != nil {
		t.Fatalf("Prove(%q): %v", src, err)
	}
	if node == nil {
		t.Fatalf("Prove(%q): not provable, want a proof", src)
	}
	if err := proof.Verify(node); err != nil {
		t.Fatalf("Prove(%q) produced an invalid proof: %v", src, err)
	}
	if c := proof.CutCount(node); c != 0 {
		t.Fatalf("Prove(%q) produced %d cuts, want 0", src, c)
	}
	return node
}

func mustFail(t *testing.T, src string) {
	t.Helper()
	node, err := prove(t, src)
	if err != nil {
		t.Fatalf("Prove(%q): %v", src, err)
	}
	if node != nil {
		t.Fatalf("Prove(%q): found a proof, want none", src)
	}
}

func TestProvable(t *testing.T) {
	cases := []string{
		"A |- A",
		"|- A | A^",
		"A, B |- A * B",
		"A -o B, A |- B",
		"A -o B -o C |- A * B -o C",
		"A * B -o C |- A -o B -o C",
		"!A |- A * A",
		"!A |- 1",
		"A & B |- A",
		"A & B |- B",
		"A |- A + B",
		"B |- A + B",
		"|- 1",
		"A |- top",
		"|- top",
		"A, A -o B, B -o C |- C",
		"|- A -o A",
		"A * B |- B * A",
		"A * (B * C) |- (A * B) * C",
		"!A |- !A * 1",
		"!(A & B) |- !A * !B",
		"A + B |- B + A",
		"A | B |- B | A",
		"bot |- 1 -o bot",
		"0 |- A",
		"A -o B |- !A -o B",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			mustProve(t, src)
		})
	}
}

func TestNotProvable(t *testing.T) {
	cases := []string{
		"A |- B",
		"A |- A * A",
		"A, B |- A & B",
		"A, A |- A",
		"A |- ",
		" |- A",
		"A + B |- A",
		"A |- !A",
		"A * A |- A",
		"A -o B |- B -o A",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			mustFail(t, src)
		})
	}
}

func TestDepthExceeded(t *testing.T) {
	ts, err := parser.ParseSequent("|- ?A")
	if err != nil {
		t.Fatal(err)
	}
	seq, _ := ts.OneSided()
	p := New(WithDepth(20))
	node, _, err := p.Prove(context.Background(), seq)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("got (%v, %v), want ErrDepthExceeded", node, err)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ts, err := parser.ParseSequent("A |- A")
	if err != nil {
		t.Fatal(err)
	}
	seq, _ := ts.OneSided()
	_, _, err = New().Prove(ctx, seq)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestStats(t *testing.T) {
	ts, err := parser.ParseSequent("A, B |- A * B")
	if err != nil {
		t.Fatal(err)
	}
	seq, _ := ts.OneSided()
	node, stats, err := New().Prove(context.Background(), seq)
	if err != nil || node == nil {
		t.Fatalf("Prove: (%v, %v)", node, err)
	}
	if stats.Steps == 0 {
		t.Errorf("Steps = 0, want > 0")
	}
	if stats.MaxDepth == 0 {
		t.Errorf("MaxDepth = 0, want > 0")
	}
}

func TestMemoizationReuse(t *testing.T) {
	// Both alternatives of the inner plus blur into the same unprovable
	// sequent, so the second attempt is answered from the failure table
	// before the outer plus closes on the right.
	ts, err := parser.ParseSequent("A |- ((B & B) + (B & B)) + A")
	if err != nil {
		t.Fatal(err)
	}
	seq, _ := ts.OneSided()
	node, stats, err := New().Prove(context.Background(), seq)
	if err != nil || node == nil {
		t.Fatalf("Prove: (%v, %v)", node, err)
	}
	if stats.MemoHits == 0 {
		t.Fatal("MemoHits = 0, want at least one failure-table hit")
	}
	if err := proof.Verify(node); err != nil {
		t.Fatalf("invalid proof: %v", err)
	}
}

func TestProveDirectSequent(t *testing.T) {
	// ⊢ a⊥ ⅋ a has no antecedents, so its one-sided form is the succedent
	// unchanged.
	ts, err := parser.ParseSequent("|- a^ | a")
	if err != nil {
		t.Fatal(err)
	}
	oneSided, _ := ts.OneSided()
	node, _, err := New().Prove(context.Background(), oneSided)
	if err != nil || node == nil {
		t.Fatalf("Prove: (%v, %v)", node, err)
	}
	var _ sequent.Sequent = node.Conclusion
}
