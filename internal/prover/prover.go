// Package prover implements focused proof search for one-sided linear
// logic sequents. The search alternates an asynchronous phase, which
// eagerly decomposes invertible negative connectives, with a synchronous
// phase that picks a positive formula and keeps it under focus until it
// turns negative or the branch closes.
package prover

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lolli/internal/formula"
	"lolli/internal/proof"
	"lolli/internal/sequent"
)

// DefaultMaxDepth bounds the search tree height.
const DefaultMaxDepth = 100

// ErrDepthExceeded reports that the search gave up at the depth bound.
// It is distinct from an unprovable sequent: nothing is known either way.
var ErrDepthExceeded = errors.New("proof search depth exceeded")

// Stats summarizes one search run.
type Stats struct {
	Steps    int
	MemoHits int
	MaxDepth int
}

// Option configures a Prover.
type Option func(*Prover)

// WithDepth sets the depth bound.
func WithDepth(n int) Option {
	return func(p *Prover) { p.maxDepth = n }
}

// WithLogger sets the trace logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Prover) { p.log = l }
}

// Prover runs focused proof search. A Prover is stateless across queries
// and may be reused; it is not safe for concurrent use of a single query's
// memo table, so call Prove from one goroutine at a time.
type Prover struct {
	maxDepth int
	log      *zap.Logger
}

// New returns a Prover with the given options applied over the defaults.
func New(opts ...Option) *Prover {
	p := &Prover{maxDepth: DefaultMaxDepth, log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Prove searches for a cut-free proof of s. A nil proof with a nil error
// means the sequent is definitely not provable within the calculus; the
// depth bound is reported as ErrDepthExceeded instead.
func (p *Prover) Prove(ctx context.Context, s sequent.Sequent) (*proof.Node, Stats, error) {
	sr := &searcher{
		prover: p,
		ctx:    ctx,
		failed: make(map[string]bool),
	}
	node, hitBound, err := sr.search(s, 0)
	if err != nil {
		return nil, sr.stats, err
	}
	if node == nil {
		if hitBound {
			return nil, sr.stats, ErrDepthExceeded
		}
		return nil, sr.stats, nil
	}
	return node, sr.stats, nil
}

// searcher holds the per-query state. The failure table records canonical
// sequent keys that definitely have no proof; branches that ran into the
// depth bound are never recorded, since deeper search might still succeed.
type searcher struct {
	prover *Prover
	ctx    context.Context
	failed map[string]bool
	stats  Stats
}

// search runs the asynchronous phase on s.
func (sr *searcher) search(s sequent.Sequent, depth int) (*proof.Node, bool, error) {
	select {
	case <-sr.ctx.Done():
		return nil, false, sr.ctx.Err()
	default:
	}
	if depth > sr.prover.maxDepth {
		return nil, true, nil
	}
	sr.stats.Steps++
	if depth > sr.stats.MaxDepth {
		sr.stats.MaxDepth = depth
	}
	key := s.Key()
	if sr.failed[key] {
		sr.stats.MemoHits++
		return nil, false, nil
	}

	node, hitBound, err := sr.async(s, depth)
	if err != nil {
		return nil, false, err
	}
	if node == nil && !hitBound {
		sr.failed[key] = true
	}
	return node, hitBound, nil
}

func (sr *searcher) async(s sequent.Sequent, depth int) (*proof.Node, bool, error) {
	for i, f := range s.Linear {
		switch f := f.(type) {
		case formula.Top:
			sr.trace("⊤", s, depth)
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.TopIntro, Principal: f, Index: i},
			}, false, nil

		case formula.Bottom:
			sr.trace("⊥", s, depth)
			return sr.unary(s, depth, proof.Rule{Kind: proof.BottomIntro, Principal: f, Index: i}, s.Remove(i))

		case formula.Par:
			sr.trace("⅋", s, depth)
			return sr.unary(s, depth, proof.Rule{Kind: proof.ParIntro, Principal: f, Index: i}, s.Replace(i, f.L, f.R))

		case formula.WhyNot:
			sr.trace("?", s, depth)
			return sr.unary(s, depth, proof.Rule{Kind: proof.WhyNotIntro, Principal: f, Index: i}, s.Remove(i).PushTheta(f.F))

		case formula.With:
			sr.trace("&", s, depth)
			left, hbL, err := sr.search(s.Replace(i, f.L), depth+1)
			if err != nil {
				return nil, false, err
			}
			if left == nil {
				return nil, hbL, nil
			}
			right, hbR, err := sr.search(s.Replace(i, f.R), depth+1)
			if err != nil {
				return nil, false, err
			}
			if right == nil {
				return nil, hbL || hbR, nil
			}
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.WithIntro, Principal: f, Index: i},
				Premises:   []*proof.Node{left, right},
			}, false, nil
		}
	}
	return sr.sync(s, depth)
}

func (sr *searcher) unary(s sequent.Sequent, depth int, r proof.Rule, premise sequent.Sequent) (*proof.Node, bool, error) {
	child, hitBound, err := sr.search(premise, depth+1)
	if err != nil || child == nil {
		return nil, hitBound, err
	}
	return &proof.Node{Conclusion: s, Rule: r, Premises: []*proof.Node{child}}, false, nil
}

// focusRank orders focus candidates: cheap rules are tried before rules
// that branch or split the context.
func focusRank(f formula.Formula) (int, bool) {
	switch f.(type) {
	case formula.Atom:
		return 0, true
	case formula.One:
		return 1, true
	case formula.Tensor:
		return 2, true
	case formula.Plus:
		return 3, true
	case formula.OfCourse:
		return 4, true
	}
	return 0, false
}

// sync picks a focus among the positive linear formulas; when every
// candidate fails it copies an unrestricted formula into the linear zone
// and restarts.
func (sr *searcher) sync(s sequent.Sequent, depth int) (*proof.Node, bool, error) {
	type cand struct{ rank, idx int }
	var cands []cand
	for i, f := range s.Linear {
		if r, ok := focusRank(f); ok {
			cands = append(cands, cand{r, i})
		}
	}
	// Stable by construction: equal ranks keep index order.
	for a := 1; a < len(cands); a++ {
		for b := a; b > 0 && cands[b].rank < cands[b-1].rank; b-- {
			cands[b], cands[b-1] = cands[b-1], cands[b]
		}
	}

	anyBound := false
	for _, c := range cands {
		sr.trace("focus", s, depth)
		moved := s.MoveToEnd(c.idx)
		inner, hitBound, err := sr.focused(moved, depth+1)
		if err != nil {
			return nil, false, err
		}
		anyBound = anyBound || hitBound
		if inner != nil {
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.FocusPositive, Principal: s.Linear[c.idx], Index: c.idx},
				Premises:   []*proof.Node{inner},
			}, false, nil
		}
	}

	for j, f := range s.Theta {
		sr.trace("derelict", s, depth)
		child, hitBound, err := sr.search(s.Append(f), depth+1)
		if err != nil {
			return nil, false, err
		}
		anyBound = anyBound || hitBound
		if child != nil {
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.Dereliction, Principal: f, Index: j},
				Premises:   []*proof.Node{child},
			}, false, nil
		}
	}
	return nil, anyBound, nil
}

// focused decomposes the formula at the end of the linear zone, which is
// positive on entry.
func (sr *searcher) focused(s sequent.Sequent, depth int) (*proof.Node, bool, error) {
	last := len(s.Linear) - 1
	switch f := s.Linear[last].(type) {
	case formula.Atom:
		if last == 1 {
			if n, ok := s.Linear[0].(formula.NegAtom); ok && n.Name == f.Name {
				sr.trace("axiom", s, depth)
				return &proof.Node{
					Conclusion: s,
					Rule:       proof.Rule{Kind: proof.Axiom, Principal: f, Index: last},
				}, false, nil
			}
		}
		if last == 0 {
			// The dual may live in the unrestricted zone: close with a
			// dereliction step in front of the axiom.
			for j, th := range s.Theta {
				n, ok := th.(formula.NegAtom)
				if !ok || n.Name != f.Name {
					continue
				}
				sr.trace("axiom?", s, depth)
				ax := s.Append(th)
				return &proof.Node{
					Conclusion: s,
					Rule:       proof.Rule{Kind: proof.Dereliction, Principal: th, Index: j},
					Premises: []*proof.Node{{
						Conclusion: ax,
						Rule:       proof.Rule{Kind: proof.Axiom, Principal: f, Index: 0},
					}},
				}, false, nil
			}
		}
		return nil, false, nil

	case formula.One:
		if last == 0 {
			sr.trace("1", s, depth)
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.OneIntro, Principal: f, Index: last},
			}, false, nil
		}
		return nil, false, nil

	case formula.Tensor:
		anyBound := false
		for _, sp := range s.Splits(last) {
			left, hbL, err := sr.focusChild(s.Select(sp.Left).Append(f.L), depth+1)
			if err != nil {
				return nil, false, err
			}
			anyBound = anyBound || hbL
			if left == nil {
				continue
			}
			right, hbR, err := sr.focusChild(s.Select(sp.Right).Append(f.R), depth+1)
			if err != nil {
				return nil, false, err
			}
			anyBound = anyBound || hbR
			if right == nil {
				continue
			}
			sr.trace("⊗", s, depth)
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.TensorIntro, Principal: f, Index: last, LeftSplit: sp.Left},
				Premises:   []*proof.Node{left, right},
			}, false, nil
		}
		return nil, anyBound, nil

	case formula.Plus:
		left, hbL, err := sr.focusChild(s.Replace(last, f.L), depth+1)
		if err != nil {
			return nil, false, err
		}
		if left != nil {
			sr.trace("⊕₁", s, depth)
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.PlusIntroLeft, Principal: f, Index: last},
				Premises:   []*proof.Node{left},
			}, false, nil
		}
		right, hbR, err := sr.focusChild(s.Replace(last, f.R), depth+1)
		if err != nil {
			return nil, false, err
		}
		if right != nil {
			sr.trace("⊕₂", s, depth)
			return &proof.Node{
				Conclusion: s,
				Rule:       proof.Rule{Kind: proof.PlusIntroRight, Principal: f, Index: last},
				Premises:   []*proof.Node{right},
			}, false, nil
		}
		return nil, hbL || hbR, nil

	case formula.OfCourse:
		// Promotion: the rest of the linear zone must already be gone.
		if last != 0 {
			return nil, false, nil
		}
		child, hitBound, err := sr.search(s.Replace(last, f.F), depth+1)
		if err != nil || child == nil {
			return nil, hitBound, err
		}
		sr.trace("!", s, depth)
		return &proof.Node{
			Conclusion: s,
			Rule:       proof.Rule{Kind: proof.OfCourseIntro, Principal: f, Index: last},
			Premises:   []*proof.Node{child},
		}, false, nil
	}
	return nil, false, nil
}

// focusChild continues the focus chain when the new last formula is still
// positive, and otherwise blurs back into the asynchronous phase.
func (sr *searcher) focusChild(s sequent.Sequent, depth int) (*proof.Node, bool, error) {
	last := s.Linear[len(s.Linear)-1]
	if formula.IsPositive(last) {
		return sr.focused(s, depth)
	}
	inner, hitBound, err := sr.search(s, depth+1)
	if err != nil || inner == nil {
		return nil, hitBound, err
	}
	return &proof.Node{
		Conclusion: s,
		Rule:       proof.Rule{Kind: proof.Blur, Principal: last, Index: len(s.Linear) - 1},
		Premises:   []*proof.Node{inner},
	}, false, nil
}

func (sr *searcher) trace(rule string, s sequent.Sequent, depth int) {
	if ce := sr.prover.log.Check(zap.DebugLevel, "rule"); ce != nil {
		ce.Write(
			zap.String("rule", rule),
			zap.String("sequent", s.String()),
			zap.Int("depth", depth),
		)
	}
}
