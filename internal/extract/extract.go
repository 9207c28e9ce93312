// Package extract turns proof trees into linear λ-term witnesses.
//
// The walk carries an environment aligned with the linear zone of each
// conclusion. A nil entry marks the output position, the single formula
// whose inhabitant the walk constructs; a non-nil entry is an input, a
// term inhabiting the dual of the formula at that position. The surface
// antecedents become the input variables x0..x(k-1) and the one succedent
// is the output.
package extract

import (
	"errors"
	"fmt"

	"lolli/internal/formula"
	"lolli/internal/proof"
	"lolli/internal/term"
)

// ErrInternal marks proof shapes the term assignment cannot express. A
// verified search-produced proof hitting this is a bug, not a user error.
var ErrInternal = errors.New("internal extraction error")

// ErrSuccedent is returned when the sequent does not have exactly one
// succedent, the only shape a witness function can be typed for.
var ErrSuccedent = errors.New("extraction requires exactly one succedent")

// Extractor assigns terms to proofs. The counter names fresh variables
// past the antecedent block.
type Extractor struct {
	counter int
}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// thetaEntry tracks one unrestricted-zone formula: the input term backing
// it (nil when the formula is the output), and the fresh variable of each
// dereliction so the copies can be tied off when the entry unwinds.
type thetaEntry struct {
	source  term.Term
	uses    []string
	outUses int
}

// Extract produces the witness of a proof whose root conclusion carries
// antecedents negated input formulas followed by exactly one succedent.
func (ex *Extractor) Extract(root *proof.Node, antecedents int) (term.Term, error) {
	lin := root.Conclusion.Linear
	if len(lin)-antecedents != 1 {
		return nil, fmt.Errorf("%w: have %d", ErrSuccedent, len(lin)-antecedents)
	}
	ex.counter = antecedents
	env := make([]term.Term, len(lin))
	for i := 0; i < antecedents; i++ {
		env[i] = term.Var{Name: fmt.Sprintf("x%d", i)}
	}
	return ex.walk(root, env, nil)
}

// Extract is a convenience wrapper over a one-shot Extractor.
func Extract(root *proof.Node, antecedents int) (term.Term, error) {
	return New().Extract(root, antecedents)
}

func (ex *Extractor) fresh() string {
	v := fmt.Sprintf("x%d", ex.counter)
	ex.counter++
	return v
}

func (ex *Extractor) walk(n *proof.Node, env []term.Term, theta []*thetaEntry) (term.Term, error) {
	r := n.Rule
	switch r.Kind {
	case proof.Axiom:
		return axiomTerm(n, env)

	case proof.OneIntro:
		if env[r.Index] == nil {
			return term.Unit{}, nil
		}
		// No output anywhere: the held refutation of 1 is the result.
		return env[r.Index], nil

	case proof.TopIntro:
		if env[r.Index] == nil {
			return term.Trivial{}, nil
		}
		return term.Abort{T: env[r.Index]}, nil

	case proof.BottomIntro:
		return ex.walk(n.Premises[0], envRemove(env, r.Index), theta)

	case proof.ParIntro:
		f := r.Principal.(formula.Par)
		if env[r.Index] == nil {
			// The function binds the negative component, left on a tie.
			bindLeft := true
			if formula.IsPositive(f.L) && !formula.IsPositive(f.R) {
				bindLeft = false
			}
			x := ex.fresh()
			var l, rr term.Term
			if bindLeft {
				l, rr = term.Var{Name: x}, nil
			} else {
				l, rr = nil, term.Var{Name: x}
			}
			body, err := ex.walk(n.Premises[0], envReplace(env, r.Index, l, rr), theta)
			if err != nil {
				return nil, err
			}
			return term.Abs{X: x, Body: body}, nil
		}
		x, y := ex.fresh(), ex.fresh()
		body, err := ex.walk(n.Premises[0], envReplace(env, r.Index, term.Var{Name: x}, term.Var{Name: y}), theta)
		if err != nil {
			return nil, err
		}
		return term.LetPair{X: x, Y: y, Src: env[r.Index], Body: body}, nil

	case proof.TensorIntro:
		return ex.tensor(n, env, theta)

	case proof.WithIntro:
		if env[r.Index] == nil {
			l, err := ex.walk(n.Premises[0], env, theta)
			if err != nil {
				return nil, err
			}
			rr, err := ex.walk(n.Premises[1], env, theta)
			if err != nil {
				return nil, err
			}
			return term.Pair{L: l, R: rr}, nil
		}
		x, y := ex.fresh(), ex.fresh()
		l, err := ex.walk(n.Premises[0], envSet(env, r.Index, term.Var{Name: x}), theta)
		if err != nil {
			return nil, err
		}
		rr, err := ex.walk(n.Premises[1], envSet(env, r.Index, term.Var{Name: y}), theta)
		if err != nil {
			return nil, err
		}
		return term.Case{Scrut: env[r.Index], X: x, L: l, Y: y, R: rr}, nil

	case proof.PlusIntroLeft:
		if env[r.Index] == nil {
			body, err := ex.walk(n.Premises[0], env, theta)
			if err != nil {
				return nil, err
			}
			return term.Inl{T: body}, nil
		}
		return ex.walk(n.Premises[0], envSet(env, r.Index, term.Fst{T: env[r.Index]}), theta)

	case proof.PlusIntroRight:
		if env[r.Index] == nil {
			body, err := ex.walk(n.Premises[0], env, theta)
			if err != nil {
				return nil, err
			}
			return term.Inr{T: body}, nil
		}
		return ex.walk(n.Premises[0], envSet(env, r.Index, term.Snd{T: env[r.Index]}), theta)

	case proof.OfCourseIntro:
		if env[r.Index] != nil {
			return nil, fmt.Errorf("%w: promotion over an input", ErrInternal)
		}
		body, err := ex.walk(n.Premises[0], env, theta)
		if err != nil {
			return nil, err
		}
		return term.Promote{T: body}, nil

	case proof.WhyNotIntro:
		entry := &thetaEntry{source: env[r.Index]}
		rec, err := ex.walk(n.Premises[0], envRemove(env, r.Index), appendTheta(theta, entry))
		if err != nil {
			return nil, err
		}
		if entry.source == nil {
			return rec, nil
		}
		switch len(entry.uses) {
		case 0:
			return term.Discard{Src: entry.source, Body: rec}, nil
		case 1:
			return term.Subst(rec, entry.uses[0], entry.source), nil
		default:
			return buildCopies(entry.source, entry.uses, rec, ex), nil
		}

	case proof.Dereliction:
		if r.Index < 0 || r.Index >= len(theta) {
			return nil, fmt.Errorf("%w: dereliction outside the unrestricted zone", ErrInternal)
		}
		entry := theta[r.Index]
		var added term.Term
		if entry.source != nil {
			v := ex.fresh()
			entry.uses = append(entry.uses, v)
			added = term.Derelict{T: term.Var{Name: v}}
		} else {
			entry.outUses++
			if entry.outUses > 1 {
				return nil, fmt.Errorf("%w: output used more than once", ErrInternal)
			}
		}
		return ex.walk(n.Premises[0], envAppend(env, added), theta)

	case proof.FocusPositive, proof.FocusNegative:
		return ex.walk(n.Premises[0], envMoveToEnd(env, r.Index), theta)

	case proof.Blur:
		return ex.walk(n.Premises[0], env, theta)
	}
	return nil, fmt.Errorf("%w: rule %s has no term assignment", ErrInternal, r.Kind)
}

func axiomTerm(n *proof.Node, env []term.Term) (term.Term, error) {
	var inputs []int
	for i, t := range env {
		if t != nil {
			inputs = append(inputs, i)
		}
	}
	switch len(inputs) {
	case 1:
		return env[inputs[0]], nil
	case 2:
		// No output in this branch: consuming the positive literal with
		// the refutation held for it yields the result.
		atomIdx, negIdx := inputs[0], inputs[1]
		if _, ok := n.Conclusion.Linear[atomIdx].(formula.NegAtom); ok {
			atomIdx, negIdx = negIdx, atomIdx
		}
		return term.App{Fn: env[atomIdx], Arg: env[negIdx]}, nil
	}
	return nil, fmt.Errorf("%w: axiom with %d inputs", ErrInternal, len(inputs))
}

func (ex *Extractor) tensor(n *proof.Node, env []term.Term, theta []*thetaEntry) (term.Term, error) {
	r := n.Rule
	inLeft := map[int]bool{}
	for _, i := range r.LeftSplit {
		inLeft[i] = true
	}
	var leftEnv, rightEnv []term.Term
	outputInLeft := false
	for i, t := range env {
		if i == r.Index {
			continue
		}
		if inLeft[i] {
			leftEnv = append(leftEnv, t)
			if t == nil {
				outputInLeft = true
			}
		} else {
			rightEnv = append(rightEnv, t)
		}
	}

	if env[r.Index] == nil {
		l, err := ex.walk(n.Premises[0], append(leftEnv, nil), theta)
		if err != nil {
			return nil, err
		}
		rr, err := ex.walk(n.Premises[1], append(rightEnv, nil), theta)
		if err != nil {
			return nil, err
		}
		return term.Pair{L: l, R: rr}, nil
	}

	if outputInLeft {
		return nil, fmt.Errorf("%w: function argument depends on the output", ErrInternal)
	}
	arg, err := ex.walk(n.Premises[0], append(leftEnv, nil), theta)
	if err != nil {
		return nil, err
	}
	return ex.walk(n.Premises[1], append(rightEnv, term.App{Fn: env[r.Index], Arg: arg}), theta)
}

// buildCopies ties n dereliction variables to one source with a chain of
// copy bindings.
func buildCopies(src term.Term, uses []string, body term.Term, ex *Extractor) term.Term {
	if len(uses) == 2 {
		return term.Copy{Src: src, X: uses[0], Y: uses[1], Body: body}
	}
	rest := ex.fresh()
	inner := buildCopies(term.Var{Name: rest}, uses[1:], body, ex)
	return term.Copy{Src: src, X: uses[0], Y: rest, Body: inner}
}

func envRemove(env []term.Term, i int) []term.Term {
	out := make([]term.Term, 0, len(env)-1)
	out = append(out, env[:i]...)
	out = append(out, env[i+1:]...)
	return out
}

func envReplace(env []term.Term, i int, ts ...term.Term) []term.Term {
	out := make([]term.Term, 0, len(env)-1+len(ts))
	out = append(out, env[:i]...)
	out = append(out, ts...)
	out = append(out, env[i+1:]...)
	return out
}

func envSet(env []term.Term, i int, t term.Term) []term.Term {
	out := make([]term.Term, len(env))
	copy(out, env)
	out[i] = t
	return out
}

func envAppend(env []term.Term, t term.Term) []term.Term {
	out := make([]term.Term, 0, len(env)+1)
	out = append(out, env...)
	out = append(out, t)
	return out
}

func envMoveToEnd(env []term.Term, i int) []term.Term {
	out := make([]term.Term, 0, len(env))
	out = append(out, env[:i]...)
	out = append(out, env[i+1:]...)
	out = append(out, env[i])
	return out
}

func appendTheta(theta []*thetaEntry, e *thetaEntry) []*thetaEntry {
	out := make([]*thetaEntry, 0, len(theta)+1)
	out = append(out, theta...)
	out = append(out, e)
	return out
}
