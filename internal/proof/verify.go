package proof

import (
	"errors"
	"fmt"

	"lolli/internal/formula"
	"lolli/internal/sequent"
)

var (
	// ErrInvalidRule means a rule does not apply to its conclusion.
	ErrInvalidRule = errors.New("rule does not apply to conclusion")
	// ErrWrongPremiseCount means a node has the wrong number of premises.
	ErrWrongPremiseCount = errors.New("wrong premise count")
	// ErrContextMismatch means a premise sequent disagrees with the one the
	// rule demands.
	ErrContextMismatch = errors.New("premise context mismatch")
)

// Verify checks a proof tree rule by rule, independently of how it was
// produced. The first violation is reported with the path of rule names
// from the root.
func Verify(n *Node) error {
	return verify(n, "root")
}

func verify(n *Node, path string) error {
	if n == nil {
		return fmt.Errorf("%s: nil node: %w", path, ErrInvalidRule)
	}
	if err := checkLocal(n); err != nil {
		return fmt.Errorf("%s (%s): %w", path, n.Rule.Kind, err)
	}
	for i, p := range n.Premises {
		if err := verify(p, fmt.Sprintf("%s/%s.%d", path, n.Rule.Kind, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkLocal(n *Node) error {
	s := n.Conclusion
	r := n.Rule
	switch r.Kind {
	case Axiom:
		if err := premises(n, 0); err != nil {
			return err
		}
		if len(s.Linear) != 2 {
			return fmt.Errorf("axiom needs exactly two literals: %w", ErrInvalidRule)
		}
		if !dualAtoms(s.Linear[0], s.Linear[1]) {
			return fmt.Errorf("literals %s are not dual atoms: %w", formula.PrettyList(s.Linear), ErrInvalidRule)
		}
		return nil

	case OneIntro:
		if err := premises(n, 0); err != nil {
			return err
		}
		if len(s.Linear) != 1 || !formula.Equal(s.Linear[0], formula.One{}) {
			return fmt.Errorf("1 requires an empty remaining context: %w", ErrInvalidRule)
		}
		return nil

	case TopIntro:
		if err := premises(n, 0); err != nil {
			return err
		}
		if !indexIs(s, r.Index, formula.Top{}) {
			return fmt.Errorf("no ⊤ at index %d: %w", r.Index, ErrInvalidRule)
		}
		return nil

	case BottomIntro:
		if err := premises(n, 1); err != nil {
			return err
		}
		if !indexIs(s, r.Index, formula.Bottom{}) {
			return fmt.Errorf("no ⊥ at index %d: %w", r.Index, ErrInvalidRule)
		}
		return matchPremise(n.Premises[0], s.Remove(r.Index))

	case ParIntro:
		f, err := principal[formula.Par](n)
		if err != nil {
			return err
		}
		if err := premises(n, 1); err != nil {
			return err
		}
		return matchPremise(n.Premises[0], s.Replace(r.Index, f.L, f.R))

	case TensorIntro:
		f, err := principal[formula.Tensor](n)
		if err != nil {
			return err
		}
		if err := premises(n, 2); err != nil {
			return err
		}
		inLeft := map[int]bool{}
		for _, i := range r.LeftSplit {
			if i < 0 || i >= len(s.Linear) || i == r.Index {
				return fmt.Errorf("bad split index %d: %w", i, ErrInvalidRule)
			}
			inLeft[i] = true
		}
		var right []int
		for i := range s.Linear {
			if i != r.Index && !inLeft[i] {
				right = append(right, i)
			}
		}
		if err := matchPremise(n.Premises[0], s.Select(r.LeftSplit).Append(f.L)); err != nil {
			return err
		}
		return matchPremise(n.Premises[1], s.Select(right).Append(f.R))

	case WithIntro:
		f, err := principal[formula.With](n)
		if err != nil {
			return err
		}
		if err := premises(n, 2); err != nil {
			return err
		}
		if err := matchPremise(n.Premises[0], s.Replace(r.Index, f.L)); err != nil {
			return err
		}
		return matchPremise(n.Premises[1], s.Replace(r.Index, f.R))

	case PlusIntroLeft:
		f, err := principal[formula.Plus](n)
		if err != nil {
			return err
		}
		if err := premises(n, 1); err != nil {
			return err
		}
		return matchPremise(n.Premises[0], s.Replace(r.Index, f.L))

	case PlusIntroRight:
		f, err := principal[formula.Plus](n)
		if err != nil {
			return err
		}
		if err := premises(n, 1); err != nil {
			return err
		}
		return matchPremise(n.Premises[0], s.Replace(r.Index, f.R))

	case OfCourseIntro:
		f, err := principal[formula.OfCourse](n)
		if err != nil {
			return err
		}
		if err := premises(n, 1); err != nil {
			return err
		}
		if len(s.Linear) != 1 {
			return fmt.Errorf("promotion requires an otherwise empty linear zone: %w", ErrInvalidRule)
		}
		return matchPremise(n.Premises[0], s.Replace(r.Index, f.F))

	case WhyNotIntro:
		f, err := principal[formula.WhyNot](n)
		if err != nil {
			return err
		}
		if err := premises(n, 1); err != nil {
			return err
		}
		return matchPremise(n.Premises[0], s.Remove(r.Index).PushTheta(f.F))

	case Dereliction:
		if err := premises(n, 1); err != nil {
			return err
		}
		if r.Index < 0 || r.Index >= len(s.Theta) {
			return fmt.Errorf("dereliction index %d out of range: %w", r.Index, ErrInvalidRule)
		}
		return matchPremise(n.Premises[0], s.Append(s.Theta[r.Index]))

	case Weakening:
		if err := premises(n, 1); err != nil {
			return err
		}
		if r.Index < 0 || r.Index >= len(s.Theta) {
			return fmt.Errorf("weakening index %d out of range: %w", r.Index, ErrInvalidRule)
		}
		p := n.Premises[0].Conclusion
		want := sequent.Sequent{Theta: removeAt(s.Theta, r.Index), Linear: s.Linear}
		return matchExact(p, want)

	case Contraction:
		if err := premises(n, 1); err != nil {
			return err
		}
		if r.Index < 0 || r.Index >= len(s.Theta) {
			return fmt.Errorf("contraction index %d out of range: %w", r.Index, ErrInvalidRule)
		}
		return matchPremise(n.Premises[0], s.PushTheta(s.Theta[r.Index]))

	case FocusPositive, FocusNegative, Blur:
		if err := premises(n, 1); err != nil {
			return err
		}
		return matchPremise(n.Premises[0], s)

	case Cut:
		if err := premises(n, 2); err != nil {
			return err
		}
		if r.Principal == nil {
			return fmt.Errorf("cut without a cut formula: %w", ErrInvalidRule)
		}
		left := n.Premises[0].Conclusion
		right := n.Premises[1].Conclusion
		combined := multiset(left.Linear)
		addMultiset(combined, right.Linear)
		if !takeOne(combined, r.Principal) || !takeOne(combined, formula.Negate(r.Principal)) {
			return fmt.Errorf("premises do not carry the cut formula and its dual: %w", ErrContextMismatch)
		}
		if !multisetEqual(combined, multiset(s.Linear)) {
			return fmt.Errorf("cut contexts do not recombine: %w", ErrContextMismatch)
		}
		return nil
	}
	return fmt.Errorf("unknown rule kind %d: %w", r.Kind, ErrInvalidRule)
}

func premises(n *Node, want int) error {
	if len(n.Premises) != want {
		return fmt.Errorf("have %d, want %d: %w", len(n.Premises), want, ErrWrongPremiseCount)
	}
	return nil
}

func principal[F formula.Formula](n *Node) (F, error) {
	var zero F
	s := n.Conclusion
	i := n.Rule.Index
	if i < 0 || i >= len(s.Linear) {
		return zero, fmt.Errorf("principal index %d out of range: %w", i, ErrInvalidRule)
	}
	f, ok := s.Linear[i].(F)
	if !ok {
		return zero, fmt.Errorf("principal %s has the wrong connective: %w", formula.Pretty(s.Linear[i]), ErrInvalidRule)
	}
	return f, nil
}

// matchPremise compares a premise against the sequent the rule demands,
// up to permutation of the linear zone. Theta must match as a multiset too.
func matchPremise(p *Node, want sequent.Sequent) error {
	if p == nil {
		return fmt.Errorf("missing premise: %w", ErrWrongPremiseCount)
	}
	return matchExact(p.Conclusion, want)
}

func matchExact(got, want sequent.Sequent) error {
	if !multisetEqual(multiset(got.Linear), multiset(want.Linear)) {
		return fmt.Errorf("linear zone is ⊢ %s, want ⊢ %s: %w",
			formula.PrettyList(got.Linear), formula.PrettyList(want.Linear), ErrContextMismatch)
	}
	if !multisetEqual(multiset(got.Theta), multiset(want.Theta)) {
		return fmt.Errorf("unrestricted zone is %s, want %s: %w",
			formula.PrettyList(got.Theta), formula.PrettyList(want.Theta), ErrContextMismatch)
	}
	return nil
}

func dualAtoms(a, b formula.Formula) bool {
	if at, ok := a.(formula.Atom); ok {
		n, ok := b.(formula.NegAtom)
		return ok && n.Name == at.Name
	}
	if at, ok := b.(formula.Atom); ok {
		n, ok := a.(formula.NegAtom)
		return ok && n.Name == at.Name
	}
	return false
}

func indexIs(s sequent.Sequent, i int, f formula.Formula) bool {
	return i >= 0 && i < len(s.Linear) && formula.Equal(s.Linear[i], f)
}

func removeAt(fs []formula.Formula, i int) []formula.Formula {
	out := make([]formula.Formula, 0, len(fs)-1)
	out = append(out, fs[:i]...)
	out = append(out, fs[i+1:]...)
	return out
}

func multiset(fs []formula.Formula) map[formula.Formula]int {
	m := make(map[formula.Formula]int, len(fs))
	for _, f := range fs {
		m[f]++
	}
	return m
}

func addMultiset(m map[formula.Formula]int, fs []formula.Formula) {
	for _, f := range fs {
		m[f]++
	}
}

func takeOne(m map[formula.Formula]int, f formula.Formula) bool {
	if m[f] == 0 {
		return false
	}
	m[f]--
	if m[f] == 0 {
		delete(m, f)
	}
	return true
}

func multisetEqual(a, b map[formula.Formula]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
