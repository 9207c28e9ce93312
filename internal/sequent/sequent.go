// Package sequent models one-sided focused sequents with an unrestricted
// zone and a linear zone, plus the two-sided surface form.
package sequent

import (
	"sort"
	"strings"

	"lolli/internal/formula"
)

// TwoSided is the surface form "Left |- Right".
type TwoSided struct {
	Left  []formula.Formula
	Right []formula.Formula
}

// Sequent is a one-sided sequent ⊢ Θ ; Γ. Theta holds unrestricted formulas
// with the ? wrapper already stripped; Linear is the linear zone. Sequents
// are persistent: every update returns a fresh value and never aliases the
// receiver's slices for writing.
type Sequent struct {
	Theta  []formula.Formula
	Linear []formula.Formula
}

// OneSided translates Left |- Right into the one-sided form by negating and
// desugaring the antecedents and desugaring the succedents. The returned
// count is the number of antecedent-derived formulas at the front of the
// linear zone.
func (ts *TwoSided) OneSided() (Sequent, int) {
	linear := make([]formula.Formula, 0, len(ts.Left)+len(ts.Right))
	for _, f := range ts.Left {
		linear = append(linear, formula.Negate(formula.Desugar(f)))
	}
	for _, f := range ts.Right {
		linear = append(linear, formula.Desugar(f))
	}
	return Sequent{Linear: linear}, len(ts.Left)
}

// String renders the sequent as ⊢ Θ ; Γ.
func (s Sequent) String() string {
	var b strings.Builder
	b.WriteString("⊢ ")
	b.WriteString(formula.PrettyList(s.Theta))
	b.WriteString(" ; ")
	b.WriteString(formula.PrettyList(s.Linear))
	return b.String()
}

// Remove returns the sequent without the i-th linear formula.
func (s Sequent) Remove(i int) Sequent {
	lin := make([]formula.Formula, 0, len(s.Linear)-1)
	lin = append(lin, s.Linear[:i]...)
	lin = append(lin, s.Linear[i+1:]...)
	return Sequent{Theta: s.Theta, Linear: lin}
}

// Replace returns the sequent with the i-th linear formula replaced by fs.
func (s Sequent) Replace(i int, fs ...formula.Formula) Sequent {
	lin := make([]formula.Formula, 0, len(s.Linear)-1+len(fs))
	lin = append(lin, s.Linear[:i]...)
	lin = append(lin, fs...)
	lin = append(lin, s.Linear[i+1:]...)
	return Sequent{Theta: s.Theta, Linear: lin}
}

// Append returns the sequent with f added at the end of the linear zone.
func (s Sequent) Append(f formula.Formula) Sequent {
	lin := make([]formula.Formula, 0, len(s.Linear)+1)
	lin = append(lin, s.Linear...)
	lin = append(lin, f)
	return Sequent{Theta: s.Theta, Linear: lin}
}

// PushTheta returns the sequent with f added to the unrestricted zone.
func (s Sequent) PushTheta(f formula.Formula) Sequent {
	th := make([]formula.Formula, 0, len(s.Theta)+1)
	th = append(th, s.Theta...)
	th = append(th, f)
	return Sequent{Theta: th, Linear: s.Linear}
}

// MoveToEnd returns the sequent with the i-th linear formula rotated to the
// last position. Focus rules keep the formula under focus at the end.
func (s Sequent) MoveToEnd(i int) Sequent {
	lin := make([]formula.Formula, 0, len(s.Linear))
	lin = append(lin, s.Linear[:i]...)
	lin = append(lin, s.Linear[i+1:]...)
	lin = append(lin, s.Linear[i])
	return Sequent{Theta: s.Theta, Linear: lin}
}

// Split is one partition of the linear zone: index sets for the left and
// right premise of a tensor.
type Split struct {
	Left  []int
	Right []int
}

// Splits enumerates every partition of the linear indices excluding
// exclude, 2^(n-1) in total, by bitmask.
func (s Sequent) Splits(exclude int) []Split {
	var idx []int
	for i := range s.Linear {
		if i != exclude {
			idx = append(idx, i)
		}
	}
	n := len(idx)
	out := make([]Split, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		var sp Split
		for b, i := range idx {
			if mask&(1<<b) != 0 {
				sp.Left = append(sp.Left, i)
			} else {
				sp.Right = append(sp.Right, i)
			}
		}
		out = append(out, sp)
	}
	return out
}

// Select returns the sequent whose linear zone is the given indices of the
// receiver, in order.
func (s Sequent) Select(idx []int) Sequent {
	lin := make([]formula.Formula, 0, len(idx))
	for _, i := range idx {
		lin = append(lin, s.Linear[i])
	}
	return Sequent{Theta: s.Theta, Linear: lin}
}

// Key is a canonical form for memoization: sequents equal up to permutation
// of either zone share a key.
func (s Sequent) Key() string {
	th := make([]string, len(s.Theta))
	for i, f := range s.Theta {
		th[i] = formula.Pretty(f)
	}
	lin := make([]string, len(s.Linear))
	for i, f := range s.Linear {
		lin[i] = formula.Pretty(f)
	}
	sort.Strings(th)
	sort.Strings(lin)
	return strings.Join(th, "\x01") + "\x00" + strings.Join(lin, "\x01")
}
