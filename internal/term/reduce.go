package term

// Step performs one leftmost-outermost reduction. The second result is
// false when t is already normal.
func Step(t Term) (Term, bool) {
	switch t := t.(type) {
	case Var, Unit, Trivial:
		return t, false

	case App:
		if fn, ok := t.Fn.(Abs); ok {
			return Subst(fn.Body, fn.X, t.Arg), true
		}
		if fn, ok := Step(t.Fn); ok {
			return App{fn, t.Arg}, true
		}
		if arg, ok := Step(t.Arg); ok {
			return App{t.Fn, arg}, true
		}
		return t, false

	case LetPair:
		if p, ok := t.Src.(Pair); ok {
			return Subst(Subst(t.Body, t.X, p.L), t.Y, p.R), true
		}
		if src, ok := Step(t.Src); ok {
			return LetPair{t.X, t.Y, src, t.Body}, true
		}
		if body, ok := Step(t.Body); ok {
			return LetPair{t.X, t.Y, t.Src, body}, true
		}
		return t, false

	case Case:
		if inl, ok := t.Scrut.(Inl); ok {
			return Subst(t.L, t.X, inl.T), true
		}
		if inr, ok := t.Scrut.(Inr); ok {
			return Subst(t.R, t.Y, inr.T), true
		}
		if scrut, ok := Step(t.Scrut); ok {
			return Case{scrut, t.X, t.L, t.Y, t.R}, true
		}
		if l, ok := Step(t.L); ok {
			return Case{t.Scrut, t.X, l, t.Y, t.R}, true
		}
		if r, ok := Step(t.R); ok {
			return Case{t.Scrut, t.X, t.L, t.Y, r}, true
		}
		return t, false

	case Fst:
		if p, ok := t.T.(Pair); ok {
			return p.L, true
		}
		if inner, ok := Step(t.T); ok {
			return Fst{inner}, true
		}
		return t, false

	case Snd:
		if p, ok := t.T.(Pair); ok {
			return p.R, true
		}
		if inner, ok := Step(t.T); ok {
			return Snd{inner}, true
		}
		return t, false

	case Derelict:
		if p, ok := t.T.(Promote); ok {
			return p.T, true
		}
		if inner, ok := Step(t.T); ok {
			return Derelict{inner}, true
		}
		return t, false

	case Copy:
		if p, ok := t.Src.(Promote); ok {
			return Subst(Subst(t.Body, t.X, p), t.Y, p), true
		}
		if src, ok := Step(t.Src); ok {
			return Copy{src, t.X, t.Y, t.Body}, true
		}
		if body, ok := Step(t.Body); ok {
			return Copy{t.Src, t.X, t.Y, body}, true
		}
		return t, false

	case Discard:
		if _, ok := t.Src.(Promote); ok {
			return t.Body, true
		}
		if src, ok := Step(t.Src); ok {
			return Discard{src, t.Body}, true
		}
		if body, ok := Step(t.Body); ok {
			return Discard{t.Src, body}, true
		}
		return t, false

	case Abs:
		if body, ok := Step(t.Body); ok {
			return Abs{t.X, body}, true
		}
		return t, false

	case Pair:
		if l, ok := Step(t.L); ok {
			return Pair{l, t.R}, true
		}
		if r, ok := Step(t.R); ok {
			return Pair{t.L, r}, true
		}
		return t, false

	case Inl:
		if inner, ok := Step(t.T); ok {
			return Inl{inner}, true
		}
		return t, false

	case Inr:
		if inner, ok := Step(t.T); ok {
			return Inr{inner}, true
		}
		return t, false

	case Promote:
		if inner, ok := Step(t.T); ok {
			return Promote{inner}, true
		}
		return t, false

	case Abort:
		if inner, ok := Step(t.T); ok {
			return Abort{inner}, true
		}
		return t, false
	}
	return t, false
}

// Normalize reduces t to normal form. Extraction produces terms of a
// strongly normalizing calculus, so the loop terminates on them.
func Normalize(t Term) Term {
	for {
		next, ok := Step(t)
		if !ok {
			return t
		}
		t = next
	}
}

// NormalizeBounded reduces at most maxSteps times. The second result is
// false when the budget ran out before reaching normal form.
func NormalizeBounded(t Term, maxSteps int) (Term, bool) {
	for i := 0; i < maxSteps; i++ {
		next, ok := Step(t)
		if !ok {
			return t, true
		}
		t = next
	}
	_, more := Step(t)
	return t, !more
}

// IsNormal reports whether no reduction applies anywhere in t.
func IsNormal(t Term) bool {
	_, ok := Step(t)
	return !ok
}
