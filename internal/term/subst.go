package term

import (
	"fmt"
	"strconv"
)

// Subst replaces free occurrences of x in t with s, renaming binders that
// would capture a free variable of s. A binder equal to x shadows it and
// stops the substitution.
func Subst(t Term, x string, s Term) Term {
	return subst(t, x, s, FreeVars(s))
}

// rename picks a binder name not free in s, not equal to x and not free in
// the body, then rewrites the body to use it.
func rename(bind string, x string, fvs map[string]bool, body Term) (string, Term) {
	if !fvs[bind] {
		return bind, body
	}
	bodyFree := FreeVars(body)
	for i := 0; ; i++ {
		nb := bind + "'" + strconv.Itoa(i)
		if !fvs[nb] && nb != x && !bodyFree[nb] {
			return nb, subst(body, bind, Var{nb}, map[string]bool{nb: true})
		}
	}
}

func subst(t Term, x string, s Term, fvs map[string]bool) Term {
	switch t := t.(type) {
	case Var:
		if t.Name == x {
			return s
		}
		return t
	case Unit, Trivial:
		return t
	case Pair:
		return Pair{subst(t.L, x, s, fvs), subst(t.R, x, s, fvs)}
	case LetPair:
		src := subst(t.Src, x, s, fvs)
		if t.X == x || t.Y == x {
			return LetPair{t.X, t.Y, src, t.Body}
		}
		bx, body := rename(t.X, x, fvs, t.Body)
		by, body := rename(t.Y, x, fvs, body)
		return LetPair{bx, by, src, subst(body, x, s, fvs)}
	case Abs:
		if t.X == x {
			return t
		}
		bx, body := rename(t.X, x, fvs, t.Body)
		return Abs{bx, subst(body, x, s, fvs)}
	case App:
		return App{subst(t.Fn, x, s, fvs), subst(t.Arg, x, s, fvs)}
	case Inl:
		return Inl{subst(t.T, x, s, fvs)}
	case Inr:
		return Inr{subst(t.T, x, s, fvs)}
	case Case:
		scrut := subst(t.Scrut, x, s, fvs)
		l := t.L
		bx := t.X
		if bx != x {
			bx, l = rename(bx, x, fvs, l)
			l = subst(l, x, s, fvs)
		}
		rt := t.R
		by := t.Y
		if by != x {
			by, rt = rename(by, x, fvs, rt)
			rt = subst(rt, x, s, fvs)
		}
		return Case{scrut, bx, l, by, rt}
	case Fst:
		return Fst{subst(t.T, x, s, fvs)}
	case Snd:
		return Snd{subst(t.T, x, s, fvs)}
	case Promote:
		return Promote{subst(t.T, x, s, fvs)}
	case Derelict:
		return Derelict{subst(t.T, x, s, fvs)}
	case Copy:
		src := subst(t.Src, x, s, fvs)
		if t.X == x || t.Y == x {
			return Copy{src, t.X, t.Y, t.Body}
		}
		bx, body := rename(t.X, x, fvs, t.Body)
		by, body := rename(t.Y, x, fvs, body)
		return Copy{src, bx, by, subst(body, x, s, fvs)}
	case Discard:
		return Discard{subst(t.Src, x, s, fvs), subst(t.Body, x, s, fvs)}
	case Abort:
		return Abort{subst(t.T, x, s, fvs)}
	}
	panic(fmt.Sprintf("term: unknown variant %T", t))
}
