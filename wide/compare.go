//
// compare.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"

	"github.com/markkurossi/mpint/word"
)

// Eq returns a==b.
func (e *Evaluator) Eq(a, b *Value) (Bool, error) {
	if err := typeCheck("Eq", a, b); err != nil {
		return Bool{}, err
	}
	w, err := e.eqLimbs(a, b)
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Eq: %w", err)
	}
	return Bool{w: w}, nil
}

// Ne returns a!=b.
func (e *Evaluator) Ne(a, b *Value) (Bool, error) {
	if err := typeCheck("Ne", a, b); err != nil {
		return Bool{}, err
	}
	k := effLimbs(a, b)
	acc, err := e.b.Ne(a.limbs[0], b.limbs[0])
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Ne: %w", err)
	}
	for i := 1; i < k; i++ {
		t, err := e.b.Ne(a.limbs[i], b.limbs[i])
		if err != nil {
			return Bool{}, fmt.Errorf("wide: Ne: %w", err)
		}
		acc, err = e.b.Or(acc, t)
		if err != nil {
			return Bool{}, fmt.Errorf("wide: Ne: %w", err)
		}
	}
	return Bool{w: acc}, nil
}

// eqLimbs collapses per-limb equality with AND. Limbs beyond both
// operands' fit are the zero word and compare equal, so the fold
// runs only over the effective limbs.
func (e *Evaluator) eqLimbs(a, b *Value) (word.Word, error) {
	k := effLimbs(a, b)
	acc, err := e.b.Eq(a.limbs[0], b.limbs[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < k; i++ {
		t, err := e.b.Eq(a.limbs[i], b.limbs[i])
		if err != nil {
			return nil, err
		}
		acc, err = e.b.And(acc, t)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Lt returns a<b: unsigned magnitude order for unsigned types,
// two's-complement order for signed types.
func (e *Evaluator) Lt(a, b *Value) (Bool, error) {
	if err := typeCheck("Lt", a, b); err != nil {
		return Bool{}, err
	}
	w, err := e.lt(a, b)
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Lt: %w", err)
	}
	return Bool{w: w}, nil
}

// Le returns a<=b.
func (e *Evaluator) Le(a, b *Value) (Bool, error) {
	if err := typeCheck("Le", a, b); err != nil {
		return Bool{}, err
	}
	w, err := e.le(a, b)
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Le: %w", err)
	}
	return Bool{w: w}, nil
}

// Gt returns a>b.
func (e *Evaluator) Gt(a, b *Value) (Bool, error) {
	if err := typeCheck("Gt", a, b); err != nil {
		return Bool{}, err
	}
	w, err := e.lt(b, a)
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Gt: %w", err)
	}
	return Bool{w: w}, nil
}

// Ge returns a>=b.
func (e *Evaluator) Ge(a, b *Value) (Bool, error) {
	if err := typeCheck("Ge", a, b); err != nil {
		return Bool{}, err
	}
	w, err := e.ge(a, b)
	if err != nil {
		return Bool{}, fmt.Errorf("wide: Ge: %w", err)
	}
	return Bool{w: w}, nil
}

func (e *Evaluator) le(a, b *Value) (word.Word, error) {
	w, err := e.lt(b, a)
	if err != nil {
		return nil, err
	}
	return e.boolNot(w)
}

func (e *Evaluator) ge(a, b *Value) (word.Word, error) {
	w, err := e.lt(a, b)
	if err != nil {
		return nil, err
	}
	return e.boolNot(w)
}

// lt computes a<b as a secret bit. Signed comparison resolves
// differing sign bits first: a negative operand orders below a
// non-negative one; equal signs fall back to the unsigned limb
// order, which agrees with two's-complement order within one sign.
// When both operands provably fit below the top limb they are
// non-negative and the unsigned fold suffices.
func (e *Evaluator) lt(a, b *Value) (word.Word, error) {
	n := a.typ.Limbs()
	if !a.typ.Signed() || (a.fit < n && b.fit < n) {
		k := effLimbs(a, b)
		return e.ltLimbs(a.limbs[:k], b.limbs[:k])
	}

	sa, err := e.signBit(a)
	if err != nil {
		return nil, err
	}
	sb, err := e.signBit(b)
	if err != nil {
		return nil, err
	}
	nsb, err := e.boolNot(sb)
	if err != nil {
		return nil, err
	}
	neg, err := e.b.And(sa, nsb)
	if err != nil {
		return nil, err
	}
	eqs, err := e.b.Eq(sa, sb)
	if err != nil {
		return nil, err
	}
	du, err := e.ltLimbs(a.limbs, b.limbs)
	if err != nil {
		return nil, err
	}
	same, err := e.b.And(eqs, du)
	if err != nil {
		return nil, err
	}
	return e.b.Or(neg, same)
}

// ltLimbs computes the unsigned a<b over the limb vectors, folding
// from the most significant limb down: a lower limb decides only
// when all higher limbs are equal.
func (e *Evaluator) ltLimbs(a, b []word.Word) (word.Word, error) {
	k := len(a)
	res, err := e.b.Lt(a[k-1], b[k-1])
	if err != nil {
		return nil, err
	}
	if k == 1 {
		return res, nil
	}
	eqAcc, err := e.b.Eq(a[k-1], b[k-1])
	if err != nil {
		return nil, err
	}
	for i := k - 2; i >= 0; i-- {
		lti, err := e.b.Lt(a[i], b[i])
		if err != nil {
			return nil, err
		}
		t, err := e.b.And(eqAcc, lti)
		if err != nil {
			return nil, err
		}
		res, err = e.b.Or(res, t)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			eqi, err := e.b.Eq(a[i], b[i])
			if err != nil {
				return nil, err
			}
			eqAcc, err = e.b.And(eqAcc, eqi)
			if err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Min returns the smaller of a and b as mux(a<=b, a, b).
func (e *Evaluator) Min(a, b *Value) (*Value, error) {
	cond, err := e.Le(a, b)
	if err != nil {
		return nil, err
	}
	return e.Select(cond, a, b)
}

// Max returns the larger of a and b as mux(a>=b, a, b).
func (e *Evaluator) Max(a, b *Value) (*Value, error) {
	cond, err := e.Ge(a, b)
	if err != nil {
		return nil, err
	}
	return e.Select(cond, a, b)
}
