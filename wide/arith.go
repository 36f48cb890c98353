//
// arith.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/mpint/word"
)

// Add returns a+b. The result wraps modulo 2^w.
func (e *Evaluator) Add(a, b *Value) (*Value, error) {
	if err := typeCheck("Add", a, b); err != nil {
		return nil, err
	}
	v, _, err := e.add(a, b)
	if err != nil {
		return nil, fmt.Errorf("wide: Add: %w", err)
	}
	return v, nil
}

// add computes the wrapped sum and the final carry word. When both
// operands fit in fewer limbs than the width, the carry chain runs
// only over those limbs and the carry becomes the next limb; the
// returned carry is then the zero word since the sum cannot exceed
// the width.
func (e *Evaluator) add(a, b *Value) (*Value, word.Word, error) {
	n := a.typ.Limbs()
	k := effLimbs(a, b)

	sum, carry, err := e.addLimbs(a.limbs[:k], b.limbs[:k])
	if err != nil {
		return nil, nil, err
	}
	fit := k
	if k < n {
		limbs := make([]word.Word, 0, n)
		limbs = append(limbs, sum...)
		limbs = append(limbs, carry)
		fit = k + 1

		zero, err := e.zero()
		if err != nil {
			return nil, nil, err
		}
		for len(limbs) < n {
			limbs = append(limbs, zero)
		}
		return newValue(a.typ, limbs, fit), zero, nil
	}
	if err := e.maskTop(a.typ, sum); err != nil {
		return nil, nil, err
	}
	return newValue(a.typ, sum, n), carry, nil
}

// addLimbs ripples the carry chain least-significant-first: each
// limb's carry input is the previous limb's carry output, so the
// backend calls along the chain are strictly ordered.
func (e *Evaluator) addLimbs(a, b []word.Word) ([]word.Word, word.Word, error) {
	sum := make([]word.Word, len(a))
	var carry word.Word

	for i := 0; i < len(a); i++ {
		s, err := e.b.Add(a[i], b[i])
		if err != nil {
			return nil, nil, err
		}
		c1, err := e.b.Lt(s, a[i])
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			sum[i] = s
			carry = c1
			continue
		}
		s2, err := e.b.Add(s, carry)
		if err != nil {
			return nil, nil, err
		}
		c2, err := e.b.Lt(s2, s)
		if err != nil {
			return nil, nil, err
		}
		carry, err = e.b.Or(c1, c2)
		if err != nil {
			return nil, nil, err
		}
		sum[i] = s2
	}
	return sum, carry, nil
}

// Sub returns a-b. The result wraps modulo 2^w. For signed types the
// subtraction is a+(-b): two's-complement negation followed by
// addition, which is bit-identical to the unsigned borrow chain.
func (e *Evaluator) Sub(a, b *Value) (*Value, error) {
	if err := typeCheck("Sub", a, b); err != nil {
		return nil, err
	}
	if a.typ.Signed() {
		nb, err := e.Neg(b)
		if err != nil {
			return nil, fmt.Errorf("wide: Sub: %w", err)
		}
		v, _, err := e.add(a, nb)
		if err != nil {
			return nil, fmt.Errorf("wide: Sub: %w", err)
		}
		return v, nil
	}
	v, _, err := e.sub(a, b)
	if err != nil {
		return nil, fmt.Errorf("wide: Sub: %w", err)
	}
	return v, nil
}

// sub computes the wrapped difference and the final borrow word.
func (e *Evaluator) sub(a, b *Value) (*Value, word.Word, error) {
	d, borrow, err := e.subLimbs(a.limbs, b.limbs)
	if err != nil {
		return nil, nil, err
	}
	if err := e.maskTop(a.typ, d); err != nil {
		return nil, nil, err
	}
	return newValue(a.typ, d, a.typ.Limbs()), borrow, nil
}

// subLimbs ripples the borrow chain least-significant-first.
func (e *Evaluator) subLimbs(a, b []word.Word) ([]word.Word, word.Word, error) {
	d := make([]word.Word, len(a))
	var borrow word.Word

	for i := 0; i < len(a); i++ {
		di, err := e.b.Sub(a[i], b[i])
		if err != nil {
			return nil, nil, err
		}
		b1, err := e.b.Lt(a[i], b[i])
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			d[i] = di
			borrow = b1
			continue
		}
		b2, err := e.b.Lt(di, borrow)
		if err != nil {
			return nil, nil, err
		}
		d2, err := e.b.Sub(di, borrow)
		if err != nil {
			return nil, nil, err
		}
		borrow, err = e.b.Or(b1, b2)
		if err != nil {
			return nil, nil, err
		}
		d[i] = d2
	}
	return d, borrow, nil
}

// Neg returns the two's complement -a: bitwise complement within the
// width plus one.
func (e *Evaluator) Neg(a *Value) (*Value, error) {
	if !a.typ.Valid() {
		return nil, &word.TypeError{Op: "Neg", Type: a.typ}
	}
	n := a.typ.Limbs()

	not := make([]word.Word, n)
	for i := 0; i < n; i++ {
		var ones uint64
		if i == n-1 {
			ones = a.typ.Mask()
		} else {
			ones = ^uint64(0)
		}
		m, err := e.public(ones)
		if err != nil {
			return nil, fmt.Errorf("wide: Neg: %w", err)
		}
		not[i], err = e.b.Xor(a.limbs[i], m)
		if err != nil {
			return nil, fmt.Errorf("wide: Neg: %w", err)
		}
	}

	one, err := e.public(1)
	if err != nil {
		return nil, fmt.Errorf("wide: Neg: %w", err)
	}
	inc := make([]word.Word, n)
	inc[0] = one
	if n > 1 {
		zero, err := e.zero()
		if err != nil {
			return nil, fmt.Errorf("wide: Neg: %w", err)
		}
		for i := 1; i < n; i++ {
			inc[i] = zero
		}
	}

	sum, _, err := e.addLimbs(not, inc)
	if err != nil {
		return nil, fmt.Errorf("wide: Neg: %w", err)
	}
	if err := e.maskTop(a.typ, sum); err != nil {
		return nil, fmt.Errorf("wide: Neg: %w", err)
	}
	return newValue(a.typ, sum, n), nil
}

// Mul returns a*b with both operands secret. The result wraps modulo
// 2^w exactly like fixed-width multiplication.
func (e *Evaluator) Mul(a, b *Value) (*Value, error) {
	return e.mul(word.ModeSecret, a, b)
}

// MulLHS returns c*b where the left operand is a public constant
// injected at the call site. The numeric result is identical to Mul.
func (e *Evaluator) MulLHS(c *big.Int, b *Value) (*Value, error) {
	a, err := e.SetPublic(c, b.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: MulLHS: %w", err)
	}
	return e.mul(word.ModePublicLHS, a, b)
}

// MulRHS returns a*c where the right operand is a public constant
// injected at the call site. The numeric result is identical to Mul.
func (e *Evaluator) MulRHS(a *Value, c *big.Int) (*Value, error) {
	b, err := e.SetPublic(c, a.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: MulRHS: %w", err)
	}
	return e.mul(word.ModePublicRHS, a, b)
}

func (e *Evaluator) mul(mode word.Mode, a, b *Value) (*Value, error) {
	if err := typeCheck("Mul", a, b); err != nil {
		return nil, err
	}
	n := a.typ.Limbs()

	limbs, err := e.mulLimbs(a.limbs, b.limbs, a.fit, b.fit, n)
	if err != nil {
		return nil, fmt.Errorf("wide: Mul[%v]: %w", mode, err)
	}
	if err := e.maskTop(a.typ, limbs); err != nil {
		return nil, fmt.Errorf("wide: Mul[%v]: %w", mode, err)
	}
	return newValue(a.typ, limbs, a.fit+b.fit), nil
}

// mulLimbs computes the schoolbook cross-limb product of a and b,
// truncated to out limbs. Partial products of limbs beyond the
// operands' fit are skipped: those limbs are the zero word, so the
// result is indistinguishable from the full computation.
func (e *Evaluator) mulLimbs(a, b []word.Word, afit, bfit, out int) (
	[]word.Word, error) {

	zero, err := e.zero()
	if err != nil {
		return nil, err
	}
	r := make([]word.Word, out)
	for i := 0; i < out; i++ {
		r[i] = zero
	}

	for i := 0; i < afit && i < out; i++ {
		for j := 0; j < bfit; j++ {
			pos := i + j
			if pos >= out {
				break
			}
			if pos == out-1 {
				// Top column: the high half and all carries fall
				// beyond the width.
				lo, err := e.b.Mul(a[i], b[j])
				if err != nil {
					return nil, err
				}
				r[pos], err = e.b.Add(r[pos], lo)
				if err != nil {
					return nil, err
				}
				continue
			}
			lo, hi, err := e.mulWide(a[i], b[j])
			if err != nil {
				return nil, err
			}
			if err := e.accumulate(r, pos, lo); err != nil {
				return nil, err
			}
			if err := e.accumulate(r, pos+1, hi); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// accumulate adds w into the accumulator at limb position pos,
// rippling the carry towards the most significant limb. The carry
// out of the last limb is discarded.
func (e *Evaluator) accumulate(r []word.Word, pos int, w word.Word) error {
	c := w
	for k := pos; k < len(r); k++ {
		s, err := e.b.Add(r[k], c)
		if err != nil {
			return err
		}
		if k == len(r)-1 {
			r[k] = s
			break
		}
		cy, err := e.b.Lt(s, r[k])
		if err != nil {
			return err
		}
		r[k] = s
		c = cy
	}
	return nil
}

// mulWide computes the full 128-bit product of two secret words from
// four 32-bit half products. The splits and recombinations use only
// public shift amounts and masks.
func (e *Evaluator) mulWide(x, y word.Word) (lo, hi word.Word, err error) {
	const half = 32

	m32, err := e.public(0xffffffff)
	if err != nil {
		return nil, nil, err
	}
	xl, err := e.b.And(x, m32)
	if err != nil {
		return nil, nil, err
	}
	xh, err := e.b.Shr(x, half)
	if err != nil {
		return nil, nil, err
	}
	yl, err := e.b.And(y, m32)
	if err != nil {
		return nil, nil, err
	}
	yh, err := e.b.Shr(y, half)
	if err != nil {
		return nil, nil, err
	}

	ll, err := e.b.Mul(xl, yl)
	if err != nil {
		return nil, nil, err
	}
	lh, err := e.b.Mul(xl, yh)
	if err != nil {
		return nil, nil, err
	}
	hl, err := e.b.Mul(xh, yl)
	if err != nil {
		return nil, nil, err
	}
	hh, err := e.b.Mul(xh, yh)
	if err != nil {
		return nil, nil, err
	}

	// cross = ll>>32 + lh&m32 + hl&m32; at most 34 bits, no wrap.
	cross, err := e.b.Shr(ll, half)
	if err != nil {
		return nil, nil, err
	}
	t, err := e.b.And(lh, m32)
	if err != nil {
		return nil, nil, err
	}
	cross, err = e.b.Add(cross, t)
	if err != nil {
		return nil, nil, err
	}
	t, err = e.b.And(hl, m32)
	if err != nil {
		return nil, nil, err
	}
	cross, err = e.b.Add(cross, t)
	if err != nil {
		return nil, nil, err
	}

	t, err = e.b.And(ll, m32)
	if err != nil {
		return nil, nil, err
	}
	ch, err := e.b.Shl(cross, half)
	if err != nil {
		return nil, nil, err
	}
	lo, err = e.b.Or(ch, t)
	if err != nil {
		return nil, nil, err
	}

	hi = hh
	for _, w := range []word.Word{lh, hl, cross} {
		t, err = e.b.Shr(w, half)
		if err != nil {
			return nil, nil, err
		}
		hi, err = e.b.Add(hi, t)
		if err != nil {
			return nil, nil, err
		}
	}
	return lo, hi, nil
}
