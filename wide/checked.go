//
// checked.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
)

// CheckedAdd returns a+b and fails with word.ErrArithmeticOverflow
// when the exact sum does not fit the type.
func (e *Evaluator) CheckedAdd(a, b *Value) (*Value, error) {
	if err := typeCheck("CheckedAdd", a, b); err != nil {
		return nil, err
	}
	v, ov, err := e.addOverflow(a, b)
	return e.enforce("CheckedAdd", v, ov, err)
}

// CheckedAddLHS is CheckedAdd with a public left operand.
func (e *Evaluator) CheckedAddLHS(c *big.Int, b *Value) (*Value, error) {
	a, err := e.SetPublic(c, b.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedAddLHS: %w", err)
	}
	return e.CheckedAdd(a, b)
}

// CheckedAddRHS is CheckedAdd with a public right operand.
func (e *Evaluator) CheckedAddRHS(a *Value, c *big.Int) (*Value, error) {
	b, err := e.SetPublic(c, a.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedAddRHS: %w", err)
	}
	return e.CheckedAdd(a, b)
}

// CheckedAddWithOverflowBit returns the wrapped sum and a secret
// overflow flag. It never fails on overflow: disposition of the flag
// is left to the caller.
func (e *Evaluator) CheckedAddWithOverflowBit(a, b *Value) (
	*Value, Bool, error) {

	if err := typeCheck("CheckedAddWithOverflowBit", a, b); err != nil {
		return nil, Bool{}, err
	}
	v, ov, err := e.addOverflow(a, b)
	if err != nil {
		return nil, Bool{}, fmt.Errorf(
			"wide: CheckedAddWithOverflowBit: %w", err)
	}
	return v, Bool{w: ov}, nil
}

// CheckedSub returns a-b and fails with word.ErrArithmeticOverflow
// when the exact difference does not fit the type.
func (e *Evaluator) CheckedSub(a, b *Value) (*Value, error) {
	if err := typeCheck("CheckedSub", a, b); err != nil {
		return nil, err
	}
	v, ov, err := e.subOverflow(a, b)
	return e.enforce("CheckedSub", v, ov, err)
}

// CheckedSubLHS is CheckedSub with a public left operand.
func (e *Evaluator) CheckedSubLHS(c *big.Int, b *Value) (*Value, error) {
	a, err := e.SetPublic(c, b.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedSubLHS: %w", err)
	}
	return e.CheckedSub(a, b)
}

// CheckedSubRHS is CheckedSub with a public right operand.
func (e *Evaluator) CheckedSubRHS(a *Value, c *big.Int) (*Value, error) {
	b, err := e.SetPublic(c, a.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedSubRHS: %w", err)
	}
	return e.CheckedSub(a, b)
}

// CheckedSubWithOverflowBit returns the wrapped difference and a
// secret overflow flag. It never fails on overflow.
func (e *Evaluator) CheckedSubWithOverflowBit(a, b *Value) (
	*Value, Bool, error) {

	if err := typeCheck("CheckedSubWithOverflowBit", a, b); err != nil {
		return nil, Bool{}, err
	}
	v, ov, err := e.subOverflow(a, b)
	if err != nil {
		return nil, Bool{}, fmt.Errorf(
			"wide: CheckedSubWithOverflowBit: %w", err)
	}
	return v, Bool{w: ov}, nil
}

// CheckedMul returns a*b and fails with word.ErrArithmeticOverflow
// when the exact product does not fit the type.
func (e *Evaluator) CheckedMul(a, b *Value) (*Value, error) {
	if err := typeCheck("CheckedMul", a, b); err != nil {
		return nil, err
	}
	v, ov, err := e.mulOverflow(a, b)
	return e.enforce("CheckedMul", v, ov, err)
}

// CheckedMulLHS is CheckedMul with a public left operand.
func (e *Evaluator) CheckedMulLHS(c *big.Int, b *Value) (*Value, error) {
	a, err := e.SetPublic(c, b.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedMulLHS: %w", err)
	}
	return e.CheckedMul(a, b)
}

// CheckedMulRHS is CheckedMul with a public right operand.
func (e *Evaluator) CheckedMulRHS(a *Value, c *big.Int) (*Value, error) {
	b, err := e.SetPublic(c, a.typ)
	if err != nil {
		return nil, fmt.Errorf("wide: CheckedMulRHS: %w", err)
	}
	return e.CheckedMul(a, b)
}

// CheckedMulWithOverflowBit returns the wrapped product and a secret
// overflow flag. It never fails on overflow.
func (e *Evaluator) CheckedMulWithOverflowBit(a, b *Value) (
	*Value, Bool, error) {

	if err := typeCheck("CheckedMulWithOverflowBit", a, b); err != nil {
		return nil, Bool{}, err
	}
	v, ov, err := e.mulOverflow(a, b)
	if err != nil {
		return nil, Bool{}, fmt.Errorf(
			"wide: CheckedMulWithOverflowBit: %w", err)
	}
	return v, Bool{w: ov}, nil
}

// enforce decrypts the overflow flag and aborts the operation when
// it is set.
func (e *Evaluator) enforce(op string, v *Value, ov word.Word, err error) (
	*Value, error) {

	if err != nil {
		return nil, fmt.Errorf("wide: %s: %w", op, err)
	}
	flag, err := e.b.Decrypt(ov)
	if err != nil {
		return nil, fmt.Errorf("wide: %s: %w", op, err)
	}
	if flag != 0 {
		return nil, fmt.Errorf("wide: %s: %w", op, word.ErrArithmeticOverflow)
	}
	return v, nil
}

// addOverflow computes the wrapped sum and the overflow flag:
// unsigned overflow is the carry out of the top limb; signed
// overflow occurs when the operand signs agree and the result sign
// differs.
func (e *Evaluator) addOverflow(a, b *Value) (*Value, word.Word, error) {
	if !a.typ.Signed() && a.typ.Bits < types.WordBits {
		// The raw 64-bit sum of canonical operands cannot wrap: the
		// overflow is the sum exceeding the width mask.
		raw, err := e.b.Add(a.limbs[0], b.limbs[0])
		if err != nil {
			return nil, nil, err
		}
		m, err := e.public(a.typ.Mask())
		if err != nil {
			return nil, nil, err
		}
		ov, err := e.b.Gt(raw, m)
		if err != nil {
			return nil, nil, err
		}
		res, err := e.b.And(raw, m)
		if err != nil {
			return nil, nil, err
		}
		return newValue(a.typ, []word.Word{res}, 1), ov, nil
	}

	v, carry, err := e.add(a, b)
	if err != nil {
		return nil, nil, err
	}
	if !a.typ.Signed() {
		return v, carry, nil
	}
	ov, err := e.signedOverflow(a, b, v, false)
	if err != nil {
		return nil, nil, err
	}
	return v, ov, nil
}

// subOverflow computes the wrapped difference and the overflow flag:
// unsigned overflow is the final borrow; signed overflow occurs when
// the operand signs differ and the result sign differs from the
// minuend.
func (e *Evaluator) subOverflow(a, b *Value) (*Value, word.Word, error) {
	v, borrow, err := e.sub(a, b)
	if err != nil {
		return nil, nil, err
	}
	if !a.typ.Signed() {
		return v, borrow, nil
	}
	ov, err := e.signedOverflow(a, b, v, true)
	if err != nil {
		return nil, nil, err
	}
	return v, ov, nil
}

// signedOverflow derives the signed add/sub overflow flag from the
// operand and result sign bits.
func (e *Evaluator) signedOverflow(a, b, r *Value, sub bool) (
	word.Word, error) {

	sa, err := e.signBit(a)
	if err != nil {
		return nil, err
	}
	sb, err := e.signBit(b)
	if err != nil {
		return nil, err
	}
	sr, err := e.signBit(r)
	if err != nil {
		return nil, err
	}
	var signs word.Word
	if sub {
		signs, err = e.b.Ne(sa, sb)
	} else {
		signs, err = e.b.Eq(sa, sb)
	}
	if err != nil {
		return nil, err
	}
	ner, err := e.b.Ne(sr, sa)
	if err != nil {
		return nil, err
	}
	return e.b.And(signs, ner)
}

// mulOverflow computes the wrapped product and the overflow flag
// from the full double-width product: for unsigned types any
// nonzero bit above the width overflows; for signed types the high
// half must be the sign fill of the result.
func (e *Evaluator) mulOverflow(a, b *Value) (*Value, word.Word, error) {
	if a.typ.Signed() {
		return e.mulOverflowSigned(a, b)
	}
	n := a.typ.Limbs()

	full, err := e.mulLimbs(a.limbs, b.limbs, a.fit, b.fit, 2*n)
	if err != nil {
		return nil, nil, err
	}
	limbs := make([]word.Word, n)
	copy(limbs, full[:n])
	if err := e.maskTop(a.typ, limbs); err != nil {
		return nil, nil, err
	}
	v := newValue(a.typ, limbs, a.fit+b.fit)

	zero, err := e.zero()
	if err != nil {
		return nil, nil, err
	}
	var high word.Word
	if a.typ.Bits < types.WordBits {
		high, err = e.b.Shr(full[0], uint(a.typ.Bits))
		if err != nil {
			return nil, nil, err
		}
		high, err = e.b.Or(high, full[1])
		if err != nil {
			return nil, nil, err
		}
	} else {
		high = full[n]
		for i := n + 1; i < 2*n; i++ {
			high, err = e.b.Or(high, full[i])
			if err != nil {
				return nil, nil, err
			}
		}
	}
	ov, err := e.b.Ne(high, zero)
	if err != nil {
		return nil, nil, err
	}
	return v, ov, nil
}

// mulOverflowSigned sign-extends the operands to double width,
// multiplies, and checks that the high half is the sign fill of the
// low half. The double-width product of sign-extended operands is
// the exact signed product in two's complement.
func (e *Evaluator) mulOverflowSigned(a, b *Value) (*Value, word.Word, error) {
	if a.typ.Bits < types.WordBits {
		return e.mulOverflowSignedNarrow(a, b)
	}
	n := a.typ.Limbs()

	zero, err := e.zero()
	if err != nil {
		return nil, nil, err
	}
	ones, err := e.public(^uint64(0))
	if err != nil {
		return nil, nil, err
	}
	extend := func(v *Value) ([]word.Word, error) {
		s, err := e.signBit(v)
		if err != nil {
			return nil, err
		}
		fill, err := e.b.Mux(s, ones, zero)
		if err != nil {
			return nil, err
		}
		limbs := make([]word.Word, 0, 2*n)
		limbs = append(limbs, v.limbs...)
		for len(limbs) < 2*n {
			limbs = append(limbs, fill)
		}
		return limbs, nil
	}

	al, err := extend(a)
	if err != nil {
		return nil, nil, err
	}
	bl, err := extend(b)
	if err != nil {
		return nil, nil, err
	}
	full, err := e.mulLimbs(al, bl, 2*n, 2*n, 2*n)
	if err != nil {
		return nil, nil, err
	}
	limbs := make([]word.Word, n)
	copy(limbs, full[:n])
	v := newValue(a.typ, limbs, n)

	sr, err := e.signBit(v)
	if err != nil {
		return nil, nil, err
	}
	fill, err := e.b.Mux(sr, ones, zero)
	if err != nil {
		return nil, nil, err
	}
	var high word.Word
	for i := n; i < 2*n; i++ {
		t, err := e.b.Xor(full[i], fill)
		if err != nil {
			return nil, nil, err
		}
		if high == nil {
			high = t
			continue
		}
		high, err = e.b.Or(high, t)
		if err != nil {
			return nil, nil, err
		}
	}
	ov, err := e.b.Ne(high, zero)
	if err != nil {
		return nil, nil, err
	}
	return v, ov, nil
}

// mulOverflowSignedNarrow handles signed widths below 64 bits: the
// operands are sign-extended within the limb and one backend
// multiplication yields the exact signed product. The product is
// representable iff all bits from the sign bit up agree.
func (e *Evaluator) mulOverflowSignedNarrow(a, b *Value) (
	*Value, word.Word, error) {

	w := uint(a.typ.Bits)
	mask := a.typ.Mask()

	zero, err := e.zero()
	if err != nil {
		return nil, nil, err
	}
	highFill, err := e.public(^mask)
	if err != nil {
		return nil, nil, err
	}
	extend := func(v *Value) (word.Word, error) {
		s, err := e.signBit(v)
		if err != nil {
			return nil, err
		}
		fill, err := e.b.Mux(s, highFill, zero)
		if err != nil {
			return nil, err
		}
		return e.b.Or(v.limbs[0], fill)
	}

	ea, err := extend(a)
	if err != nil {
		return nil, nil, err
	}
	eb, err := extend(b)
	if err != nil {
		return nil, nil, err
	}
	raw, err := e.b.Mul(ea, eb)
	if err != nil {
		return nil, nil, err
	}

	m, err := e.public(mask)
	if err != nil {
		return nil, nil, err
	}
	res, err := e.b.And(raw, m)
	if err != nil {
		return nil, nil, err
	}
	v := newValue(a.typ, []word.Word{res}, 1)

	// Bits w-1..63 of the raw product must be all zero or all one.
	t, err := e.b.Shr(raw, w-1)
	if err != nil {
		return nil, nil, err
	}
	allOnes, err := e.public(^uint64(0) >> (w - 1))
	if err != nil {
		return nil, nil, err
	}
	nz, err := e.b.Ne(t, zero)
	if err != nil {
		return nil, nil, err
	}
	nf, err := e.b.Ne(t, allOnes)
	if err != nil {
		return nil, nil, err
	}
	ov, err := e.b.And(nz, nf)
	if err != nil {
		return nil, nil, err
	}
	return v, ov, nil
}
