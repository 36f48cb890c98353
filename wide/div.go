//
// div.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/mpint/logger"
	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
)

// Div returns the quotient a/b, truncated towards zero. The
// algorithm depends on the width:
//
//   - widths up to 64 bits use the backend division primitive; a
//     secret zero divisor fails with word.ErrDivisionByZero.
//   - 128-bit division delegates to the 64-bit primitive when both
//     operands provably fit in their low limb, and otherwise falls
//     back to divRevealed; in the fallback a zero divisor yields a
//     zero quotient instead of failing.
//   - 256-bit division delegates the low 128-bit halves of both
//     operands to the 128-bit routine; the high half of the quotient
//     is unconditionally zero. This is exact only when the true
//     quotient fits in 128 bits.
func (e *Evaluator) Div(a, b *Value) (*Value, error) {
	if err := typeCheck("Div", a, b); err != nil {
		return nil, err
	}
	v, err := e.divRem(a, b, false)
	if err != nil {
		return nil, fmt.Errorf("wide: Div: %w", err)
	}
	return v, nil
}

// Rem returns the remainder a%b with the sign of the dividend. The
// width-dependent algorithm and its divide-by-zero behavior match
// Div.
func (e *Evaluator) Rem(a, b *Value) (*Value, error) {
	if err := typeCheck("Rem", a, b); err != nil {
		return nil, err
	}
	v, err := e.divRem(a, b, true)
	if err != nil {
		return nil, fmt.Errorf("wide: Rem: %w", err)
	}
	return v, nil
}

func (e *Evaluator) divRem(a, b *Value, rem bool) (*Value, error) {
	switch a.typ.Limbs() {
	case 1:
		return e.divRem64(a, b, rem)

	case 2:
		return e.divRem128(a, b, rem)

	default:
		return e.divRem256(a, b, rem)
	}
}

// divRem64 divides one-limb values with a single backend call. For
// signed types the operands are reduced to their magnitudes first
// and the result sign is restored branchlessly.
func (e *Evaluator) divRem64(a, b *Value, rem bool) (*Value, error) {
	prim := e.b.Div
	if rem {
		prim = e.b.Rem
	}
	if !a.typ.Signed() {
		q, err := prim(a.limbs[0], b.limbs[0])
		if err != nil {
			return nil, err
		}
		return newValue(a.typ, []word.Word{q}, 1), nil
	}

	sa, err := e.signBit(a)
	if err != nil {
		return nil, err
	}
	sb, err := e.signBit(b)
	if err != nil {
		return nil, err
	}
	absA, err := e.abs(a, sa)
	if err != nil {
		return nil, err
	}
	absB, err := e.abs(b, sb)
	if err != nil {
		return nil, err
	}
	q0, err := prim(absA, absB)
	if err != nil {
		return nil, err
	}

	// Quotient sign is the XOR of the operand signs; remainder
	// follows the dividend (truncated division).
	var sign word.Word
	if rem {
		sign = sa
	} else {
		sign, err = e.b.Xor(sa, sb)
		if err != nil {
			return nil, err
		}
	}
	qv := newValue(a.typ, []word.Word{q0}, 1)
	nq, err := e.Neg(qv)
	if err != nil {
		return nil, err
	}
	q, err := e.b.Mux(sign, nq.limbs[0], q0)
	if err != nil {
		return nil, err
	}
	return newValue(a.typ, []word.Word{q}, 1), nil
}

// abs returns the magnitude of the one-limb value v whose sign bit
// is the secret bit s.
func (e *Evaluator) abs(v *Value, s word.Word) (word.Word, error) {
	nv, err := e.Neg(v)
	if err != nil {
		return nil, err
	}
	return e.b.Mux(s, nv.limbs[0], v.limbs[0])
}

// divRem128 implements the three-case 128-bit division. When both
// operands provably fit in their low limb they are non-negative and
// one unsigned backend call suffices; otherwise the computation
// falls back to the revealed variant.
func (e *Evaluator) divRem128(a, b *Value, rem bool) (*Value, error) {
	if a.fit <= 1 && b.fit <= 1 {
		prim := e.b.Div
		if rem {
			prim = e.b.Rem
		}
		q, err := prim(a.limbs[0], b.limbs[0])
		if err != nil {
			return nil, err
		}
		zero, err := e.zero()
		if err != nil {
			return nil, err
		}
		return newValue(a.typ, []word.Word{q, zero}, 1), nil
	}
	return e.divRemRevealed(a, b, rem)
}

// divRem256 splits the operands into 128-bit halves and delegates
// the low halves to the 128-bit routine. The high half of the result
// is unconditionally zero: exact only when the true quotient fits in
// 128 bits.
func (e *Evaluator) divRem256(a, b *Value, rem bool) (*Value, error) {
	half := types.Info{Type: a.typ.Type, Bits: 128}
	al := newValue(half, a.limbs[:2], a.fit)
	bl := newValue(half, b.limbs[:2], b.fit)

	q, err := e.divRem128(al, bl, rem)
	if err != nil {
		return nil, err
	}
	zero, err := e.zero()
	if err != nil {
		return nil, err
	}
	limbs := []word.Word{q.limbs[0], q.limbs[1], zero, zero}
	return newValue(a.typ, limbs, 2), nil
}

// divRemRevealed is the reduced-privacy division fallback: both
// operands are decrypted, the result is computed in the clear, and
// only the result is re-encrypted. Unlike the 64-bit primitive, a
// zero divisor yields a zero result here instead of failing.
func (e *Evaluator) divRemRevealed(a, b *Value, rem bool) (*Value, error) {
	log := logger.Logger()
	log.Debug().
		Str("type", a.typ.String()).
		Bool("rem", rem).
		Msg("division falls back to revealed operands")

	av, err := e.Decrypt(a)
	if err != nil {
		return nil, err
	}
	bv, err := e.Decrypt(b)
	if err != nil {
		return nil, err
	}
	r := new(big.Int)
	if bv.Sign() != 0 {
		if rem {
			r.Rem(av, bv)
		} else {
			r.Quo(av, bv)
		}
	}
	return e.SetPublic(r, a.typ)
}
