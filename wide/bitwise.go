//
// bitwise.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"

	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
)

// And returns a&b.
func (e *Evaluator) And(a, b *Value) (*Value, error) {
	if err := typeCheck("And", a, b); err != nil {
		return nil, err
	}
	fit := a.fit
	if b.fit < fit {
		fit = b.fit
	}
	return e.bitwise("And", e.b.And, a, b, fit)
}

// Or returns a|b.
func (e *Evaluator) Or(a, b *Value) (*Value, error) {
	if err := typeCheck("Or", a, b); err != nil {
		return nil, err
	}
	fit := a.fit
	if b.fit > fit {
		fit = b.fit
	}
	return e.bitwise("Or", e.b.Or, a, b, fit)
}

// Xor returns a^b.
func (e *Evaluator) Xor(a, b *Value) (*Value, error) {
	if err := typeCheck("Xor", a, b); err != nil {
		return nil, err
	}
	fit := a.fit
	if b.fit > fit {
		fit = b.fit
	}
	return e.bitwise("Xor", e.b.Xor, a, b, fit)
}

// bitwise applies the limb-wise operation op. The limbs are
// independent: no carry or other state propagates between them.
func (e *Evaluator) bitwise(name string,
	op func(a, b word.Word) (word.Word, error), a, b *Value, fit int) (
	*Value, error) {

	n := a.typ.Limbs()
	limbs := make([]word.Word, n)
	for i := 0; i < n; i++ {
		w, err := op(a.limbs[i], b.limbs[i])
		if err != nil {
			return nil, fmt.Errorf("wide: %s: %w", name, err)
		}
		limbs[i] = w
	}
	return newValue(a.typ, limbs, fit), nil
}

// Shl returns a<<amount. The shift amount is public. Bits spill
// across adjacent limb boundaries; shifting by the width or more
// yields zero.
func (e *Evaluator) Shl(a *Value, amount uint) (*Value, error) {
	if !a.typ.Valid() {
		return nil, &word.TypeError{Op: "Shl", Type: a.typ}
	}
	if amount >= uint(a.typ.Bits) {
		return e.zeroValue(a.typ)
	}
	n := a.typ.Limbs()
	limbShift := int(amount / types.WordBits)
	bitShift := amount % types.WordBits

	var zero word.Word
	var err error
	if limbShift > 0 {
		zero, err = e.zero()
		if err != nil {
			return nil, fmt.Errorf("wide: Shl: %w", err)
		}
	}

	limbs := make([]word.Word, n)
	for i := n - 1; i >= 0; i-- {
		src := i - limbShift
		if src < 0 {
			limbs[i] = zero
			continue
		}
		if bitShift == 0 {
			limbs[i] = a.limbs[src]
			continue
		}
		t, err := e.b.Shl(a.limbs[src], bitShift)
		if err != nil {
			return nil, fmt.Errorf("wide: Shl: %w", err)
		}
		if src > 0 {
			spill, err := e.b.Shr(a.limbs[src-1], types.WordBits-bitShift)
			if err != nil {
				return nil, fmt.Errorf("wide: Shl: %w", err)
			}
			t, err = e.b.Or(t, spill)
			if err != nil {
				return nil, fmt.Errorf("wide: Shl: %w", err)
			}
		}
		limbs[i] = t
	}
	if err := e.maskTop(a.typ, limbs); err != nil {
		return nil, fmt.Errorf("wide: Shl: %w", err)
	}
	return newValue(a.typ, limbs, n), nil
}

// Shr returns a>>amount. The shift amount is public and the shift is
// logical for signed and unsigned types alike; shifting by the width
// or more yields zero.
func (e *Evaluator) Shr(a *Value, amount uint) (*Value, error) {
	if !a.typ.Valid() {
		return nil, &word.TypeError{Op: "Shr", Type: a.typ}
	}
	if amount >= uint(a.typ.Bits) {
		return e.zeroValue(a.typ)
	}
	n := a.typ.Limbs()
	limbShift := int(amount / types.WordBits)
	bitShift := amount % types.WordBits

	var zero word.Word
	var err error
	if limbShift > 0 {
		zero, err = e.zero()
		if err != nil {
			return nil, fmt.Errorf("wide: Shr: %w", err)
		}
	}

	limbs := make([]word.Word, n)
	for i := 0; i < n; i++ {
		src := i + limbShift
		if src >= n {
			limbs[i] = zero
			continue
		}
		if bitShift == 0 {
			limbs[i] = a.limbs[src]
			continue
		}
		t, err := e.b.Shr(a.limbs[src], bitShift)
		if err != nil {
			return nil, fmt.Errorf("wide: Shr: %w", err)
		}
		if src+1 < n {
			spill, err := e.b.Shl(a.limbs[src+1], types.WordBits-bitShift)
			if err != nil {
				return nil, fmt.Errorf("wide: Shr: %w", err)
			}
			t, err = e.b.Or(t, spill)
			if err != nil {
				return nil, fmt.Errorf("wide: Shr: %w", err)
			}
		}
		limbs[i] = t
	}
	return newValue(a.typ, limbs, n), nil
}

// zeroValue injects the zero value of the type.
func (e *Evaluator) zeroValue(typ types.Info) (*Value, error) {
	zero, err := e.zero()
	if err != nil {
		return nil, err
	}
	n := typ.Limbs()
	limbs := make([]word.Word, n)
	for i := 0; i < n; i++ {
		limbs[i] = zero
	}
	return newValue(typ, limbs, 1), nil
}
