//
// wide.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package wide implements fixed-width integer arithmetic over the
// 64-bit secret words of a word.Backend. A value of width w is an
// ordered little-endian vector of ceil(w/64) limbs; operations
// compose backend calls with carry, borrow, and sign propagation so
// that every result is bit-exact with two's-complement modulo-2^w
// arithmetic. Values are immutable and freely shareable; only the
// durable ciphertext forms of package word survive beyond the
// caller's computation.
package wide

import (
	"errors"

	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
)

// ErrTypeMismatch reports a binary operation on operands of
// different types.
var ErrTypeMismatch = errors.New("wide: type mismatch")

// Evaluator composes fixed-width operations from the primitives of
// an injected backend. It holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	b word.Backend
}

// New creates an evaluator computing with the backend b.
func New(b word.Backend) *Evaluator {
	return &Evaluator{
		b: b,
	}
}

// Value is a fixed-width secret integer: a little-endian vector of
// 64-bit secret limbs tagged with its type. Values are immutable.
// For widths below 64 bits the limb is kept canonical: its bits at
// and above the width are zero.
type Value struct {
	typ   types.Info
	limbs []word.Word

	// fit is the number of low limbs that may be nonzero. It is
	// public metadata derived from how the value was constructed,
	// never from secret data; limbs at fit and above provably hold
	// zero.
	fit int
}

// Type returns the type of the value.
func (v *Value) Type() types.Info {
	return v.typ
}

func (v *Value) String() string {
	return v.typ.ShortString()
}

// Bool is a secret boolean: a secret word holding 0 or 1. Bools are
// produced by comparisons and overflow reporting and consumed by
// Select.
type Bool struct {
	w word.Word
}

func newValue(typ types.Info, limbs []word.Word, fit int) *Value {
	n := typ.Limbs()
	if fit < 1 {
		fit = 1
	}
	if fit > n {
		fit = n
	}
	return &Value{
		typ:   typ,
		limbs: limbs,
		fit:   fit,
	}
}

func typeCheck(op string, a, b *Value) error {
	if !a.typ.Valid() {
		return &word.TypeError{Op: op, Type: a.typ}
	}
	if !a.typ.Equal(b.typ) {
		return ErrTypeMismatch
	}
	return nil
}

// effLimbs returns the number of limbs an operation must process:
// the maximum fit of the operands. Limbs above it are the zero word
// in both operands.
func effLimbs(a, b *Value) int {
	k := a.fit
	if b.fit > k {
		k = b.fit
	}
	n := a.typ.Limbs()
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

func (e *Evaluator) zero() (word.Word, error) {
	return e.b.SetPublic(0)
}

func (e *Evaluator) public(v uint64) (word.Word, error) {
	return e.b.SetPublic(v)
}

// maskTop masks the most significant limb to the type width. It is a
// no-op for widths of 64 bits and above; for narrower widths it
// restores the canonical form after an operation that can set bits
// above the width.
func (e *Evaluator) maskTop(typ types.Info, limbs []word.Word) error {
	if typ.Bits >= types.WordBits {
		return nil
	}
	m, err := e.public(typ.Mask())
	if err != nil {
		return err
	}
	masked, err := e.b.And(limbs[0], m)
	if err != nil {
		return err
	}
	limbs[0] = masked
	return nil
}

// signBit extracts the sign bit of the value as a secret 0/1 word.
func (e *Evaluator) signBit(v *Value) (word.Word, error) {
	top := v.limbs[v.typ.Limbs()-1]
	return e.b.Shr(top, v.typ.SignBit())
}

// boolNot complements a secret 0/1 word.
func (e *Evaluator) boolNot(w word.Word) (word.Word, error) {
	one, err := e.public(1)
	if err != nil {
		return nil, err
	}
	return e.b.Xor(w, one)
}
