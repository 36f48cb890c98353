//
// word.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package word defines the 64-bit secret word primitive of the mpint
// system: the opaque Word handle, the Backend interface implemented
// by a secure computation backend, the durable ciphertext forms, and
// the error taxonomy shared by all mpint packages.
package word

import (
	"errors"

	"github.com/markkurossi/mpint/types"
)

// Word is an opaque handle to one 64-bit secret value held by a
// backend. The concrete type belongs to the backend; this package
// and its consumers never inspect it. Words are immutable: every
// backend operation consumes words and produces a new one.
type Word interface{}

// Errors returned by backend operations and by wide-value
// compositions built on them.
var (
	// ErrInvalidProof is returned when an input ciphertext or its
	// correctness proof fails validation. No partial value is ever
	// produced.
	ErrInvalidProof = errors.New("word: invalid input proof")

	// ErrDivisionByZero is returned by the 64-bit division and
	// remainder primitives when the divisor is a secret zero.
	ErrDivisionByZero = errors.New("word: division by zero")

	// ErrArithmeticOverflow is returned by the hard-fail checked
	// operations when the computed overflow flag is set.
	ErrArithmeticOverflow = errors.New("word: arithmetic overflow")
)

// Mode selects the calling convention of an arithmetic operation:
// which operands are secret words and which are public constants
// injected at the call site. The mode never changes the numeric
// result, only the shape and cost of the backend calls.
type Mode int8

// Calling convention modes.
const (
	// ModeSecret computes with both operands secret.
	ModeSecret Mode = iota

	// ModePublicLHS treats the left operand as a public constant.
	ModePublicLHS

	// ModePublicRHS treats the right operand as a public constant.
	ModePublicRHS
)

var modeNames = map[Mode]string{
	ModeSecret:    "secret",
	ModePublicLHS: "public-lhs",
	ModePublicRHS: "public-rhs",
}

func (m Mode) String() string {
	name, ok := modeNames[m]
	if ok {
		return name
	}
	return "unknown"
}

// Backend provides the primitive 64-bit secret word operations. All
// operations are synchronous and stateless from the caller's point
// of view; any returned error is fatal to the enclosing composed
// operation. Comparison results and mux conditions are secret words
// holding 0 or 1.
type Backend interface {
	// Add returns a+b mod 2^64.
	Add(a, b Word) (Word, error)

	// Sub returns a-b mod 2^64.
	Sub(a, b Word) (Word, error)

	// Mul returns a*b mod 2^64.
	Mul(a, b Word) (Word, error)

	// Div returns a/b. A secret zero divisor fails with
	// ErrDivisionByZero.
	Div(a, b Word) (Word, error)

	// Rem returns a%b. A secret zero divisor fails with
	// ErrDivisionByZero.
	Rem(a, b Word) (Word, error)

	// And returns a&b.
	And(a, b Word) (Word, error)

	// Or returns a|b.
	Or(a, b Word) (Word, error)

	// Xor returns a^b.
	Xor(a, b Word) (Word, error)

	// Shl returns a<<amount. The shift amount is public and must be
	// less than 64.
	Shl(a Word, amount uint) (Word, error)

	// Shr returns a>>amount. The shift amount is public and must be
	// less than 64.
	Shr(a Word, amount uint) (Word, error)

	// Eq returns a==b as a secret bit.
	Eq(a, b Word) (Word, error)

	// Ne returns a!=b as a secret bit.
	Ne(a, b Word) (Word, error)

	// Lt returns a<b as a secret bit.
	Lt(a, b Word) (Word, error)

	// Le returns a<=b as a secret bit.
	Le(a, b Word) (Word, error)

	// Gt returns a>b as a secret bit.
	Gt(a, b Word) (Word, error)

	// Ge returns a>=b as a secret bit.
	Ge(a, b Word) (Word, error)

	// Mux returns a if the secret bit cond is nonzero and b
	// otherwise. The cost of the call does not depend on the
	// selected branch.
	Mux(cond, a, b Word) (Word, error)

	// Decrypt reveals the plaintext value of the word.
	Decrypt(a Word) (uint64, error)

	// SetPublic injects the public value v as a secret word.
	SetPublic(v uint64) (Word, error)

	// Random returns a secret word uniformly distributed over
	// [0, 2^bits). The bit count is public and must be at most 64.
	Random(bits uint) (Word, error)

	// ValidateCiphertext validates an externally supplied encrypted
	// word and its correctness proof. Validation failure is
	// ErrInvalidProof.
	ValidateCiphertext(proof []byte) (Word, error)

	// Offboard converts the word into its durable encrypted form
	// under the network key.
	Offboard(a Word) ([]byte, error)

	// Onboard restores a word from its durable encrypted form.
	Onboard(data []byte) (Word, error)

	// OffboardToUser re-encrypts the word to the recipient's
	// individual key. The network form of the word is not affected.
	OffboardToUser(a Word, recipient []byte) ([]byte, error)
}

// TypeError reports an operation on incompatible or unsupported
// types.
type TypeError struct {
	Op   string
	Type types.Info
}

func (e *TypeError) Error() string {
	return "word: " + e.Op + ": invalid type " + e.Type.String()
}
