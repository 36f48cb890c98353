//
// sim.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package sim implements a plaintext simulator of the word.Backend
// interface. The simulator keeps the secret values of its words in
// process memory behind opaque handles, seals durable ciphertexts
// with real authenticated encryption, and counts backend calls per
// primitive. It is the test double and reference backend of the
// mpint system; it provides no actual multi-party security.
package sim

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/markkurossi/mpint/env"
	"github.com/markkurossi/mpint/logger"
	"github.com/markkurossi/mpint/word"
	"github.com/rs/zerolog"
)

// Errors returned by the simulator.
var (
	ErrForeignWord = errors.New("sim: word from another backend")
	ErrUnknownWord = errors.New("sim: unknown word")
)

type handle uint64

// Backend implements word.Backend with plaintext 64-bit values held
// behind opaque handles.
type Backend struct {
	mu     sync.Mutex
	next   handle
	words  map[handle]uint64
	config *env.Config
	master [32]byte
	stats  *Stats
	log    zerolog.Logger
}

// New creates a simulator backend. The config provides the entropy
// source for key generation and secret randomness.
func New(config *env.Config) (*Backend, error) {
	b := &Backend{
		words:  make(map[handle]uint64),
		config: config,
		stats:  newStats(),
		log:    logger.Logger().With().Str("component", "sim").Logger(),
	}
	_, err := io.ReadFull(config.GetRandom(), b.master[:])
	if err != nil {
		return nil, fmt.Errorf("sim: network key: %w", err)
	}
	return b, nil
}

// Stats returns the backend call statistics.
func (b *Backend) Stats() *Stats {
	return b.stats
}

func (b *Backend) insert(v uint64) word.Word {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	h := b.next
	b.words[h] = v
	return h
}

func (b *Backend) lookup(w word.Word) (uint64, error) {
	h, ok := w.(handle)
	if !ok {
		return 0, ErrForeignWord
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.words[h]
	if !ok {
		return 0, ErrUnknownWord
	}
	return v, nil
}

func (b *Backend) binop(op string, x, y word.Word,
	f func(x, y uint64) uint64) (word.Word, error) {

	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	yv, err := b.lookup(y)
	if err != nil {
		return nil, err
	}
	b.stats.count(op)
	return b.insert(f(xv, yv)), nil
}

func bool01(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// Add implements word.Backend.Add.
func (b *Backend) Add(x, y word.Word) (word.Word, error) {
	return b.binop("add", x, y, func(x, y uint64) uint64 {
		return x + y
	})
}

// Sub implements word.Backend.Sub.
func (b *Backend) Sub(x, y word.Word) (word.Word, error) {
	return b.binop("sub", x, y, func(x, y uint64) uint64 {
		return x - y
	})
}

// Mul implements word.Backend.Mul.
func (b *Backend) Mul(x, y word.Word) (word.Word, error) {
	return b.binop("mul", x, y, func(x, y uint64) uint64 {
		return x * y
	})
}

// Div implements word.Backend.Div. A zero divisor fails with
// word.ErrDivisionByZero.
func (b *Backend) Div(x, y word.Word) (word.Word, error) {
	return b.divop("div", x, y, func(x, y uint64) uint64 {
		return x / y
	})
}

// Rem implements word.Backend.Rem. A zero divisor fails with
// word.ErrDivisionByZero.
func (b *Backend) Rem(x, y word.Word) (word.Word, error) {
	return b.divop("rem", x, y, func(x, y uint64) uint64 {
		return x % y
	})
}

func (b *Backend) divop(op string, x, y word.Word,
	f func(x, y uint64) uint64) (word.Word, error) {

	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	yv, err := b.lookup(y)
	if err != nil {
		return nil, err
	}
	b.stats.count(op)
	if yv == 0 {
		return nil, word.ErrDivisionByZero
	}
	return b.insert(f(xv, yv)), nil
}

// And implements word.Backend.And.
func (b *Backend) And(x, y word.Word) (word.Word, error) {
	return b.binop("and", x, y, func(x, y uint64) uint64 {
		return x & y
	})
}

// Or implements word.Backend.Or.
func (b *Backend) Or(x, y word.Word) (word.Word, error) {
	return b.binop("or", x, y, func(x, y uint64) uint64 {
		return x | y
	})
}

// Xor implements word.Backend.Xor.
func (b *Backend) Xor(x, y word.Word) (word.Word, error) {
	return b.binop("xor", x, y, func(x, y uint64) uint64 {
		return x ^ y
	})
}

// Shl implements word.Backend.Shl.
func (b *Backend) Shl(x word.Word, amount uint) (word.Word, error) {
	if amount >= 64 {
		return nil, fmt.Errorf("sim: shift amount %v out of range", amount)
	}
	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	b.stats.count("shl")
	return b.insert(xv << amount), nil
}

// Shr implements word.Backend.Shr.
func (b *Backend) Shr(x word.Word, amount uint) (word.Word, error) {
	if amount >= 64 {
		return nil, fmt.Errorf("sim: shift amount %v out of range", amount)
	}
	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	b.stats.count("shr")
	return b.insert(xv >> amount), nil
}

// Eq implements word.Backend.Eq.
func (b *Backend) Eq(x, y word.Word) (word.Word, error) {
	return b.binop("eq", x, y, func(x, y uint64) uint64 {
		return bool01(x == y)
	})
}

// Ne implements word.Backend.Ne.
func (b *Backend) Ne(x, y word.Word) (word.Word, error) {
	return b.binop("ne", x, y, func(x, y uint64) uint64 {
		return bool01(x != y)
	})
}

// Lt implements word.Backend.Lt.
func (b *Backend) Lt(x, y word.Word) (word.Word, error) {
	return b.binop("lt", x, y, func(x, y uint64) uint64 {
		return bool01(x < y)
	})
}

// Le implements word.Backend.Le.
func (b *Backend) Le(x, y word.Word) (word.Word, error) {
	return b.binop("le", x, y, func(x, y uint64) uint64 {
		return bool01(x <= y)
	})
}

// Gt implements word.Backend.Gt.
func (b *Backend) Gt(x, y word.Word) (word.Word, error) {
	return b.binop("gt", x, y, func(x, y uint64) uint64 {
		return bool01(x > y)
	})
}

// Ge implements word.Backend.Ge.
func (b *Backend) Ge(x, y word.Word) (word.Word, error) {
	return b.binop("ge", x, y, func(x, y uint64) uint64 {
		return bool01(x >= y)
	})
}

// Mux implements word.Backend.Mux. The cost does not depend on the
// selected branch: both branch values are resolved always.
func (b *Backend) Mux(cond, x, y word.Word) (word.Word, error) {
	cv, err := b.lookup(cond)
	if err != nil {
		return nil, err
	}
	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	yv, err := b.lookup(y)
	if err != nil {
		return nil, err
	}
	b.stats.count("mux")
	if cv != 0 {
		return b.insert(xv), nil
	}
	return b.insert(yv), nil
}

// Decrypt implements word.Backend.Decrypt.
func (b *Backend) Decrypt(x word.Word) (uint64, error) {
	xv, err := b.lookup(x)
	if err != nil {
		return 0, err
	}
	b.stats.count("decrypt")
	return xv, nil
}

// SetPublic implements word.Backend.SetPublic.
func (b *Backend) SetPublic(v uint64) (word.Word, error) {
	b.stats.count("setPublic")
	return b.insert(v), nil
}

// Random implements word.Backend.Random.
func (b *Backend) Random(bits uint) (word.Word, error) {
	if bits == 0 || bits > 64 {
		return nil, fmt.Errorf("sim: random bit count %v out of range", bits)
	}
	var buf [8]byte
	_, err := io.ReadFull(b.config.GetRandom(), buf[:])
	if err != nil {
		return nil, fmt.Errorf("sim: random: %w", err)
	}
	var v uint64
	for _, c := range buf {
		v = v<<8 | uint64(c)
	}
	if bits < 64 {
		v &= 1<<bits - 1
	}
	b.stats.count("random")
	return b.insert(v), nil
}
