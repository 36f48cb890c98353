//
// sim_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sim

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/markkurossi/mpint/env"
	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ word.Backend = &Backend{}

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(&env.Config{})
	require.NoError(t, err)
	return b
}

func public(t *testing.T, b *Backend, v uint64) word.Word {
	t.Helper()
	w, err := b.SetPublic(v)
	require.NoError(t, err)
	return w
}

func decrypt(t *testing.T, b *Backend, w word.Word) uint64 {
	t.Helper()
	v, err := b.Decrypt(w)
	require.NoError(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	b := newBackend(t)

	tests := []struct {
		op func(x, y word.Word) (word.Word, error)
		x  uint64
		y  uint64
		r  uint64
	}{
		{b.Add, 1, 2, 3},
		{b.Add, ^uint64(0), 1, 0},
		{b.Sub, 5, 7, ^uint64(0) - 1},
		{b.Mul, 1 << 32, 1 << 32, 0},
		{b.Mul, 100, 200, 20000},
		{b.Div, 100, 7, 14},
		{b.Rem, 100, 7, 2},
		{b.And, 0xff00, 0x0ff0, 0x0f00},
		{b.Or, 0xff00, 0x0ff0, 0xfff0},
		{b.Xor, 0xff00, 0x0ff0, 0xf0f0},
		{b.Eq, 42, 42, 1},
		{b.Eq, 42, 43, 0},
		{b.Ne, 42, 43, 1},
		{b.Lt, 1, 2, 1},
		{b.Lt, 2, 2, 0},
		{b.Le, 2, 2, 1},
		{b.Gt, 3, 2, 1},
		{b.Ge, 2, 3, 0},
	}
	for idx, test := range tests {
		r, err := test.op(public(t, b, test.x), public(t, b, test.y))
		require.NoError(t, err, "test %d", idx)
		assert.Equal(t, test.r, decrypt(t, b, r), "test %d", idx)
	}
}

func TestDivisionByZero(t *testing.T) {
	b := newBackend(t)

	_, err := b.Div(public(t, b, 1), public(t, b, 0))
	assert.ErrorIs(t, err, word.ErrDivisionByZero)
	_, err = b.Rem(public(t, b, 1), public(t, b, 0))
	assert.ErrorIs(t, err, word.ErrDivisionByZero)
}

func TestShift(t *testing.T) {
	b := newBackend(t)

	r, err := b.Shl(public(t, b, 1), 63)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, decrypt(t, b, r))

	r, err = b.Shr(public(t, b, uint64(1)<<63), 63)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), decrypt(t, b, r))

	_, err = b.Shl(public(t, b, 1), 64)
	assert.Error(t, err)
	_, err = b.Shr(public(t, b, 1), 64)
	assert.Error(t, err)
}

func TestMux(t *testing.T) {
	b := newBackend(t)

	x := public(t, b, 7)
	y := public(t, b, 9)

	r, err := b.Mux(public(t, b, 1), x, y)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), decrypt(t, b, r))

	r, err = b.Mux(public(t, b, 0), x, y)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), decrypt(t, b, r))
}

func TestRandom(t *testing.T) {
	b := newBackend(t)

	r, err := b.Random(8)
	require.NoError(t, err)
	assert.Less(t, decrypt(t, b, r), uint64(256))

	_, err = b.Random(64)
	require.NoError(t, err)

	_, err = b.Random(0)
	assert.Error(t, err)
	_, err = b.Random(65)
	assert.Error(t, err)
}

func TestForeignWord(t *testing.T) {
	b := newBackend(t)
	other := newBackend(t)

	w := public(t, other, 1)
	_, err := b.Decrypt(w)
	assert.True(t, errors.Is(err, ErrForeignWord) ||
		errors.Is(err, ErrUnknownWord))

	_, err = b.Decrypt("bogus")
	assert.ErrorIs(t, err, ErrForeignWord)
}

func TestOffboardOnboard(t *testing.T) {
	b := newBackend(t)

	data, err := b.Offboard(public(t, b, 0xdeadbeef))
	require.NoError(t, err)

	w, err := b.Onboard(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xdeadbeef), decrypt(t, b, w))

	data[len(data)-1] ^= 1
	_, err = b.Onboard(data)
	assert.Error(t, err)
}

func TestValidateCiphertext(t *testing.T) {
	b := newBackend(t)

	proof, err := b.ProveInput(42)
	require.NoError(t, err)

	w, err := b.ValidateCiphertext(proof)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), decrypt(t, b, w))

	proof[0] ^= 1
	_, err = b.ValidateCiphertext(proof)
	assert.ErrorIs(t, err, word.ErrInvalidProof)

	// A durable ciphertext is not an input proof.
	data, err := b.Offboard(public(t, b, 42))
	require.NoError(t, err)
	_, err = b.ValidateCiphertext(data)
	assert.ErrorIs(t, err, word.ErrInvalidProof)
}

func TestOffboardToUser(t *testing.T) {
	b := newBackend(t)

	alice := []byte("alice")
	bob := []byte("bob")

	data, err := b.OffboardToUser(public(t, b, 12345), alice)
	require.NoError(t, err)

	v, err := b.UserDecrypt(alice, data)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)

	_, err = b.UserDecrypt(bob, data)
	assert.Error(t, err)
}

func TestNewInputProof(t *testing.T) {
	b := newBackend(t)

	x, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	proof, err := b.NewInputProof(x, types.Uint128)
	require.NoError(t, err)
	assert.Equal(t, types.Uint128, proof.Type)
	require.Len(t, proof.Limbs, 2)

	lo, err := b.ValidateCiphertext(proof.Limbs[0])
	require.NoError(t, err)
	hi, err := b.ValidateCiphertext(proof.Limbs[1])
	require.NoError(t, err)

	assert.Equal(t, x.Uint64(), decrypt(t, b, lo))
	assert.Equal(t, new(big.Int).Rsh(x, 64).Uint64(), decrypt(t, b, hi))

	_, err = b.NewInputProof(x, types.Info{})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	b := newBackend(t)

	x := public(t, b, 1)
	y := public(t, b, 2)
	for i := 0; i < 3; i++ {
		_, err := b.Add(x, y)
		require.NoError(t, err)
	}
	_, err := b.Mul(x, y)
	require.NoError(t, err)

	assert.Equal(t, 3, b.Stats().Count("add"))
	assert.Equal(t, 1, b.Stats().Count("mul"))
	assert.Equal(t, 6, b.Stats().Total())

	var buf bytes.Buffer
	b.Stats().Report(&buf)
	assert.True(t, strings.Contains(buf.String(), "add"))
	assert.True(t, strings.Contains(buf.String(), "Total"))

	b.Stats().Reset()
	assert.Equal(t, 0, b.Stats().Total())
}
