//
// boundary.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sim

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Associated data labels binding each sealed form to its role.
var (
	adProof      = []byte("mpint/input-proof")
	adCiphertext = []byte("mpint/ciphertext")
	adUser       = []byte("mpint/user-ciphertext")
)

func (b *Backend) seal(key []byte, ad []byte, v uint64) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	_, err = io.ReadFull(b.config.GetRandom(), nonce)
	if err != nil {
		return nil, err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return aead.Seal(nonce, nonce, buf[:], ad), nil
}

func open(key []byte, ad []byte, data []byte) (uint64, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return 0, err
	}
	if len(data) < chacha20poly1305.NonceSizeX {
		return 0, fmt.Errorf("sim: truncated ciphertext")
	}
	nonce := data[:chacha20poly1305.NonceSizeX]
	plain, err := aead.Open(nil, nonce, data[chacha20poly1305.NonceSizeX:], ad)
	if err != nil {
		return 0, err
	}
	if len(plain) != 8 {
		return 0, fmt.Errorf("sim: invalid plaintext length %v", len(plain))
	}
	return binary.LittleEndian.Uint64(plain), nil
}

// userKey derives the recipient's individual key from the network
// key and the recipient identity.
func (b *Backend) userKey(recipient []byte) ([]byte, error) {
	info := append([]byte("mpint user key: "), recipient...)
	key := make([]byte, chacha20poly1305.KeySize)
	_, err := io.ReadFull(hkdf.New(sha256.New, b.master[:], nil, info), key)
	if err != nil {
		return nil, fmt.Errorf("sim: user key: %w", err)
	}
	return key, nil
}

// ValidateCiphertext implements word.Backend.ValidateCiphertext.
// The simulator's correctness proof is the authentication tag of the
// sealed input: a forged or corrupted input fails to open.
func (b *Backend) ValidateCiphertext(proof []byte) (word.Word, error) {
	b.stats.count("validate")
	v, err := open(b.master[:], adProof, proof)
	if err != nil {
		return nil, word.ErrInvalidProof
	}
	return b.insert(v), nil
}

// Offboard implements word.Backend.Offboard.
func (b *Backend) Offboard(x word.Word) ([]byte, error) {
	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	b.stats.count("offboard")
	data, err := b.seal(b.master[:], adCiphertext, xv)
	if err != nil {
		return nil, fmt.Errorf("sim: offboard: %w", err)
	}
	return data, nil
}

// Onboard implements word.Backend.Onboard.
func (b *Backend) Onboard(data []byte) (word.Word, error) {
	b.stats.count("onboard")
	v, err := open(b.master[:], adCiphertext, data)
	if err != nil {
		return nil, fmt.Errorf("sim: onboard: %w", err)
	}
	return b.insert(v), nil
}

// OffboardToUser implements word.Backend.OffboardToUser.
func (b *Backend) OffboardToUser(x word.Word, recipient []byte) (
	[]byte, error) {

	xv, err := b.lookup(x)
	if err != nil {
		return nil, err
	}
	key, err := b.userKey(recipient)
	if err != nil {
		return nil, err
	}
	b.stats.count("offboardToUser")
	b.log.Debug().Bytes("recipient", recipient).Msg("key switch")
	data, err := b.seal(key, adUser, xv)
	if err != nil {
		return nil, fmt.Errorf("sim: offboard to user: %w", err)
	}
	return data, nil
}

// ProveInput seals the public value v as an input the backend will
// accept in ValidateCiphertext. It plays the role of the external
// encryptor producing a value with its correctness proof.
func (b *Backend) ProveInput(v uint64) ([]byte, error) {
	data, err := b.seal(b.master[:], adProof, v)
	if err != nil {
		return nil, fmt.Errorf("sim: prove input: %w", err)
	}
	return data, nil
}

// NewInputProof builds a full input proof for the integer x of the
// given type, reduced modulo 2^w.
func (b *Backend) NewInputProof(x *big.Int, typ types.Info) (
	*word.InputProof, error) {

	if !typ.Valid() {
		return nil, &word.TypeError{Op: "NewInputProof", Type: typ}
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(typ.Bits))
	m := new(big.Int).Mod(x, mod)

	mask64 := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(m)

	limbs := make([][]byte, typ.Limbs())
	for i := 0; i < typ.Limbs(); i++ {
		limb := new(big.Int).And(tmp, mask64).Uint64()
		proof, err := b.ProveInput(limb)
		if err != nil {
			return nil, err
		}
		limbs[i] = proof
		tmp.Rsh(tmp, types.WordBits)
	}
	return &word.InputProof{
		Type:  typ,
		Limbs: limbs,
	}, nil
}

// UserDecrypt decrypts a user ciphertext limb with the recipient's
// individual key. It models the recipient-side decryption that
// happens outside the system.
func (b *Backend) UserDecrypt(recipient, data []byte) (uint64, error) {
	key, err := b.userKey(recipient)
	if err != nil {
		return 0, err
	}
	v, err := open(key, adUser, data)
	if err != nil {
		return 0, fmt.Errorf("sim: user decrypt: %w", err)
	}
	return v, nil
}
