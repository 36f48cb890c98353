//
// ciphertext.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package word

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/markkurossi/mpint/types"
)

// Ciphertext is the durable, serializable form of a fixed-width
// value, encrypted under the collective network key. Each element of
// Limbs holds one encrypted 64-bit limb, least significant first.
type Ciphertext struct {
	Type  types.Info `cbor:"1,keyasint"`
	Limbs [][]byte   `cbor:"2,keyasint"`
}

// Bytes encodes the ciphertext.
func (ct *Ciphertext) Bytes() ([]byte, error) {
	return cbor.Marshal(ct)
}

// ParseCiphertext decodes a ciphertext encoded with Bytes.
func ParseCiphertext(data []byte) (*Ciphertext, error) {
	ct := new(Ciphertext)
	if err := cbor.Unmarshal(data, ct); err != nil {
		return nil, fmt.Errorf("word: parse ciphertext: %w", err)
	}
	return ct, nil
}

// UserCiphertext is a value re-encrypted to one recipient's
// individual key. It is decryptable only by that recipient, outside
// the system.
type UserCiphertext struct {
	Type      types.Info `cbor:"1,keyasint"`
	Recipient []byte     `cbor:"2,keyasint"`
	Limbs     [][]byte   `cbor:"3,keyasint"`
}

// Bytes encodes the user ciphertext.
func (ct *UserCiphertext) Bytes() ([]byte, error) {
	return cbor.Marshal(ct)
}

// ParseUserCiphertext decodes a user ciphertext encoded with Bytes.
func ParseUserCiphertext(data []byte) (*UserCiphertext, error) {
	ct := new(UserCiphertext)
	if err := cbor.Unmarshal(data, ct); err != nil {
		return nil, fmt.Errorf("word: parse user ciphertext: %w", err)
	}
	return ct, nil
}

// InputProof is an externally supplied encrypted value with its
// correctness proof. It must be validated before it is trusted as a
// value.
type InputProof struct {
	Type  types.Info `cbor:"1,keyasint"`
	Limbs [][]byte   `cbor:"2,keyasint"`
}

// Bytes encodes the input proof.
func (p *InputProof) Bytes() ([]byte, error) {
	return cbor.Marshal(p)
}

// ParseInputProof decodes an input proof encoded with Bytes.
func ParseInputProof(data []byte) (*InputProof, error) {
	p := new(InputProof)
	if err := cbor.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("word: parse input proof: %w", err)
	}
	return p, nil
}
