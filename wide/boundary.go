//
// boundary.go
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

// SetPublic injects the public integer x as a secret value of the
// type. The value is reduced modulo 2^w first, so negative inputs
// become their two's-complement representation.
func (e *Evaluator) SetPublic(x *big.Int, typ types.Info) (*Value, error) {
	if !typ.Valid() {
		return nil, &word.TypeError{Op: "SetPublic", Type: typ}
	}
	n := typ.Limbs()

	mod := new(big.Int).Lsh(big.NewInt(1), uint(typ.Bits))
	m := new(big.Int).Mod(x, mod)

	mask64 := new(big.Int).SetUint64(^uint64(0))
	limbs := make([]word.Word, n)
	fit := 1
	tmp := new(big.Int).Set(m)
	for i := 0; i < n; i++ {
		limb := new(big.Int).And(tmp, mask64).Uint64()
		w, err := e.b.SetPublic(limb)
		if err != nil {
			return nil, fmt.Errorf("wide: SetPublic: %w", err)
		}
		limbs[i] = w
		if limb != 0 {
			fit = i + 1
		}
		tmp.Rsh(tmp, types.WordBits)
	}
	return newValue(typ, limbs, fit), nil
}

// Decrypt reveals the plaintext value, reassembling the limbs
// little-endian and interpreting the result per two's complement
// when the type is signed.
func (e *Evaluator) Decrypt(v *Value) (*big.Int, error) {
	if !v.typ.Valid() {
		return nil, &word.TypeError{Op: "Decrypt", Type: v.typ}
	}
	n := v.typ.Limbs()

	result := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		limb, err := e.b.Decrypt(v.limbs[i])
		if err != nil {
			return nil, fmt.Errorf("wide: Decrypt: %w", err)
		}
		result.Lsh(result, types.WordBits)
		result.Or(result, new(big.Int).SetUint64(limb))
	}
	if v.typ.Signed() && result.Bit(int(v.typ.Bits)-1) == 1 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(v.typ.Bits))
		result.Sub(result, mod)
	}
	return result, nil
}

// Random returns a secret value uniformly distributed over the full
// unsigned range of the type.
func (e *Evaluator) Random(typ types.Info) (*Value, error) {
	return e.RandomBounded(typ, uint(typ.Bits))
}

// RandomBounded returns a secret value uniformly distributed over
// [0, 2^bits). Unused upper limbs are zero-filled.
func (e *Evaluator) RandomBounded(typ types.Info, bits uint) (*Value, error) {
	if !typ.Valid() {
		return nil, &word.TypeError{Op: "RandomBounded", Type: typ}
	}
	if bits == 0 || bits > uint(typ.Bits) {
		return nil, fmt.Errorf("wide: RandomBounded: invalid bit count %v",
			bits)
	}
	n := typ.Limbs()
	full := int(bits / types.WordBits)
	partial := bits % types.WordBits

	limbs := make([]word.Word, n)
	var err error
	for i := 0; i < full; i++ {
		limbs[i], err = e.b.Random(types.WordBits)
		if err != nil {
			return nil, fmt.Errorf("wide: RandomBounded: %w", err)
		}
	}
	idx := full
	if partial > 0 {
		limbs[idx], err = e.b.Random(partial)
		if err != nil {
			return nil, fmt.Errorf("wide: RandomBounded: %w", err)
		}
		idx++
	}
	if idx < n {
		zero, err := e.zero()
		if err != nil {
			return nil, fmt.Errorf("wide: RandomBounded: %w", err)
		}
		for ; idx < n; idx++ {
			limbs[idx] = zero
		}
	}
	return newValue(typ, limbs, (int(bits)+types.WordBits-1)/types.WordBits),
		nil
}

// ValidateCiphertext validates an externally supplied input proof
// and returns the trusted value. Any limb failing validation
// invalidates the whole input: no partial value is ever produced.
func (e *Evaluator) ValidateCiphertext(p *word.InputProof) (*Value, error) {
	typ := p.Type
	if !typ.Valid() || len(p.Limbs) != typ.Limbs() {
		return nil, fmt.Errorf("wide: ValidateCiphertext: %w",
			word.ErrInvalidProof)
	}
	limbs := make([]word.Word, typ.Limbs())
	for i, proof := range p.Limbs {
		w, err := e.b.ValidateCiphertext(proof)
		if err != nil {
			return nil, fmt.Errorf("wide: ValidateCiphertext: %w", err)
		}
		limbs[i] = w
	}
	if err := e.maskTop(typ, limbs); err != nil {
		return nil, fmt.Errorf("wide: ValidateCiphertext: %w", err)
	}
	return newValue(typ, limbs, typ.Limbs()), nil
}

// Offboard converts the value into its durable encrypted form under
// the network key.
func (e *Evaluator) Offboard(v *Value) (*word.Ciphertext, error) {
	if !v.typ.Valid() {
		return nil, &word.TypeError{Op: "Offboard", Type: v.typ}
	}
	limbs := make([][]byte, len(v.limbs))
	for i, w := range v.limbs {
		data, err := e.b.Offboard(w)
		if err != nil {
			return nil, fmt.Errorf("wide: Offboard: %w", err)
		}
		limbs[i] = data
	}
	return &word.Ciphertext{
		Type:  v.typ,
		Limbs: limbs,
	}, nil
}

// Onboard restores a value from its durable encrypted form.
func (e *Evaluator) Onboard(ct *word.Ciphertext) (*Value, error) {
	typ := ct.Type
	if !typ.Valid() || len(ct.Limbs) != typ.Limbs() {
		return nil, fmt.Errorf("wide: Onboard: invalid ciphertext")
	}
	limbs := make([]word.Word, typ.Limbs())
	for i, data := range ct.Limbs {
		w, err := e.b.Onboard(data)
		if err != nil {
			return nil, fmt.Errorf("wide: Onboard: %w", err)
		}
		limbs[i] = w
	}
	return newValue(typ, limbs, typ.Limbs()), nil
}

// OffboardToUser re-encrypts the value to the recipient's individual
// key. The canonical network-keyed form of the value is not mutated
// or replaced.
func (e *Evaluator) OffboardToUser(v *Value, recipient []byte) (
	*word.UserCiphertext, error) {

	if !v.typ.Valid() {
		return nil, &word.TypeError{Op: "OffboardToUser", Type: v.typ}
	}
	limbs := make([][]byte, len(v.limbs))
	for i, w := range v.limbs {
		data, err := e.b.OffboardToUser(w, recipient)
		if err != nil {
			return nil, fmt.Errorf("wide: OffboardToUser: %w", err)
		}
		limbs[i] = data
	}
	return &word.UserCiphertext{
		Type:      v.typ,
		Recipient: recipient,
		Limbs:     limbs,
	}, nil
}

// Convert converts the value to another width: widening
// zero-extends unsigned sources and sign-extends signed sources;
// narrowing truncates. The signedness of the result is that of the
// target type.
func (e *Evaluator) Convert(v *Value, to types.Info) (*Value, error) {
	if !v.typ.Valid() {
		return nil, &word.TypeError{Op: "Convert", Type: v.typ}
	}
	if !to.Valid() {
		return nil, &word.TypeError{Op: "Convert", Type: to}
	}
	if to.Bits == v.typ.Bits {
		return newValue(to, v.limbs, v.fit), nil
	}
	if to.Bits < v.typ.Bits {
		limbs := make([]word.Word, to.Limbs())
		copy(limbs, v.limbs[:to.Limbs()])
		if err := e.maskTop(to, limbs); err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
		return newValue(to, limbs, v.fit), nil
	}
	if !v.typ.Signed() {
		return e.zeroExtend(v, to)
	}
	return e.signExtend(v, to)
}

func (e *Evaluator) zeroExtend(v *Value, to types.Info) (*Value, error) {
	limbs := make([]word.Word, 0, to.Limbs())
	limbs = append(limbs, v.limbs...)
	zero, err := e.zero()
	if err != nil {
		return nil, fmt.Errorf("wide: Convert: %w", err)
	}
	for len(limbs) < to.Limbs() {
		limbs = append(limbs, zero)
	}
	return newValue(to, limbs, v.fit), nil
}

func (e *Evaluator) signExtend(v *Value, to types.Info) (*Value, error) {
	s, err := e.signBit(v)
	if err != nil {
		return nil, fmt.Errorf("wide: Convert: %w", err)
	}
	zero, err := e.zero()
	if err != nil {
		return nil, fmt.Errorf("wide: Convert: %w", err)
	}

	limbs := make([]word.Word, 0, to.Limbs())
	limbs = append(limbs, v.limbs...)

	if v.typ.Bits < types.WordBits {
		// Fill the bits between the source and target widths within
		// the shared limb.
		var fillBits uint64
		if to.Bits >= types.WordBits {
			fillBits = ^v.typ.Mask()
		} else {
			fillBits = to.Mask() &^ v.typ.Mask()
		}
		fillPub, err := e.public(fillBits)
		if err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
		fill, err := e.b.Mux(s, fillPub, zero)
		if err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
		limbs[0], err = e.b.Or(limbs[0], fill)
		if err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
	}
	if len(limbs) < to.Limbs() {
		ones, err := e.public(^uint64(0))
		if err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
		fill, err := e.b.Mux(s, ones, zero)
		if err != nil {
			return nil, fmt.Errorf("wide: Convert: %w", err)
		}
		for len(limbs) < to.Limbs() {
			limbs = append(limbs, fill)
		}
	}
	return newValue(to, limbs, to.Limbs()), nil
}
