//
// types.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package types defines the fixed-width integer types of the mpint
// system. A type is a width in bits plus a signedness; the width
// determines how many 64-bit secret words ("limbs") represent a
// value. Signedness is a property of the type, not of any runtime
// tag on the value: the same limb pattern is interpreted differently
// by signed and unsigned operations.
package types

import (
	"fmt"
)

// Type specifies an mpint scalar type.
type Type int8

// Size specifies sizes and bit counts.
type Size int32

// WordBits defines the backend word size in bits.
const WordBits = 64

// The mpint scalar types.
const (
	TUndefined Type = iota
	TUint
	TInt
)

// Types define the mpint types and their names.
var Types = map[string]Type{
	"<Undefined>": TUndefined,
	"uint":        TUint,
	"int":         TInt,
}

var shortTypes = map[Type]string{
	TUndefined: "?",
	TUint:      "u",
	TInt:       "i",
}

func (t Type) String() string {
	for k, v := range Types {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("{Type %d}", t)
}

// ShortString returns a short string name for the type.
func (t Type) ShortString() string {
	name, ok := shortTypes[t]
	if ok {
		return name
	}
	return t.String()
}

// Info specifies the type of a fixed-width value.
type Info struct {
	Type Type
	Bits Size
}

// Widths lists the supported widths in bits.
var Widths = []Size{8, 16, 32, 64, 128, 256}

// Predefined type infos for all supported widths.
var (
	Undefined = Info{Type: TUndefined}

	Uint8   = Info{Type: TUint, Bits: 8}
	Uint16  = Info{Type: TUint, Bits: 16}
	Uint32  = Info{Type: TUint, Bits: 32}
	Uint64  = Info{Type: TUint, Bits: 64}
	Uint128 = Info{Type: TUint, Bits: 128}
	Uint256 = Info{Type: TUint, Bits: 256}

	Int8   = Info{Type: TInt, Bits: 8}
	Int16  = Info{Type: TInt, Bits: 16}
	Int32  = Info{Type: TInt, Bits: 32}
	Int64  = Info{Type: TInt, Bits: 64}
	Int128 = Info{Type: TInt, Bits: 128}
	Int256 = Info{Type: TInt, Bits: 256}
)

func (i Info) String() string {
	if i.Bits == 0 {
		return i.Type.String()
	}
	return fmt.Sprintf("%s%d", i.Type, i.Bits)
}

// ShortString returns a short string name for the type info.
func (i Info) ShortString() string {
	if i.Bits == 0 {
		return i.Type.ShortString()
	}
	return fmt.Sprintf("%s%d", i.Type.ShortString(), i.Bits)
}

// Undefined tests if type is undefined.
func (i Info) Undefined() bool {
	return i.Type == TUndefined
}

// Valid tests if the type is a supported fixed-width integer type.
func (i Info) Valid() bool {
	if i.Type != TUint && i.Type != TInt {
		return false
	}
	for _, w := range Widths {
		if i.Bits == w {
			return true
		}
	}
	return false
}

// Signed tests if the type is signed.
func (i Info) Signed() bool {
	return i.Type == TInt
}

// Limbs returns the number of 64-bit limbs representing a value of
// the type.
func (i Info) Limbs() int {
	return (int(i.Bits) + WordBits - 1) / WordBits
}

// Mask returns the bit mask of the most significant limb. For widths
// of 64 bits and above the mask covers the full limb.
func (i Info) Mask() uint64 {
	if i.Bits >= WordBits || i.Bits == 0 {
		return ^uint64(0)
	}
	return 1<<uint(i.Bits) - 1
}

// SignBit returns the position of the sign bit within the most
// significant limb.
func (i Info) SignBit() uint {
	bits := uint(i.Bits)
	if bits >= WordBits {
		return (bits - 1) % WordBits
	}
	return bits - 1
}

// Equal tests if the argument type is equal to this type info.
func (i Info) Equal(o Info) bool {
	return i.Type == o.Type && i.Bits == o.Bits
}
