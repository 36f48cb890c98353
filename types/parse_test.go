//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"testing"
)

var parseTests = []struct {
	input string
	info  Info
}{
	{
		input: "u8",
		info:  Uint8,
	},
	{
		input: "uint8",
		info:  Uint8,
	},
	{
		input: "u64",
		info:  Uint64,
	},
	{
		input: "uint128",
		info:  Uint128,
	},
	{
		input: "u256",
		info:  Uint256,
	},
	{
		input: "i32",
		info:  Int32,
	},
	{
		input: "int32",
		info:  Int32,
	},
	{
		input: "int256",
		info:  Int256,
	},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		info, err := Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", test.input, err)
			continue
		}
		if !info.Equal(test.info) {
			t.Errorf("Parse(%q)=%v, expected %v", test.input, info, test.info)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"", "u", "int", "u24", "uint512", "float64", "x128", "u128x",
	} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) did not fail", input)
		}
	}
}
