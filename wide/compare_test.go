//
// compare_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"math/big"
	"testing"

	"github.com/markkurossi/mpint/types"
)

func decBool(t *testing.T, e *Evaluator, cond Bool, err error) bool {
	t.Helper()
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	result, err := e.DecryptBool(cond)
	if err != nil {
		t.Fatalf("DecryptBool: %v", err)
	}
	return result
}

func testCompare(t *testing.T, e *Evaluator, typ types.Info, as, bs string) {
	t.Helper()

	x := parseInt(t, as)
	y := parseInt(t, bs)
	a := val(t, e, typ, as)
	b := val(t, e, typ, bs)

	cmp := reduce(x, typ).Cmp(reduce(y, typ))

	eq, err := e.Eq(a, b)
	if got := decBool(t, e, eq, err); got != (cmp == 0) {
		t.Errorf("%v: Eq(%v, %v) = %v", typ, as, bs, got)
	}
	ne, err := e.Ne(a, b)
	if got := decBool(t, e, ne, err); got != (cmp != 0) {
		t.Errorf("%v: Ne(%v, %v) = %v", typ, as, bs, got)
	}
	lt, err := e.Lt(a, b)
	if got := decBool(t, e, lt, err); got != (cmp < 0) {
		t.Errorf("%v: Lt(%v, %v) = %v", typ, as, bs, got)
	}
	le, err := e.Le(a, b)
	if got := decBool(t, e, le, err); got != (cmp <= 0) {
		t.Errorf("%v: Le(%v, %v) = %v", typ, as, bs, got)
	}
	gt, err := e.Gt(a, b)
	if got := decBool(t, e, gt, err); got != (cmp > 0) {
		t.Errorf("%v: Gt(%v, %v) = %v", typ, as, bs, got)
	}
	ge, err := e.Ge(a, b)
	if got := decBool(t, e, ge, err); got != (cmp >= 0) {
		t.Errorf("%v: Ge(%v, %v) = %v", typ, as, bs, got)
	}
}

func TestCompareUnsigned(t *testing.T) {
	e := newEval(t)

	tests := []struct {
		typ types.Info
		a   string
		b   string
	}{
		{types.Uint8, "0", "0"},
		{types.Uint8, "0", "255"},
		{types.Uint8, "255", "254"},
		{types.Uint64, "0xffffffffffffffff", "0"},
		{types.Uint64, "0x8000000000000000", "0x7fffffffffffffff"},
		{types.Uint128, "0x10000000000000000", "0xffffffffffffffff"},
		{types.Uint128, "5", "5"},
		{types.Uint256,
			"0x8000000000000000000000000000000000000000000000000000000000000000",
			"1"},
		{types.Uint256, "1", "2"},
	}
	for _, test := range tests {
		testCompare(t, e, test.typ, test.a, test.b)
	}
}

// Signed comparison is exercised in all four sign quadrants, both
// with small magnitudes and with magnitudes crossing the top limb.
func TestCompareSigned(t *testing.T) {
	e := newEval(t)

	small := []string{"-3", "-1", "0", "1", "3"}
	for _, typ := range []types.Info{types.Int8, types.Int64,
		types.Int128, types.Int256} {
		for _, a := range small {
			for _, b := range small {
				testCompare(t, e, typ, a, b)
			}
		}
		min := minVal(typ).String()
		max := maxVal(typ).String()
		edge := []string{min, max, "-1", "0", "1"}
		for _, a := range edge {
			for _, b := range edge {
				testCompare(t, e, typ, a, b)
			}
		}
	}

	// Magnitudes above 2^64 on both sides of zero.
	wide := []string{
		"-0x10000000000000001", "-0xffffffffffffffff",
		"0xffffffffffffffff", "0x10000000000000001",
	}
	for _, a := range wide {
		for _, b := range wide {
			testCompare(t, e, types.Int128, a, b)
			testCompare(t, e, types.Int256, a, b)
		}
	}
}

// A sum built on the short carry chain still orders correctly
// against full-width signed operands.
func TestCompareAfterCarry(t *testing.T) {
	e := newEval(t)

	for _, typ := range []types.Info{types.Int128, types.Int256} {
		a := val(t, e, typ, "0xffffffffffffffff")
		b := val(t, e, typ, "1")
		sum, err := e.Add(a, b)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		checkEqual(t, "sum", dec(t, e, sum),
			parseInt(t, "0x10000000000000000"))

		for _, test := range []struct {
			b    string
			less bool
		}{
			{"-1", false},
			{minVal(typ).String(), false},
			{"1", false},
			{"0x10000000000000000", false},
			{"0x10000000000000001", true},
			{maxVal(typ).String(), true},
		} {
			lt, err := e.Lt(sum, val(t, e, typ, test.b))
			if got := decBool(t, e, lt, err); got != test.less {
				t.Errorf("%v: Lt(2^64, %v) = %v", typ, test.b, got)
			}
		}
	}
}

func TestTrichotomy(t *testing.T) {
	e := newEval(t)

	values := []string{"-2", "0", "2", "-0x10000000000000000",
		"0x10000000000000000"}
	for _, as := range values {
		for _, bs := range values {
			a := val(t, e, types.Int128, as)
			b := val(t, e, types.Int128, bs)

			var count int
			lt, err := e.Lt(a, b)
			if decBool(t, e, lt, err) {
				count++
			}
			eq, err := e.Eq(a, b)
			if decBool(t, e, eq, err) {
				count++
			}
			gt, err := e.Gt(a, b)
			if decBool(t, e, gt, err) {
				count++
			}
			if count != 1 {
				t.Errorf("trichotomy violated for %v, %v: %v hold",
					as, bs, count)
			}
		}
	}
}

func TestMinMax(t *testing.T) {
	e := newEval(t)

	tests := []struct {
		typ types.Info
		a   string
		b   string
	}{
		{types.Uint8, "200", "100"},
		{types.Uint128, "0x10000000000000000", "0xffffffffffffffff"},
		{types.Int64, "-5", "3"},
		{types.Int256, minVal(types.Int256).String(),
			maxVal(types.Int256).String()},
		{types.Int256, "7", "7"},
	}
	for _, test := range tests {
		a := val(t, e, test.typ, test.a)
		b := val(t, e, test.typ, test.b)

		x := reduce(parseInt(t, test.a), test.typ)
		y := reduce(parseInt(t, test.b), test.typ)
		lo, hi := x, y
		if x.Cmp(y) > 0 {
			lo, hi = y, x
		}

		r, err := e.Min(a, b)
		if err != nil {
			t.Fatalf("Min: %v", err)
		}
		checkEqual(t, "Min", dec(t, e, r), lo)

		r, err = e.Max(a, b)
		if err != nil {
			t.Fatalf("Max: %v", err)
		}
		checkEqual(t, "Max", dec(t, e, r), hi)
	}
}

func TestSelect(t *testing.T) {
	e := newEval(t)

	for _, typ := range []types.Info{types.Uint8, types.Int64,
		types.Uint256, types.Int256} {
		a := val(t, e, typ, maxVal(typ).String())
		b := val(t, e, typ, minVal(typ).String())

		cond, err := e.Lt(a, b)
		if err != nil {
			t.Fatalf("Lt: %v", err)
		}
		r, err := e.Select(cond, a, b)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		checkEqual(t, "Select false", dec(t, e, r), minVal(typ))

		cond, err = e.Ge(a, b)
		if err != nil {
			t.Fatalf("Ge: %v", err)
		}
		r, err = e.Select(cond, a, b)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		checkEqual(t, "Select true", dec(t, e, r), maxVal(typ))
	}
}

func TestSelectPreservesWidth(t *testing.T) {
	e := newEval(t)

	a := val(t, e, types.Uint128, "1")
	b := val(t, e, types.Uint128, "0x20000000000000000")
	cond, err := e.Eq(a, a)
	if err != nil {
		t.Fatalf("Eq: %v", err)
	}
	r, err := e.Select(cond, a, b)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	checkEqual(t, "Select", dec(t, e, r), big.NewInt(1))

	sum, err := e.Add(r, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	checkEqual(t, "Add after Select", dec(t, e, sum),
		parseInt(t, "0x20000000000000001"))
}
