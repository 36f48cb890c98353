//
// checked_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"errors"
	"math/big"
	"testing"

	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/word"
)

type checkedTest struct {
	typ types.Info
	a   string
	b   string
}

// checkedOverflows tells whether a op b leaves the value range of
// the type.
func checkedOverflows(t *testing.T, typ types.Info, a, b string,
	op func(r, x, y *big.Int) *big.Int) bool {
	t.Helper()

	x := reduce(parseInt(t, a), typ)
	y := reduce(parseInt(t, b), typ)
	r := op(new(big.Int), x, y)
	return r.Cmp(minVal(typ)) < 0 || r.Cmp(maxVal(typ)) > 0
}

func testChecked(t *testing.T, name string,
	checked func(e *Evaluator, a, b *Value) (*Value, error),
	withBit func(e *Evaluator, a, b *Value) (*Value, Bool, error),
	op func(r, x, y *big.Int) *big.Int, tests []checkedTest) {
	t.Helper()

	e := newEval(t)
	for idx, test := range tests {
		a := val(t, e, test.typ, test.a)
		b := val(t, e, test.typ, test.b)

		x := reduce(parseInt(t, test.a), test.typ)
		y := reduce(parseInt(t, test.b), test.typ)
		exact := op(new(big.Int), x, y)
		overflows := checkedOverflows(t, test.typ, test.a, test.b, op)

		r, err := checked(e, a, b)
		if overflows {
			if !errors.Is(err, word.ErrArithmeticOverflow) {
				t.Errorf("%s test %d (%v %v, %v): error %v, "+
					"expected overflow", name, idx, test.typ, test.a,
					test.b, err)
			}
		} else {
			if err != nil {
				t.Fatalf("%s test %d: %v", name, idx, err)
			}
			checkEqual(t, name, dec(t, e, r), exact)
		}

		r, ov, err := withBit(e, a, b)
		if err != nil {
			t.Fatalf("%s bit test %d: %v", name, idx, err)
		}
		flag, err := e.DecryptBool(ov)
		if err != nil {
			t.Fatalf("DecryptBool: %v", err)
		}
		if flag != overflows {
			t.Errorf("%s bit test %d (%v %v, %v): flag %v, expected %v",
				name, idx, test.typ, test.a, test.b, flag, overflows)
		}
		checkEqual(t, name+" wrapped", dec(t, e, r),
			reduce(exact, test.typ))
	}
}

func TestCheckedAdd(t *testing.T) {
	testChecked(t, "CheckedAdd",
		(*Evaluator).CheckedAdd, (*Evaluator).CheckedAddWithOverflowBit,
		(*big.Int).Add, []checkedTest{
			{types.Uint8, "200", "55"},
			{types.Uint8, "200", "56"},
			{types.Uint8, "255", "255"},
			{types.Uint64, "0xfffffffffffffffe", "1"},
			{types.Uint64, "0xffffffffffffffff", "1"},
			{types.Uint128, "0xffffffffffffffffffffffffffffffff", "1"},
			{types.Uint128, "0xffffffffffffffff", "0xffffffffffffffff"},
			{types.Uint256, maxVal(types.Uint256).String(), "1"},
			{types.Uint256, maxVal(types.Uint256).String(), "0"},
			{types.Int8, "127", "1"},
			{types.Int8, "-128", "-1"},
			{types.Int8, "-128", "127"},
			{types.Int64, "9223372036854775807", "1"},
			{types.Int64, "-8000000000", "3000000000"},
			{types.Int128, maxVal(types.Int128).String(), "1"},
			{types.Int128, minVal(types.Int128).String(), "-1"},
			{types.Int256, minVal(types.Int256).String(),
				maxVal(types.Int256).String()},
			{types.Int256, maxVal(types.Int256).String(), "1"},
		})
}

func TestCheckedSub(t *testing.T) {
	testChecked(t, "CheckedSub",
		(*Evaluator).CheckedSub, (*Evaluator).CheckedSubWithOverflowBit,
		(*big.Int).Sub, []checkedTest{
			{types.Uint8, "100", "100"},
			{types.Uint8, "30", "100"},
			{types.Uint64, "0", "1"},
			{types.Uint64, "0xffffffffffffffff", "0xffffffffffffffff"},
			{types.Uint128, "0", "0x10000000000000000"},
			{types.Uint256, "1", "2"},
			{types.Int8, "-128", "1"},
			{types.Int8, "127", "-1"},
			{types.Int8, "-100", "28"},
			{types.Int64, "-9223372036854775808", "1"},
			{types.Int128, minVal(types.Int128).String(),
				maxVal(types.Int128).String()},
			{types.Int256, minVal(types.Int256).String(), "-1"},
			{types.Int256, "100", "101"},
		})
}

func TestCheckedMul(t *testing.T) {
	testChecked(t, "CheckedMul",
		(*Evaluator).CheckedMul, (*Evaluator).CheckedMulWithOverflowBit,
		(*big.Int).Mul, []checkedTest{
			{types.Uint8, "15", "17"},
			{types.Uint8, "16", "16"},
			{types.Uint16, "255", "257"},
			{types.Uint16, "256", "256"},
			{types.Uint64, "0xffffffff", "0xffffffff"},
			{types.Uint64, "0x100000000", "0x100000000"},
			{types.Uint128, "0xffffffffffffffff", "0xffffffffffffffff"},
			{types.Uint128, "0x10000000000000000", "0x10000000000000000"},
			{types.Uint256, "0xffffffffffffffffffffffffffffffff",
				"0xffffffffffffffffffffffffffffffff"},
			{types.Uint256, "0x100000000000000000000000000000000",
				"0x100000000000000000000000000000000"},
			{types.Int8, "-11", "11"},
			{types.Int8, "-12", "11"},
			{types.Int8, "-128", "-1"},
			{types.Int8, "-128", "1"},
			{types.Int8, "64", "-2"},
			{types.Int8, "64", "2"},
			{types.Int64, "-3037000499", "3037000499"},
			{types.Int64, "3037000500", "3037000500"},
			{types.Int64, "-9223372036854775808", "-1"},
			{types.Int128, "-1", "-1"},
			{types.Int128, minVal(types.Int128).String(), "-1"},
			{types.Int128, "0xffffffffffffffff", "-0x8000000000000000"},
			{types.Int8, "-128", "-128"},
			{types.Int64, minVal(types.Int64).String(),
				minVal(types.Int64).String()},
			{types.Int128, minVal(types.Int128).String(),
				minVal(types.Int128).String()},
			{types.Int256, minVal(types.Int256).String(), "1"},
			{types.Int256, minVal(types.Int256).String(), "-1"},
			{types.Int256, minVal(types.Int256).String(),
				minVal(types.Int256).String()},
			{types.Int256, "-0xffffffffffffffffffffffffffffffff",
				"0x8000000000000000"},
		})
}

func TestCheckedPublic(t *testing.T) {
	e := newEval(t)

	b := val(t, e, types.Uint8, "200")

	r, err := e.CheckedAddRHS(b, big.NewInt(55))
	if err != nil {
		t.Fatalf("CheckedAddRHS: %v", err)
	}
	checkEqual(t, "CheckedAddRHS", dec(t, e, r), big.NewInt(255))

	_, err = e.CheckedAddRHS(b, big.NewInt(56))
	if !errors.Is(err, word.ErrArithmeticOverflow) {
		t.Errorf("CheckedAddRHS overflow: %v", err)
	}

	r, err = e.CheckedSubLHS(big.NewInt(201), b)
	if err != nil {
		t.Fatalf("CheckedSubLHS: %v", err)
	}
	checkEqual(t, "CheckedSubLHS", dec(t, e, r), big.NewInt(1))

	_, err = e.CheckedSubLHS(big.NewInt(199), b)
	if !errors.Is(err, word.ErrArithmeticOverflow) {
		t.Errorf("CheckedSubLHS overflow: %v", err)
	}

	r, err = e.CheckedMulLHS(big.NewInt(1), b)
	if err != nil {
		t.Fatalf("CheckedMulLHS: %v", err)
	}
	checkEqual(t, "CheckedMulLHS", dec(t, e, r), big.NewInt(200))

	_, err = e.CheckedMulRHS(b, big.NewInt(2))
	if !errors.Is(err, word.ErrArithmeticOverflow) {
		t.Errorf("CheckedMulRHS overflow: %v", err)
	}
}
