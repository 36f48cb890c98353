//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command widecalc evaluates fixed-width integer operations on the
// simulator backend and reports the backend primitive counts:
//
//	widecalc -t u128 -op add 0xffffffffffffffff 1
//	widecalc -t i8 -op div -100 7
//	widecalc -t u256 -op shl 1 200
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/markkurossi/mpint/env"
	"github.com/markkurossi/mpint/logger"
	"github.com/markkurossi/mpint/sim"
	"github.com/markkurossi/mpint/types"
	"github.com/markkurossi/mpint/wide"
)

func main() {
	typeName := flag.String("t", "u64", "Operand type")
	opName := flag.String("op", "add", "Operation")
	checked := flag.Bool("checked", false, "Fail on overflow")
	stats := flag.Bool("stats", false, "Print backend call statistics")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if !*verbose {
		logger.Disable()
	}

	typ, err := types.Parse(*typeName)
	if err != nil {
		fmt.Printf("Invalid type '%s': %s\n", *typeName, err)
		os.Exit(1)
	}

	backend, err := sim.New(&env.Config{})
	if err != nil {
		fmt.Printf("Failed to create backend: %s\n", err)
		os.Exit(1)
	}
	e := wide.New(backend)

	err = compute(e, typ, *opName, *checked, flag.Args())
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
	if *stats {
		backend.Stats().Report(os.Stdout)
	}
}

func operand(e *wide.Evaluator, typ types.Info, arg string) (
	*wide.Value, error) {

	x, ok := new(big.Int).SetString(arg, 0)
	if !ok {
		return nil, fmt.Errorf("invalid operand '%s'", arg)
	}
	return e.SetPublic(x, typ)
}

func compute(e *wide.Evaluator, typ types.Info, op string,
	checked bool, args []string) error {

	unary := map[string]func(*wide.Value) (*wide.Value, error){
		"neg": e.Neg,
	}
	binary := map[string]func(a, b *wide.Value) (*wide.Value, error){
		"add": e.Add,
		"sub": e.Sub,
		"mul": e.Mul,
		"div": e.Div,
		"rem": e.Rem,
		"and": e.And,
		"or":  e.Or,
		"xor": e.Xor,
		"min": e.Min,
		"max": e.Max,
	}
	if checked {
		binary["add"] = e.CheckedAdd
		binary["sub"] = e.CheckedSub
		binary["mul"] = e.CheckedMul
	}
	compare := map[string]func(a, b *wide.Value) (wide.Bool, error){
		"eq": e.Eq,
		"ne": e.Ne,
		"lt": e.Lt,
		"le": e.Le,
		"gt": e.Gt,
		"ge": e.Ge,
	}
	shift := map[string]func(a *wide.Value, amount uint) (
		*wide.Value, error){
		"shl": e.Shl,
		"shr": e.Shr,
	}

	if f, ok := unary[op]; ok {
		if len(args) != 1 {
			return fmt.Errorf("operation %s takes one operand", op)
		}
		a, err := operand(e, typ, args[0])
		if err != nil {
			return err
		}
		r, err := f(a)
		if err != nil {
			return err
		}
		return printValue(e, r)
	}
	if len(args) != 2 {
		return fmt.Errorf("operation %s takes two operands", op)
	}
	a, err := operand(e, typ, args[0])
	if err != nil {
		return err
	}

	if f, ok := shift[op]; ok {
		amount, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid shift amount '%s'", args[1])
		}
		r, err := f(a, uint(amount))
		if err != nil {
			return err
		}
		return printValue(e, r)
	}

	b, err := operand(e, typ, args[1])
	if err != nil {
		return err
	}
	if f, ok := binary[op]; ok {
		r, err := f(a, b)
		if err != nil {
			return err
		}
		return printValue(e, r)
	}
	if f, ok := compare[op]; ok {
		cond, err := f(a, b)
		if err != nil {
			return err
		}
		result, err := e.DecryptBool(cond)
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", result)
		return nil
	}
	return fmt.Errorf("unknown operation '%s'", op)
}

func printValue(e *wide.Evaluator, v *wide.Value) error {
	x, err := e.Decrypt(v)
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", x)
	return nil
}
