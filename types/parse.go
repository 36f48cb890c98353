//
// parse.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reSized = regexp.MustCompilePOSIX(`^([[:alpha:]]+)([[:digit:]]+)$`)
)

// Parse parses a type definition and returns its type information.
// Accepted forms are the long and short type names followed by a
// supported width, e.g. "uint128", "u128", "int64", "i64".
func Parse(val string) (info Info, err error) {
	m := reSized.FindStringSubmatch(val)
	if m == nil {
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	switch m[1] {
	case "i", "int":
		info.Type = TInt

	case "u", "uint":
		info.Type = TUint

	default:
		return info, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	bits, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return info, err
	}
	info.Bits = Size(bits)
	if !info.Valid() {
		return Undefined, fmt.Errorf("types.Parse: unsupported width: %s",
			val)
	}
	return info, nil
}
