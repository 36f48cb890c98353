//
// select.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wide

import (
	"fmt"

	"github.com/markkurossi/mpint/word"
)

// Select returns a if cond is true and b otherwise, without
// observable branching: the backend call sequence is the same for
// either outcome.
func (e *Evaluator) Select(cond Bool, a, b *Value) (*Value, error) {
	if err := typeCheck("Select", a, b); err != nil {
		return nil, err
	}
	if cond.w == nil {
		return nil, fmt.Errorf("wide: Select: undefined condition")
	}
	n := a.typ.Limbs()
	limbs := make([]word.Word, n)
	for i := 0; i < n; i++ {
		w, err := e.b.Mux(cond.w, a.limbs[i], b.limbs[i])
		if err != nil {
			return nil, fmt.Errorf("wide: Select: %w", err)
		}
		limbs[i] = w
	}
	fit := a.fit
	if b.fit > fit {
		fit = b.fit
	}
	return newValue(a.typ, limbs, fit), nil
}

// DecryptBool reveals the plaintext value of a secret boolean.
func (e *Evaluator) DecryptBool(cond Bool) (bool, error) {
	if cond.w == nil {
		return false, fmt.Errorf("wide: DecryptBool: undefined condition")
	}
	v, err := e.b.Decrypt(cond.w)
	if err != nil {
		return false, fmt.Errorf("wide: DecryptBool: %w", err)
	}
	return v != 0, nil
}
