//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the mpint system.
package env

import (
	"crypto/rand"
	"io"
)

// Config defines the global system configuration for the mpint
// system. It configures system operation for all mpint modules.
// Config must not be modified after being passed to any mpint
// module. It is safe for concurrent use by multiple modules as they
// do not modify it.
type Config struct {
	Rand io.Reader
}

// GetRandom returns the source of entropy for key generation,
// secret randomness, and other cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}
