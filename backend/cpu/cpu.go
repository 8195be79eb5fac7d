// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the CPU numeric backend.
//
// Example:
//
//	backend := cpu.New()
//	result := backend.Sub(a, b)
package cpu

import (
	"github.com/ember-ml/ember/internal/backend/cpu"
)

// Backend implements tensor.Backend on the host CPU.
type Backend = cpu.CPUBackend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
