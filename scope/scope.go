// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scope provides the public API for scoped buffer ownership.
// Operation implementations compute through a Scope so that every
// temporary dies with the call and only explicitly kept results survive.
//
// Example:
//
//	sc := scope.Enter(backend)
//	defer sc.Close()
//	result := sc.Keep(sc.Sub(a, b)) // caller owns result
package scope

import (
	"github.com/ember-ml/ember/internal/scope"
	"github.com/ember-ml/ember/internal/tensor"
)

// Scope tracks backend allocations and releases unkept ones on Close.
// It implements tensor.Backend by delegation.
type Scope = scope.Scope

// Enter opens a new allocation scope over the given backend.
func Enter(backend tensor.Backend) *Scope {
	return scope.Enter(backend)
}
