// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for Ember's execution core:
// reverse-mode automatic differentiation over dense tensors.
//
// A graph is a set of tensor Handles connected by Operations. The Tape
// drives execution: forward in topological order, backward in reverse.
// Value maps carry activations and gradients keyed by handle; scoped
// allocation guarantees temporaries die with the pass that created them.
//
// Example:
//
//	a := graph.MustHandle(tensor.Shape{3})
//	b := graph.MustHandle(tensor.Shape{3})
//	out := graph.MustHandle(tensor.Shape{3})
//
//	op, err := graph.NewSub(a, b, out)
//	if err != nil {
//	    return err
//	}
//	tape := graph.NewTape()
//	tape.Append(op)
//	defer tape.Release()
//
//	values := graph.NewValues()
//	defer values.Release()
//	// ... populate values for a and b ...
//	if err := tape.Forward(backend, values); err != nil {
//	    return err
//	}
package graph

import (
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

// Handle identifies one tensor in the graph: identity plus declared
// shape. Equality is identity-based.
type Handle = graph.Handle

// NewHandle declares a tensor identity with the given shape.
func NewHandle(shape tensor.Shape) (*Handle, error) {
	return graph.NewHandle(shape)
}

// MustHandle is NewHandle for shapes known to be valid; panics otherwise.
func MustHandle(shape tensor.Shape) *Handle {
	return graph.MustHandle(shape)
}

// Values maps handles to materialized tensors and owns what it stores.
type Values = graph.Values

// NewValues creates an empty value map.
func NewValues() *Values {
	return graph.NewValues()
}

// Operation is the node contract: Forward, Backward, Release.
type Operation = graph.Operation

// GradientPolicy is the driver's per-handle "requires gradient" query.
type GradientPolicy = graph.GradientPolicy

// GradSet is a GradientPolicy backed by an explicit handle set.
type GradSet = graph.GradSet

// NewGradSet builds a GradSet requiring gradients for the given handles.
func NewGradSet(handles ...*Handle) GradSet {
	return graph.NewGradSet(handles...)
}

// AllGrads requires gradients for every handle.
var AllGrads = graph.AllGrads

// SubOp computes out = a − b with scalar broadcasting.
type SubOp = graph.SubOp

// NewSub validates operand shapes and creates a subtraction node.
func NewSub(a, b, out *Handle) (*SubOp, error) {
	return graph.NewSub(a, b, out)
}

// Tape drives forward and backward passes over nodes in order.
type Tape = graph.Tape

// NewTape creates an empty tape.
func NewTape() *Tape {
	return graph.NewTape()
}

// Error kinds surfaced by the engine.
type (
	// ShapeMismatchError is raised at node construction for
	// incompatible operand shapes.
	ShapeMismatchError = graph.ShapeMismatchError

	// MissingValueError is raised in Forward when an input activation
	// is absent.
	MissingValueError = graph.MissingValueError

	// MissingGradientError is raised in Backward when the output
	// gradient is absent.
	MissingGradientError = graph.MissingGradientError
)
