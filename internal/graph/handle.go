// Package graph implements the execution core of the computational
// graph engine: tensor handles, the value maps forward and backward
// passes write into, the operation-node contract, and the tape driver
// that walks nodes in order.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ember-ml/ember/internal/tensor"
)

// Handle identifies one tensor in the graph: an identity plus the shape
// it was declared with. A Handle owns no data; it is the key under which
// value maps store the materialized array. Two handles are distinct even
// when their shapes match — equality is pointer identity.
//
// Handles are created by the graph builder before any node references
// them and outlive every node that does.
type Handle struct {
	id    uuid.UUID
	shape tensor.Shape
}

// NewHandle declares a tensor identity with the given shape.
func NewHandle(shape tensor.Shape) (*Handle, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Handle{
		id:    uuid.New(),
		shape: shape.Clone(),
	}, nil
}

// MustHandle is NewHandle for shapes known to be valid; panics otherwise.
func MustHandle(shape tensor.Shape) *Handle {
	h, err := NewHandle(shape)
	if err != nil {
		panic(err)
	}
	return h
}

// Shape returns the declared shape.
func (h *Handle) Shape() tensor.Shape {
	return h.shape
}

// ID returns the handle's unique id.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// String formats the handle for diagnostics.
func (h *Handle) String() string {
	return fmt.Sprintf("handle(%s, shape=%v)", h.id.String()[:8], h.shape)
}
