package graph

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/tensor"
)

// The engine performs no retries and no local recovery: all three error
// kinds are programmer or ordering bugs, surfaced with stacks to the
// driver, which decides whether to abort the execution.

// ShapeMismatchError reports two operand shapes that are neither equal
// nor scalar-broadcastable. Raised at node construction, never later.
type ShapeMismatchError struct {
	Left, Right tensor.Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %v and %v are neither equal nor scalar-broadcastable",
		e.Left, e.Right)
}

// MissingValueError reports a forward input whose activation was absent
// from the value map: the driver called nodes out of topological order.
type MissingValueError struct {
	Handle *Handle
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing forward value for %s", e.Handle)
}

// MissingGradientError reports a node whose output gradient was absent
// from the gradient map: the driver called backward before forward, or
// out of reverse-topological order.
type MissingGradientError struct {
	Handle *Handle
}

func (e *MissingGradientError) Error() string {
	return fmt.Sprintf("missing output gradient for %s", e.Handle)
}

func errShapeMismatch(left, right tensor.Shape) error {
	return errors.WithStack(&ShapeMismatchError{Left: left.Clone(), Right: right.Clone()})
}

func errMissingValue(h *Handle) error {
	return errors.WithStack(&MissingValueError{Handle: h})
}

func errMissingGradient(h *Handle) error {
	return errors.WithStack(&MissingGradientError{Handle: h})
}
