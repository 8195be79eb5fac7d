package graph

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Operation is one computation step of the graph. The driver calls
// Forward on every node in topological order, Backward in reverse order,
// and Release on teardown.
//
// Forward reads the node's input activations from values and writes its
// output activation; Backward reads the node's output gradient from
// grads and writes gradients for the inputs the policy requires. Both
// fail before any externally visible write when a required entry is
// absent. Every temporary either call allocates dies with the call; only
// tensors written into the maps survive.
type Operation interface {
	// Forward computes the output activation from the input activations.
	// Fails with MissingValueError when an input has no entry in values.
	Forward(backend tensor.Backend, values *Values) error

	// Backward computes input gradients from the output gradient.
	// Fails with MissingGradientError when the output has no entry in
	// grads. Inputs the policy does not require are left untouched — no
	// zero or placeholder gradients are written for them.
	Backward(backend tensor.Backend, values, grads *Values, policy GradientPolicy) error

	// Release disposes the node's private cached state. Idempotent.
	// Called on graph teardown or before rebuilding with new shapes.
	Release()

	// Inputs returns the node's input handles.
	Inputs() []*Handle

	// Output returns the node's output handle.
	Output() *Handle
}

// GradientPolicy is the driver's capability query: whether a given
// handle needs a gradient this pass. Nodes consult it per input and
// never own the answer.
type GradientPolicy interface {
	RequiresGrad(h *Handle) bool
}

// GradSet is a GradientPolicy backed by an explicit handle set.
type GradSet map[*Handle]struct{}

// NewGradSet builds a GradSet requiring gradients for the given handles.
func NewGradSet(handles ...*Handle) GradSet {
	gs := make(GradSet, len(handles))
	for _, h := range handles {
		gs[h] = struct{}{}
	}
	return gs
}

// RequiresGrad reports whether h is in the set.
func (gs GradSet) RequiresGrad(h *Handle) bool {
	_, ok := gs[h]
	return ok
}

// AllGrads is a GradientPolicy requiring gradients for every handle.
var AllGrads GradientPolicy = allGrads{}

type allGrads struct{}

func (allGrads) RequiresGrad(*Handle) bool { return true }
