package graph

import (
	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/internal/tensor"
)

// Tape drives the node contract: it holds operations in topological
// order, runs forward passes front to back and backward passes back to
// front, and releases every node on teardown. It does not reorder —
// callers append nodes in dependency order.
type Tape struct {
	ops []Operation
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{
		ops: make([]Operation, 0, 64),
	}
}

// Append adds an operation. Nodes must be appended in topological order.
func (t *Tape) Append(op Operation) {
	t.ops = append(t.ops, op)
}

// NumOps returns the number of recorded operations.
func (t *Tape) NumOps() int {
	return len(t.ops)
}

// Forward runs every node's forward pass in order, populating values.
// Stops at the first failure.
func (t *Tape) Forward(backend tensor.Backend, values *Values) error {
	klog.V(2).Infof("forward pass: %d nodes", len(t.ops))
	for _, op := range t.ops {
		if err := op.Forward(backend, values); err != nil {
			return err
		}
	}
	return nil
}

// Backward runs every node's backward pass in reverse order. The caller
// seeds grads with the gradient of the loss output before calling.
func (t *Tape) Backward(backend tensor.Backend, values, grads *Values, policy GradientPolicy) error {
	klog.V(2).Infof("backward pass: %d nodes", len(t.ops))
	for i := len(t.ops) - 1; i >= 0; i-- {
		if err := t.ops[i].Backward(backend, values, grads, policy); err != nil {
			return err
		}
	}
	return nil
}

// Release releases every node's cached state and empties the tape.
func (t *Tape) Release() {
	for _, op := range t.ops {
		op.Release()
	}
	t.ops = t.ops[:0]
}
