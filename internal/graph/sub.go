package graph

import (
	"github.com/ember-ml/ember/internal/scope"
	"github.com/ember-ml/ember/internal/tensor"
)

// SubOp computes out = a − b elementwise, broadcasting a scalar-shaped
// operand against the other.
//
// Backward pass:
//   - full-shape left operand: grad_a = dy
//   - full-shape right operand: grad_b = −dy
//   - scalar operand: the broadcast is undone by reducing dy to its
//     mean, sum(dy) / count(dy), negated for the right operand. The
//     divisor is computed once and cached on the node across backward
//     calls.
type SubOp struct {
	a, b, out *Handle
	aScalar   bool
	bScalar   bool

	// count caches the divisor for broadcast-scalar gradients. Created
	// lazily on first backward use, disposed exactly once by Release.
	count *tensor.RawTensor
}

// NewSub validates operand shapes and creates the node. Fails with
// ShapeMismatchError when neither operand is scalar-shaped and the
// shapes differ, or when the output handle's shape does not match the
// broadcast result.
func NewSub(a, b, out *Handle) (*SubOp, error) {
	aScalar := a.Shape().IsScalar()
	bScalar := b.Shape().IsScalar()

	if !aScalar && !bScalar && !a.Shape().Equal(b.Shape()) {
		return nil, errShapeMismatch(a.Shape(), b.Shape())
	}

	// Result shape is the non-scalar operand's (either, when both are
	// scalar).
	want := a.Shape()
	if aScalar && !bScalar {
		want = b.Shape()
	}
	if !out.Shape().Equal(want) && !(aScalar && bScalar && out.Shape().IsScalar()) {
		return nil, errShapeMismatch(want, out.Shape())
	}

	return &SubOp{a: a, b: b, out: out, aScalar: aScalar, bScalar: bScalar}, nil
}

// Inputs returns the input handles [a, b].
func (op *SubOp) Inputs() []*Handle {
	return []*Handle{op.a, op.b}
}

// Output returns the output handle.
func (op *SubOp) Output() *Handle {
	return op.out
}

// Forward computes a − b and stores it under the output handle. Only the
// result outlives the call; intermediates die with the scope.
func (op *SubOp) Forward(backend tensor.Backend, values *Values) error {
	va, ok := values.Get(op.a)
	if !ok {
		return errMissingValue(op.a)
	}
	vb, ok := values.Get(op.b)
	if !ok {
		return errMissingValue(op.b)
	}

	sc := scope.Enter(backend)
	defer sc.Close()

	values.Set(op.out, sc.Keep(sc.Sub(va, vb)))
	return nil
}

// Backward propagates the output gradient to whichever inputs the policy
// requires. Inputs the policy rejects are never written.
func (op *SubOp) Backward(backend tensor.Backend, values, grads *Values, policy GradientPolicy) error {
	dy, ok := grads.Get(op.out)
	if !ok {
		return errMissingGradient(op.out)
	}

	sc := scope.Enter(backend)
	defer sc.Close()

	if policy.RequiresGrad(op.a) {
		var ga *tensor.RawTensor
		if op.aScalar {
			ga = sc.Keep(sc.Div(sc.Sum(dy), op.divisor(backend, dy)))
		} else {
			ga = dy.Clone()
		}
		grads.Accumulate(backend, op.a, ga)
	}

	if policy.RequiresGrad(op.b) {
		var gb *tensor.RawTensor
		if op.bScalar {
			gb = sc.Keep(sc.Neg(sc.Div(sc.Sum(dy), op.divisor(backend, dy))))
		} else {
			gb = sc.Keep(sc.Neg(dy))
		}
		grads.Accumulate(backend, op.b, gb)
	}

	return nil
}

// divisor returns the cached element-count scalar, creating it on first
// use. It is allocated outside any scope: it must survive across
// backward calls until Release.
func (op *SubOp) divisor(backend tensor.Backend, dy *tensor.RawTensor) *tensor.RawTensor {
	if op.count == nil {
		op.count = backend.Full(tensor.Shape{}, dy.DType(), float64(dy.NumElements()))
	}
	return op.count
}

// Release disposes the cached divisor. Safe to call repeatedly; only the
// first call after creation releases it.
func (op *SubOp) Release() {
	if op.count != nil {
		op.count.Release()
		op.count = nil
	}
}
