package tensor

// Backend is the numeric backend the graph engine computes with.
// It covers exactly the kernels the engine consumes: the elementwise
// arithmetic of the subtract node, negation and sum-reduction for its
// gradients, division for the broadcast-scalar mean, addition for
// gradient accumulation, and constant creation for seeds and cached
// scalars.
//
// Binary kernels broadcast a scalar-shaped operand (one element, any
// rank) against the other operand; any other shape mix is programmer
// error and panics. Nodes validate shapes at construction time, so a
// well-formed graph never reaches those panics.
//
// Implementations:
//   - cpu: pure Go kernels (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations (scalar broadcasting as above).
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise unary operations.
	Neg(x *RawTensor) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor // sum of all elements, rank-0 result

	// Constant creation.
	Full(shape Shape, dtype DataType, value float64) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
