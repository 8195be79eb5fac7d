// Package cpu implements the pure-Go CPU numeric backend.
package cpu

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with scalar broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.binaryResult("add", a, b)
	as, bs := step(a), step(b)

	switch result.DType() {
	case tensor.Float32:
		addKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), as, bs)
	case tensor.Float64:
		addKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), as, bs)
	case tensor.Float16:
		addKernelF16(result.AsFloat16(), a.AsFloat16(), b.AsFloat16(), as, bs)
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", result.DType()))
	}
	return result
}

// Sub performs element-wise subtraction with scalar broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.binaryResult("sub", a, b)
	as, bs := step(a), step(b)

	switch result.DType() {
	case tensor.Float32:
		subKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), as, bs)
	case tensor.Float64:
		subKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), as, bs)
	case tensor.Float16:
		subKernelF16(result.AsFloat16(), a.AsFloat16(), b.AsFloat16(), as, bs)
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", result.DType()))
	}
	return result
}

// Div performs element-wise division with scalar broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.binaryResult("div", a, b)
	as, bs := step(a), step(b)

	switch result.DType() {
	case tensor.Float32:
		divKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), as, bs)
	case tensor.Float64:
		divKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), as, bs)
	case tensor.Float16:
		divKernelF16(result.AsFloat16(), a.AsFloat16(), b.AsFloat16(), as, bs)
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", result.DType()))
	}
	return result
}

// Neg returns the element-wise negation of x.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("neg: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		negKernel(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		negKernel(result.AsFloat64(), x.AsFloat64())
	case tensor.Float16:
		negKernelF16(result.AsFloat16(), x.AsFloat16())
	default:
		panic(fmt.Sprintf("neg: unsupported dtype %s", x.DType()))
	}
	return result
}

// Sum reduces all elements of x to a rank-0 scalar of the same dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumKernel(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumKernel(x.AsFloat64())
	case tensor.Float16:
		result.AsFloat16()[0] = sumKernelF16(x.AsFloat16())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

// Full creates a tensor of the given shape and dtype filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = value
	}

	result, err := tensor.FromFloat64s(data, shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("full: %v", err))
	}
	return result
}

// binaryResult allocates the output tensor for a binary kernel,
// resolving the broadcast shape: equal shapes pass through, a
// scalar-shaped operand takes the other operand's shape. Any other mix
// is programmer error; well-formed graphs validate shapes at node
// construction and never reach the panic.
func (cpu *CPUBackend) binaryResult(op string, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	var outShape tensor.Shape
	switch {
	case a.Shape().Equal(b.Shape()):
		outShape = a.Shape()
	case a.Shape().IsScalar():
		outShape = b.Shape()
	case b.Shape().IsScalar():
		outShape = a.Shape()
	default:
		panic(fmt.Sprintf("%s: shapes %v and %v are neither equal nor scalar-broadcastable",
			op, a.Shape(), b.Shape()))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// step returns the per-element index stride for an operand: 0 pins a
// scalar-shaped operand to its single element, 1 walks the buffer.
func step(t *tensor.RawTensor) int {
	if t.Shape().IsScalar() {
		return 0
	}
	return 1
}
