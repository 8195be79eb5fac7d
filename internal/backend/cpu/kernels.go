package cpu

import (
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"
)

// Flat loops over contiguous row-major buffers. Binary kernels take a
// per-operand index step: 0 broadcasts a scalar operand, 1 walks the
// buffer elementwise.

func addKernel[T constraints.Float](dst, a, b []T, as, bs int) {
	for i := range dst {
		dst[i] = a[i*as] + b[i*bs]
	}
}

func subKernel[T constraints.Float](dst, a, b []T, as, bs int) {
	for i := range dst {
		dst[i] = a[i*as] - b[i*bs]
	}
}

func divKernel[T constraints.Float](dst, a, b []T, as, bs int) {
	for i := range dst {
		dst[i] = a[i*as] / b[i*bs]
	}
}

func negKernel[T constraints.Float](dst, x []T) {
	for i := range dst {
		dst[i] = -x[i]
	}
}

func sumKernel[T constraints.Float](x []T) T {
	var sum T
	for _, v := range x {
		sum += v
	}
	return sum
}

// Float16 lanes compute in float32 and narrow on store.

func addKernelF16(dst, a, b []float16.Float16, as, bs int) {
	for i := range dst {
		dst[i] = float16.Fromfloat32(a[i*as].Float32() + b[i*bs].Float32())
	}
}

func subKernelF16(dst, a, b []float16.Float16, as, bs int) {
	for i := range dst {
		dst[i] = float16.Fromfloat32(a[i*as].Float32() - b[i*bs].Float32())
	}
}

func divKernelF16(dst, a, b []float16.Float16, as, bs int) {
	for i := range dst {
		dst[i] = float16.Fromfloat32(a[i*as].Float32() / b[i*bs].Float32())
	}
}

func negKernelF16(dst, x []float16.Float16) {
	for i := range dst {
		dst[i] = float16.Fromfloat32(-x[i].Float32())
	}
}

func sumKernelF16(x []float16.Float16) float16.Float16 {
	var sum float32
	for _, v := range x {
		sum += v.Float32()
	}
	return float16.Fromfloat32(sum)
}
