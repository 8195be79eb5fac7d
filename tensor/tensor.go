// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for Ember's dense array values.
//
// The package defines the types the graph engine computes with:
//   - RawTensor: a reference-counted dense buffer plus its shape
//   - Shape, DataType, Device: core type definitions
//   - Backend: the numeric backend interface the engine consumes
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
//	defer t.Release()
package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// DType is a constraint for the element types tensors can be created from.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// The empty shape denotes a rank-0 scalar.
type Shape = tensor.Shape

// RawTensor is a dense buffer of numeric elements plus the shape it was
// produced with. Ownership is reference-counted: Clone adds a reference,
// Release drops one.
type RawTensor = tensor.RawTensor

// Backend is the numeric backend the graph engine computes with.
type Backend = tensor.Backend

// NewRaw creates a zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a flat data slice and a shape.
func FromSlice[T DType](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// FromFloat64s creates a tensor of the given dtype from float64 data,
// narrowing as needed.
func FromFloat64s(data []float64, shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.FromFloat64s(data, shape, dtype, device)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype, device)
}
