package graph

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Values maps tensor handles to their materialized arrays. One instance
// holds forward activations, a second holds backward gradients.
//
// Values owns the tensors it stores: setting over an existing entry
// releases the old value, and Release drops everything left. Callers
// transfer ownership on Set/Accumulate and must not release a tensor
// after handing it over.
type Values struct {
	entries map[*Handle]*tensor.RawTensor
}

// NewValues creates an empty value map.
func NewValues() *Values {
	return &Values{
		entries: make(map[*Handle]*tensor.RawTensor),
	}
}

// Get returns the value stored for h, if any.
func (v *Values) Get(h *Handle) (*tensor.RawTensor, bool) {
	t, ok := v.entries[h]
	return t, ok
}

// Set stores t under h, taking ownership. An overwritten entry is
// released.
func (v *Values) Set(h *Handle, t *tensor.RawTensor) {
	if old, ok := v.entries[h]; ok {
		old.Release()
	}
	v.entries[h] = t
}

// Accumulate adds g into the gradient stored for h, or stores g when h
// has none. Both the previous entry's and g's references are consumed by
// the addition path. This is how gradients from several consumers of the
// same handle combine during a backward pass.
func (v *Values) Accumulate(backend tensor.Backend, h *Handle, g *tensor.RawTensor) {
	existing, ok := v.entries[h]
	if !ok {
		v.entries[h] = g
		return
	}
	sum := backend.Add(existing, g)
	existing.Release()
	g.Release()
	v.entries[h] = sum
}

// Owns reports whether t is currently stored under any handle.
func (v *Values) Owns(t *tensor.RawTensor) bool {
	for _, stored := range v.entries {
		if stored == t {
			return true
		}
	}
	return false
}

// Len returns the number of stored entries.
func (v *Values) Len() int {
	return len(v.entries)
}

// Release drops every stored tensor and empties the map.
func (v *Values) Release() {
	for h, t := range v.entries {
		t.Release()
		delete(v.entries, h)
	}
}
