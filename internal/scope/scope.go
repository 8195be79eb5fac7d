// Package scope provides scoped ownership of backend allocations.
//
// Every tensor a numeric backend produces during a forward or backward
// call must die with the call unless it is explicitly kept. A Scope
// decorates a tensor.Backend, tracks every tensor its kernels return,
// and releases the unkept ones on Close:
//
//	sc := scope.Enter(backend)
//	defer sc.Close()
//	sum := sc.Sum(dy)              // temporary, dies with the scope
//	grad := sc.Keep(sc.Div(sum, n)) // survives, caller owns it
//
// Close runs on every exit path when deferred, including early error
// returns, and is idempotent.
package scope

import (
	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/internal/tensor"
)

// Scope wraps a Backend and tracks the tensors its operations allocate.
// It implements tensor.Backend, so node code computes through the scope
// exactly as it would through the bare backend.
//
// A Scope is single-threaded, like the passes it serves.
type Scope struct {
	inner   tensor.Backend
	tracked []*tensor.RawTensor
	kept    map[*tensor.RawTensor]struct{}
	closed  bool
}

// Enter opens a new allocation scope over the given backend.
func Enter(backend tensor.Backend) *Scope {
	return &Scope{
		inner: backend,
		kept:  make(map[*tensor.RawTensor]struct{}),
	}
}

// Keep exempts t from this scope's cleanup, transferring ownership to
// the caller. Returns t for chaining.
func (s *Scope) Keep(t *tensor.RawTensor) *tensor.RawTensor {
	s.kept[t] = struct{}{}
	return t
}

// Close releases every tracked tensor that was not kept. Safe to call
// more than once; only the first call releases anything.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	released := 0
	bytes := 0
	for _, t := range s.tracked {
		if _, ok := s.kept[t]; ok {
			continue
		}
		bytes += t.ByteSize()
		t.Release()
		released++
	}
	if released > 0 && klog.V(2).Enabled() {
		klog.V(2).Infof("scope closed: released %d buffers (%s), kept %d",
			released, humanize.IBytes(uint64(bytes)), len(s.kept))
	}
	s.tracked = nil
}

// Outstanding returns the number of tracked tensors that would be
// released if the scope closed now. Leak assertions in tests check that
// this is zero after a pass, minus explicitly kept results.
func (s *Scope) Outstanding() int {
	if s.closed {
		return 0
	}
	n := 0
	for _, t := range s.tracked {
		if _, ok := s.kept[t]; !ok {
			n++
		}
	}
	return n
}

// track registers a backend result with the scope.
func (s *Scope) track(t *tensor.RawTensor) *tensor.RawTensor {
	s.tracked = append(s.tracked, t)
	return t
}

// Add performs element-wise addition; the result is scope-tracked.
func (s *Scope) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return s.track(s.inner.Add(a, b))
}

// Sub performs element-wise subtraction; the result is scope-tracked.
func (s *Scope) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return s.track(s.inner.Sub(a, b))
}

// Div performs element-wise division; the result is scope-tracked.
func (s *Scope) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return s.track(s.inner.Div(a, b))
}

// Neg negates element-wise; the result is scope-tracked.
func (s *Scope) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return s.track(s.inner.Neg(x))
}

// Sum reduces to a scalar; the result is scope-tracked.
func (s *Scope) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return s.track(s.inner.Sum(x))
}

// Full creates a constant tensor; the result is scope-tracked.
func (s *Scope) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	return s.track(s.inner.Full(shape, dtype, value))
}

// Name returns the decorated backend name.
func (s *Scope) Name() string {
	return "Scoped(" + s.inner.Name() + ")"
}

// Device returns the compute device of the wrapped backend.
func (s *Scope) Device() tensor.Device {
	return s.inner.Device()
}
