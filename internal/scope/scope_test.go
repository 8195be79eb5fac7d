package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/scope"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestScope_ReleasesTemporaries(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	defer x.Release()

	sc := scope.Enter(backend)
	neg := sc.Neg(x)
	sum := sc.Sum(x)
	assert.Equal(t, 2, sc.Outstanding())

	sc.Close()

	assert.True(t, neg.Released())
	assert.True(t, sum.Released())
	assert.False(t, x.Released(), "scope must not touch tensors it did not produce")
}

func TestScope_KeepTransfersOwnership(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	defer x.Release()

	sc := scope.Enter(backend)
	sum := sc.Sum(x)
	kept := sc.Keep(sc.Neg(x))
	assert.Equal(t, 1, sc.Outstanding())

	sc.Close()

	assert.True(t, sum.Released())
	require.False(t, kept.Released(), "kept tensor must survive the scope")
	assert.Equal(t, []float64{-1, -2, -3}, kept.Float64s())
	kept.Release()
}

func TestScope_CloseIdempotent(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	defer x.Release()

	sc := scope.Enter(backend)
	neg := sc.Neg(x)
	sc.Close()
	require.True(t, neg.Released())

	// A second Close must not double-release.
	sc.Close()
	assert.Equal(t, 0, sc.Outstanding())
}

func TestScope_CleanupOnPanicExit(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	defer x.Release()

	var temp *tensor.RawTensor
	func() {
		sc := scope.Enter(backend)
		defer sc.Close()
		defer func() { _ = recover() }()

		temp = sc.Neg(x)
		panic("mid-pass failure")
	}()

	assert.True(t, temp.Released(), "deferred Close must run on panic exits")
}

func TestScope_ImplementsBackend(t *testing.T) {
	var _ tensor.Backend = scope.Enter(cpu.New())

	sc := scope.Enter(cpu.New())
	defer sc.Close()
	assert.Equal(t, "Scoped(CPU)", sc.Name())
	assert.Equal(t, tensor.CPU, sc.Device())
}
