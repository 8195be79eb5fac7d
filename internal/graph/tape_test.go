package graph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestTape_ForwardBackwardChain(t *testing.T) {
	backend := cpu.New()

	// e = (a - b) - d
	a := graph.MustHandle(tensor.Shape{2})
	b := graph.MustHandle(tensor.Shape{2})
	c := graph.MustHandle(tensor.Shape{2})
	d := graph.MustHandle(tensor.Shape{2})
	e := graph.MustHandle(tensor.Shape{2})

	tape := graph.NewTape()
	defer tape.Release()

	op1, err := graph.NewSub(a, b, c)
	require.NoError(t, err)
	tape.Append(op1)
	op2, err := graph.NewSub(c, d, e)
	require.NoError(t, err)
	tape.Append(op2)
	assert.Equal(t, 2, tape.NumOps())

	values := graph.NewValues()
	defer values.Release()
	values.Set(a, mustValue(t, []float32{5, 7}, tensor.Shape{2}))
	values.Set(b, mustValue(t, []float32{1, 2}, tensor.Shape{2}))
	values.Set(d, mustValue(t, []float32{3, 3}, tensor.Shape{2}))

	require.NoError(t, tape.Forward(backend, values))

	result, ok := values.Get(e)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, result.Float64s())

	grads := graph.NewValues()
	defer grads.Release()
	grads.Set(e, backend.Full(tensor.Shape{2}, tensor.Float32, 1))

	require.NoError(t, tape.Backward(backend, values, grads, graph.AllGrads))

	ga, ok := grads.Get(a)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 1}, ga.Float64s())

	gb, ok := grads.Get(b)
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -1}, gb.Float64s())

	gd, ok := grads.Get(d)
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -1}, gd.Float64s())
}

func TestTape_GradientAccumulationOnSharedInput(t *testing.T) {
	backend := cpu.New()

	// out1 = a - b, out2 = out1 - a: a contributes through both nodes.
	a := graph.MustHandle(tensor.Shape{2})
	b := graph.MustHandle(tensor.Shape{2})
	out1 := graph.MustHandle(tensor.Shape{2})
	out2 := graph.MustHandle(tensor.Shape{2})

	tape := graph.NewTape()
	defer tape.Release()

	op1, err := graph.NewSub(a, b, out1)
	require.NoError(t, err)
	tape.Append(op1)
	op2, err := graph.NewSub(out1, a, out2)
	require.NoError(t, err)
	tape.Append(op2)

	values := graph.NewValues()
	defer values.Release()
	values.Set(a, mustValue(t, []float32{5, 7}, tensor.Shape{2}))
	values.Set(b, mustValue(t, []float32{1, 2}, tensor.Shape{2}))
	require.NoError(t, tape.Forward(backend, values))

	grads := graph.NewValues()
	defer grads.Release()
	grads.Set(out2, backend.Full(tensor.Shape{2}, tensor.Float32, 1))

	require.NoError(t, tape.Backward(backend, values, grads, graph.AllGrads))

	// d(out2)/da = d((a-b)-a)/da = 1 - 1 = 0, accumulated across nodes.
	ga, ok := grads.Get(a)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0}, ga.Float64s())

	gb, ok := grads.Get(b)
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -1}, gb.Float64s())
}

func TestTape_BackwardWithoutSeedFails(t *testing.T) {
	backend := cpu.New()

	a := graph.MustHandle(tensor.Shape{2})
	b := graph.MustHandle(tensor.Shape{2})
	out := graph.MustHandle(tensor.Shape{2})

	tape := graph.NewTape()
	defer tape.Release()
	op, err := graph.NewSub(a, b, out)
	require.NoError(t, err)
	tape.Append(op)

	values := graph.NewValues()
	defer values.Release()
	grads := graph.NewValues()
	defer grads.Release()

	err = tape.Backward(backend, values, grads, graph.AllGrads)
	var missing *graph.MissingGradientError
	require.Error(t, err)
	assert.True(t, errors.As(err, &missing))
}

func TestTape_ReleaseEmptiesTape(t *testing.T) {
	a := graph.MustHandle(tensor.Shape{2})
	b := graph.MustHandle(tensor.Shape{2})
	out := graph.MustHandle(tensor.Shape{2})

	tape := graph.NewTape()
	op, err := graph.NewSub(a, b, out)
	require.NoError(t, err)
	tape.Append(op)

	tape.Release()
	assert.Equal(t, 0, tape.NumOps())
	// Releasing again is harmless.
	tape.Release()
}
