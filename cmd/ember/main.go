// Package main provides the Ember engine CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/backend/cpu"
	"github.com/ember-ml/ember/graph"
	"github.com/ember-ml/ember/tensor"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() > 0 {
		switch flag.Arg(0) {
		case "version":
			fmt.Printf("Ember %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "demo: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Ember - execution core for reverse-mode autodiff")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run a forward/backward pass over a small graph")
}

// demo differentiates e = (a - b) - d and prints the gradients.
func demo() error {
	backend := cpu.New()

	a := graph.MustHandle(tensor.Shape{3})
	b := graph.MustHandle(tensor.Shape{3})
	c := graph.MustHandle(tensor.Shape{3})
	d := graph.MustHandle(tensor.Shape{1})
	e := graph.MustHandle(tensor.Shape{3})

	tape := graph.NewTape()
	defer tape.Release()

	op1, err := graph.NewSub(a, b, c)
	if err != nil {
		return err
	}
	tape.Append(op1)

	op2, err := graph.NewSub(c, d, e)
	if err != nil {
		return err
	}
	tape.Append(op2)

	values := graph.NewValues()
	defer values.Release()

	va, err := tensor.FromSlice([]float32{5, 7, 9}, tensor.Shape{3}, backend.Device())
	if err != nil {
		return err
	}
	values.Set(a, va)

	vb, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend.Device())
	if err != nil {
		return err
	}
	values.Set(b, vb)

	vd, err := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend.Device())
	if err != nil {
		return err
	}
	values.Set(d, vd)

	if err := tape.Forward(backend, values); err != nil {
		return err
	}
	result, _ := values.Get(e)
	fmt.Printf("e = (a - b) - d = %v\n", result.Float64s())

	grads := graph.NewValues()
	defer grads.Release()
	grads.Set(e, backend.Full(tensor.Shape{3}, tensor.Float32, 1))

	if err := tape.Backward(backend, values, grads, graph.AllGrads); err != nil {
		return err
	}

	for _, entry := range []struct {
		name   string
		handle *graph.Handle
	}{{"a", a}, {"b", b}, {"d", d}} {
		g, ok := grads.Get(entry.handle)
		if !ok {
			continue
		}
		fmt.Printf("de/d%s = %v\n", entry.name, g.Float64s())
	}
	return nil
}
