package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogSumExp(t *testing.T) {
	a := math.Log(3)
	b := math.Log(10)
	c := math.Log(21)

	act := logSumExp([]float64{a, b, c})
	assert.InDelta(t, math.Log(34), act, 1e-12)

	d := 1000000.0
	act = logSumExp([]float64{a, b, c, d})
	assert.Equal(t, d, act)
}

func TestSoftmax(t *testing.T) {
	out := make([]float64, 3)
	softmax([]float64{1000, 1000, 1000}, out)
	for _, p := range out {
		assert.InDelta(t, 1.0/3, p, 1e-12)
	}
}

func TestLinearScorer(t *testing.T) {
	s := &LinearScorer{Weights: []float64{1, -2}, Bias: 0.5}
	assert.Equal(t, 1-4+0.5, s.Evaluate([]float64{1, 2}))
}

func TestRbfKernel(t *testing.T) {
	k := RbfKernel{Gamma: 0.5}
	assert.Equal(t, 1.0, k.Evaluate([]float64{1, 2}, []float64{1, 2}))
	assert.InDelta(t, math.Exp(-0.5*2), k.Evaluate([]float64{0, 0}, []float64{1, 1}), 1e-12)
}

func TestKernelScorer(t *testing.T) {
	s := &KernelScorer{
		Support: [][]float64{{1, 0}, {0, 1}},
		Coefs:   []float64{2, -1},
		Kernel:  offsetKernel{Kernel: LinearKernel{}, offset: 1},
	}
	// 2·(1+1) - 1·(0+1)
	assert.Equal(t, 3.0, s.Evaluate([]float64{1, 0}))
}
