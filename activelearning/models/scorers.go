package models

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scorer maps a feature vector to a real-valued score.
type Scorer interface {
	Evaluate([]float64) float64
}

// LinearScorer represents a linear function w·x + b.
type LinearScorer struct {
	Weights []float64
	Bias    float64
}

// Evaluate returns the inner product of the weights and the input feature vector plus the bias.
func (l *LinearScorer) Evaluate(features []float64) float64 {
	return floats.Dot(l.Weights, features) + l.Bias
}

// A Kernel represents a Mercer kernel function.
type Kernel interface {
	Evaluate(a, b []float64) float64
}

// LinearKernel is the plain inner product.
type LinearKernel struct{}

// Evaluate returns a·b.
func (LinearKernel) Evaluate(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// RbfKernel implements the radial basis function exp(-Gamma·|a-b|²).
type RbfKernel struct {
	Gamma float64
}

// Evaluate returns the result of RBF(a, b)
func (k RbfKernel) Evaluate(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-k.Gamma * d * d)
}

// offsetKernel adds a constant to another kernel, which lets a bias-free dual
// solver learn an intercept.
type offsetKernel struct {
	Kernel
	offset float64
}

func (k offsetKernel) Evaluate(a, b []float64) float64 {
	return k.Kernel.Evaluate(a, b) + k.offset
}

// KernelScorer computes scores as a weighted sum of kernel evaluations
// against a set of support vectors.
type KernelScorer struct {
	Support [][]float64 // the support vectors
	Coefs   []float64   // the coefficients for each support vector
	Kernel  Kernel
}

// Evaluate maps a feature vector to a score.
func (s *KernelScorer) Evaluate(features []float64) float64 {
	var score float64
	for i, c := range s.Coefs {
		score += c * s.Kernel.Evaluate(s.Support[i], features)
	}
	return score
}

// logSumExp computes log(sum(exp(xs))) without overflow.
func logSumExp(xs []float64) float64 {
	max := floats.Max(xs)
	if math.IsInf(max, 0) {
		return max
	}
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - max)
	}
	return max + math.Log(sum)
}

// softmax writes the normalized exponentials of z into out.
func softmax(z, out []float64) {
	lse := logSumExp(z)
	for i, v := range z {
		out[i] = math.Exp(v - lse)
	}
}
