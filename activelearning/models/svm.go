package models

import (
	"math"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/golib/errors"
)

// SVM is a one-vs-rest support vector classifier trained by dual coordinate
// descent on the hinge loss. The intercept is learned through a constant
// kernel offset. Coordinates are swept in index order, so training is
// deterministic.
type SVM struct {
	// C bounds each dual variable.
	C float64
	// Kernel is the kernel function. A nil Kernel means RBF.
	Kernel Kernel
	// Gamma is the RBF width used when Kernel is nil; 0 means 1/dim.
	Gamma float64
	// MaxIter bounds the number of sweeps per binary machine.
	MaxIter int
	// Tol stops a machine once the largest projected gradient is below it.
	Tol float64

	classes []int
	dim     int
	scorers []*KernelScorer
}

// NewSVM returns an RBF SVM with C=1 and gamma=1/dim.
func NewSVM() *SVM {
	return &SVM{
		C:       1,
		MaxIter: 1000,
		Tol:     1e-3,
	}
}

// NewLinearSVM returns a linear-kernel SVM with C=1.
func NewLinearSVM() *SVM {
	s := NewSVM()
	s.Kernel = LinearKernel{}
	return s
}

// Classes implements Model.
func (s *SVM) Classes() []int {
	return append([]int(nil), s.classes...)
}

func (s *SVM) kernel(dim int) Kernel {
	if s.Kernel != nil {
		return s.Kernel
	}
	gamma := s.Gamma
	if gamma <= 0 {
		gamma = 1
		if dim > 0 {
			gamma = 1 / float64(dim)
		}
	}
	return RbfKernel{Gamma: gamma}
}

// Train implements Model.
func (s *SVM) Train(ds *dataset.Dataset) error {
	s.classes, s.scorers = nil, nil
	if s.C <= 0 {
		return errors.Configf("svm C must be positive, got %v", s.C)
	}
	X, y, classes, err := trainingSet(ds)
	if err != nil {
		return err
	}

	k := offsetKernel{Kernel: s.kernel(ds.Dim()), offset: 1}
	n := len(X)
	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := k.Evaluate(X[i], X[j])
			gram[i][j] = v
			gram[j][i] = v
		}
	}

	// two classes need a single machine for the second class
	positives := classes
	if len(classes) == 2 {
		positives = classes[1:]
	}
	scorers := make([]*KernelScorer, len(positives))
	signs := make([]float64, n)
	for m, pos := range positives {
		for i, label := range y {
			signs[i] = -1
			if label == pos {
				signs[i] = 1
			}
		}
		alpha := s.solveDual(gram, signs)

		scorer := &KernelScorer{Kernel: k}
		for i, a := range alpha {
			if a > 0 {
				scorer.Support = append(scorer.Support, X[i])
				scorer.Coefs = append(scorer.Coefs, a*signs[i])
			}
		}
		scorers[m] = scorer
	}

	s.classes = classes
	s.dim = ds.Dim()
	s.scorers = scorers
	return nil
}

// solveDual minimizes ½αᵀQα - Σα subject to 0 ≤ α ≤ C, where
// Q_ij = y_i·y_j·K(x_i, x_j).
func (s *SVM) solveDual(gram [][]float64, signs []float64) []float64 {
	n := len(signs)
	alpha := make([]float64, n)
	// f[i] = Σ_j α_j·y_j·K(x_i, x_j)
	f := make([]float64, n)

	for iter := 0; iter < s.MaxIter; iter++ {
		var maxViolation float64
		for i := 0; i < n; i++ {
			g := signs[i]*f[i] - 1
			pg := g
			switch {
			case alpha[i] == 0:
				pg = math.Min(g, 0)
			case alpha[i] == s.C:
				pg = math.Max(g, 0)
			}
			maxViolation = math.Max(maxViolation, math.Abs(pg))
			if pg == 0 {
				continue
			}
			old := alpha[i]
			alpha[i] = math.Min(math.Max(old-g/gram[i][i], 0), s.C)
			delta := (alpha[i] - old) * signs[i]
			if delta == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				f[j] += delta * gram[i][j]
			}
		}
		if maxViolation < s.Tol {
			break
		}
	}
	return alpha
}

func (s *SVM) decisions(X []dataset.Vector) ([][]float64, error) {
	if s.scorers == nil {
		return nil, errors.WithKind(errors.KindModel, ErrNotTrained)
	}
	if err := checkDims(X, s.dim); err != nil {
		return nil, err
	}
	out := make([][]float64, len(X))
	for i, x := range X {
		if len(s.classes) == 2 {
			d := s.scorers[0].Evaluate(x)
			out[i] = []float64{-d, d}
			continue
		}
		row := make([]float64, len(s.scorers))
		for c, scorer := range s.scorers {
			row[c] = scorer.Evaluate(x)
		}
		out[i] = row
	}
	return out, nil
}

// PredictReal implements ContinuousModel.
func (s *SVM) PredictReal(X []dataset.Vector) ([][]float64, error) {
	return s.decisions(X)
}

// Predict implements Model.
func (s *SVM) Predict(X []dataset.Vector) ([]int, error) {
	d, err := s.decisions(X)
	if err != nil {
		return nil, err
	}
	return argmaxClasses(d, s.classes), nil
}

// Score implements Model.
func (s *SVM) Score(ds *dataset.Dataset) (float64, error) {
	return score(s, ds)
}
