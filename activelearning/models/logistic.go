package models

import (
	"math"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/golib/errors"
)

// LogisticRegression is an L2-regularized multinomial logistic regression
// classifier fit by full-batch gradient descent. It minimizes
//
//	C·Σ crossentropy(x_i, y_i) + ½·|W|²
//
// with an unpenalized intercept. The step size is the inverse of a bound on
// the gradient's Lipschitz constant, so fitting needs no tuning and is
// deterministic.
type LogisticRegression struct {
	// C is the inverse regularization strength.
	C float64
	// MaxIter bounds the number of gradient steps.
	MaxIter int
	// Tol stops fitting once every gradient component is below it.
	Tol float64

	classes []int
	dim     int
	scorers []*LinearScorer
}

// NewLogisticRegression returns a LogisticRegression with C=1.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		C:       1,
		MaxIter: 1000,
		Tol:     1e-6,
	}
}

// Classes implements Model.
func (l *LogisticRegression) Classes() []int {
	return append([]int(nil), l.classes...)
}

// Train implements Model.
func (l *LogisticRegression) Train(ds *dataset.Dataset) error {
	l.classes, l.scorers = nil, nil
	if l.C <= 0 {
		return errors.Configf("logistic regression C must be positive, got %v", l.C)
	}
	X, y, classes, err := trainingSet(ds)
	if err != nil {
		return err
	}

	n, dim, k := len(X), ds.Dim(), len(classes)
	index := classIndex(classes)
	targets := make([]int, n)
	for i, label := range y {
		targets[i] = index[label]
	}

	// The mean loss has a Hessian bounded by ½·max|x̃|² with x̃ = (x, 1),
	// and the penalty adds 1/(C·n).
	var maxNorm float64
	for _, x := range X {
		s := 1.0
		for _, v := range x {
			s += v * v
		}
		maxNorm = math.Max(maxNorm, s)
	}
	reg := 1 / (l.C * float64(n))
	step := 1 / (0.5*maxNorm + reg)

	W := make([][]float64, k)
	gradW := make([][]float64, k)
	for c := range W {
		W[c] = make([]float64, dim)
		gradW[c] = make([]float64, dim)
	}
	b := make([]float64, k)
	gradB := make([]float64, k)
	z := make([]float64, k)
	p := make([]float64, k)

	for iter := 0; iter < l.MaxIter; iter++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = reg * W[c][j]
			}
			gradB[c] = 0
		}
		for i, x := range X {
			for c := range z {
				z[c] = b[c]
				for j, v := range x {
					z[c] += W[c][j] * v
				}
			}
			softmax(z, p)
			for c := range p {
				r := p[c]
				if c == targets[i] {
					r--
				}
				r /= float64(n)
				gradB[c] += r
				for j, v := range x {
					gradW[c][j] += r * v
				}
			}
		}

		var maxGrad float64
		for c := range W {
			for j := range W[c] {
				W[c][j] -= step * gradW[c][j]
				maxGrad = math.Max(maxGrad, math.Abs(gradW[c][j]))
			}
			b[c] -= step * gradB[c]
			maxGrad = math.Max(maxGrad, math.Abs(gradB[c]))
		}
		if maxGrad < l.Tol {
			break
		}
	}

	l.classes = classes
	l.dim = dim
	l.scorers = make([]*LinearScorer, k)
	for c := range W {
		l.scorers[c] = &LinearScorer{Weights: W[c], Bias: b[c]}
	}
	return nil
}

func (l *LogisticRegression) logits(X []dataset.Vector) ([][]float64, error) {
	if l.scorers == nil {
		return nil, errors.WithKind(errors.KindModel, ErrNotTrained)
	}
	if err := checkDims(X, l.dim); err != nil {
		return nil, err
	}
	out := make([][]float64, len(X))
	for i, x := range X {
		row := make([]float64, len(l.scorers))
		for c, s := range l.scorers {
			row[c] = s.Evaluate(x)
		}
		out[i] = row
	}
	return out, nil
}

// PredictReal implements ContinuousModel. For two classes it returns
// [-d, d] with d the log-odds of the second class.
func (l *LogisticRegression) PredictReal(X []dataset.Vector) ([][]float64, error) {
	z, err := l.logits(X)
	if err != nil {
		return nil, err
	}
	if len(l.classes) == 2 {
		for i, row := range z {
			d := row[1] - row[0]
			z[i] = []float64{-d, d}
		}
	}
	return z, nil
}

// PredictProba implements ProbabilisticModel.
func (l *LogisticRegression) PredictProba(X []dataset.Vector) ([][]float64, error) {
	z, err := l.logits(X)
	if err != nil {
		return nil, err
	}
	for _, row := range z {
		softmax(row, row)
	}
	return z, nil
}

// Predict implements Model.
func (l *LogisticRegression) Predict(X []dataset.Vector) ([]int, error) {
	z, err := l.logits(X)
	if err != nil {
		return nil, err
	}
	return argmaxClasses(z, l.classes), nil
}

// Score implements Model.
func (l *LogisticRegression) Score(ds *dataset.Dataset) (float64, error) {
	return score(l, ds)
}
