package report

import (
	"github.com/PAL-UH/active-learning/activelearning/experiment"
)

// Series is a named line.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Chart is a backend-independent line chart.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	// YMin and YMax fix the vertical range. Both zero lets the backend choose.
	YMin, YMax float64
	Series     []Series
}

func (c Chart) xRange() (float64, float64) {
	min, max := 1.0, 2.0
	for _, s := range c.Series {
		for _, x := range s.X {
			if x < min {
				min = x
			}
			if x > max {
				max = x
			}
		}
	}
	return min, max
}

func queryNumbers(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

// ErrorChart plots in-sample and out-of-sample error against the number of queries.
func ErrorChart(res *experiment.Result) Chart {
	xs := queryNumbers(len(res.EIn))
	return Chart{
		Title:  "Experiment Result",
		XLabel: "Number of Queries",
		YLabel: "Error",
		YMax:   1,
		Series: []Series{
			{Name: "qs Ein", X: xs, Y: res.EIn},
			{Name: "qs Eout", X: xs, Y: res.EOut},
		},
	}
}

// AccuracyChart plots test accuracy against the number of queries.
func AccuracyChart(res *experiment.Result) Chart {
	return Chart{
		Title:  "SVM + Active Learning",
		XLabel: "Number of Queries",
		YLabel: "Accuracy",
		YMax:   1,
		Series: []Series{
			{Name: "accuracy", X: queryNumbers(len(res.Accuracy)), Y: res.Accuracy},
		},
	}
}
