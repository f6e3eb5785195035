package report

import (
	"fmt"
	"io"

	"github.com/PAL-UH/active-learning/activelearning/experiment"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

// Summary describes the accuracy curve of a run.
type Summary struct {
	Mean   float64
	StdDev float64
}

// Summarize computes the mean and population standard deviation of accuracy.
func Summarize(accuracy []float64) (Summary, error) {
	mean, err := stats.Mean(accuracy)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "mean of %d values", len(accuracy))
	}
	sd, err := stats.StandardDeviationPopulation(accuracy)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "standard deviation of %d values", len(accuracy))
	}
	return Summary{Mean: mean, StdDev: sd}, nil
}

// Print writes the summary in the two line console format.
func (s Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Standard Deviation: %v\nMean Accuracy: %v\n", s.StdDev, s.Mean)
	return err
}

// CurvePoint is one row of a learning curve.
type CurvePoint struct {
	Query    int     `csv:"query"`
	Index    int     `csv:"index"`
	Label    int     `csv:"label"`
	EIn      float64 `csv:"e_in"`
	EOut     float64 `csv:"e_out"`
	Accuracy float64 `csv:"accuracy"`
}

// Curve flattens res into one point per query.
func Curve(res *experiment.Result) []*CurvePoint {
	points := make([]*CurvePoint, res.Len())
	for i := range points {
		points[i] = &CurvePoint{
			Query:    i + 1,
			Index:    res.Queried[i],
			Label:    res.Labels[i],
			EIn:      res.EIn[i],
			EOut:     res.EOut[i],
			Accuracy: res.Accuracy[i],
		}
	}
	return points
}

// WriteCurves writes the learning curve of res as CSV with a header row.
func WriteCurves(w io.Writer, res *experiment.Result) error {
	return errors.WrapfOrNil(gocsv.Marshal(Curve(res), w), "writing learning curve")
}
