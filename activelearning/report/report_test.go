package report

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/PAL-UH/active-learning/activelearning/experiment"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func result() *experiment.Result {
	return &experiment.Result{
		EIn:      []float64{0, 0, 0.1, 0, 0},
		EOut:     []float64{0.4, 0.3, 0.3, 0.2, 0.1},
		Accuracy: []float64{0.6, 0.7, 0.7, 0.8, 0.9},
		Queried:  []int{4, 7, 2, 9, 5},
		Labels:   []int{1, -1, -1, 1, 1},
	}
}

func TestCharts(t *testing.T) {
	res := result()

	ec := ErrorChart(res)
	assert.Equal(t, "Experiment Result", ec.Title)
	assert.Equal(t, "Error", ec.YLabel)
	require.Len(t, ec.Series, 2)
	assert.Equal(t, "qs Ein", ec.Series[0].Name)
	assert.Equal(t, "qs Eout", ec.Series[1].Name)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, ec.Series[0].X)
	assert.Equal(t, res.EOut, ec.Series[1].Y)

	ac := AccuracyChart(res)
	assert.Equal(t, "SVM + Active Learning", ac.Title)
	assert.Equal(t, "Number of Queries", ac.XLabel)
	require.Len(t, ac.Series, 1)
	assert.Equal(t, "accuracy", ac.Series[0].Name)
	assert.Equal(t, res.Accuracy, ac.Series[0].Y)
}

func TestRenderers(t *testing.T) {
	for _, name := range []string{"gochart", "gonum"} {
		t.Run(name, func(t *testing.T) {
			r, err := NewRenderer(name)
			require.NoError(t, err)

			for _, c := range []Chart{ErrorChart(result()), AccuracyChart(result())} {
				var buf bytes.Buffer
				require.NoError(t, r.Render(&buf, c))
				assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
			}
		})
	}

	_, err := NewRenderer("svg")
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
}

func TestWriteChart(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteChart(fs, "vis/svm.png", GoChart{}, AccuracyChart(result())))

	buf, err := afero.ReadFile(fs, "vis/svm.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, pngMagic))
}

type failingRenderer struct{}

func (failingRenderer) Render(w io.Writer, c Chart) error {
	w.Write([]byte("partial"))
	return errors.New("boom")
}

func TestWriteChartRemovesPartialOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := WriteChart(fs, "vis/svm.png", failingRenderer{}, AccuracyChart(result()))
	require.Error(t, err)

	ok, err := afero.Exists(fs, "vis/svm.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{0.6, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, s.Mean, 1e-12)
	assert.InDelta(t, 0.1, s.StdDev, 1e-12)

	s, err = Summarize(result().Accuracy)
	require.NoError(t, err)
	var ss float64
	for _, a := range result().Accuracy {
		ss += (a - 0.74) * (a - 0.74)
	}
	assert.InDelta(t, math.Sqrt(ss/5), s.StdDev, 1e-12)

	_, err = Summarize(nil)
	assert.Error(t, err)
}

func TestSummaryPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary{Mean: 0.75, StdDev: 0.25}.Print(&buf))
	assert.Equal(t, "Standard Deviation: 0.25\nMean Accuracy: 0.75\n", buf.String())
}

func TestWriteCurves(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCurves(&buf, result()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "query,index,label,e_in,e_out,accuracy", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,4,1,"))
	assert.True(t, strings.HasPrefix(lines[5], "5,5,1,"))
}
