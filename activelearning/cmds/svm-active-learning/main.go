package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PAL-UH/active-learning/activelearning/experiment"
	"github.com/PAL-UH/active-learning/activelearning/report"
	"github.com/PAL-UH/active-learning/golib/cmdline"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	"github.com/PAL-UH/active-learning/golib/kitelog"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Flags left unset keep the value from the environment, the config file or
// the defaults, in that order of precedence.
type args struct {
	Config   string   `arg:"help:YAML file overlaid on the default experiment"`
	Dataset  *string  `arg:"help:libsvm dataset path (.gz allowed)"`
	TestSize *float64 `arg:"--test-size,help:fraction of samples held out for testing"`
	NLabeled *int     `arg:"--n-labeled,help:number of initially labeled training samples"`
	Quota    *int     `arg:"help:number of queries"`
	Seed     *int64   `arg:"help:seed for the split and random sampling"`
	Model    *string  `arg:"help:model evaluated after each query"`
	Strategy *string  `arg:"help:query strategy (uncertainty or random)"`
	Method   *string  `arg:"help:uncertainty measure (lc or sm or entropy)"`
	QueryBy  *string  `arg:"--query-model,help:model used by uncertainty sampling"`
	Plot     *string  `arg:"help:accuracy chart output path"`
	ErrPlot  *string  `arg:"--error-plot,help:error chart output path"`
	Curve    *string  `arg:"help:learning curve CSV output path"`
	Renderer *string  `arg:"help:chart backend (gochart or gonum)"`

	Progress bool `arg:"help:show a progress bar"`
	Verbose  bool `arg:"-v,help:log every query"`
	JSONLogs bool `arg:"--json-logs,help:log as JSON"`

	fs  afero.Fs  `arg:"-"`
	out io.Writer `arg:"-"`
}

func (a *args) config() (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	var err error
	if a.Config != "" {
		if cfg, err = experiment.LoadConfig(a.fs, a.Config); err != nil {
			return cfg, err
		}
	}
	if cfg, err = cfg.WithEnv(); err != nil {
		return cfg, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&cfg.Dataset, a.Dataset)
	setString(&cfg.Model, a.Model)
	setString(&cfg.Strategy, a.Strategy)
	setString(&cfg.Method, a.Method)
	setString(&cfg.QueryModel, a.QueryBy)
	setString(&cfg.PlotPath, a.Plot)
	setString(&cfg.ErrorPlotPath, a.ErrPlot)
	setString(&cfg.CurvePath, a.Curve)
	setString(&cfg.Renderer, a.Renderer)
	if a.TestSize != nil {
		cfg.TestSize = *a.TestSize
	}
	if a.NLabeled != nil {
		cfg.NLabeled = *a.NLabeled
	}
	if a.Quota != nil {
		cfg.Quota = *a.Quota
	}
	if a.Seed != nil {
		cfg.Seed = *a.Seed
	}
	return cfg, cfg.Validate()
}

func (a *args) Handle() error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer(cfg.Renderer)
	if err != nil {
		return err
	}

	logger := kitelog.New(kitelog.Options{Verbose: a.Verbose, JSON: a.JSONLogs})
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			logger.Warn("interrupted, stopping after the current query")
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := []experiment.Option{experiment.WithLogger(logger)}
	if a.Progress {
		opts = append(opts, experiment.WithProgress("querying"))
	}

	start := time.Now()
	res, err := experiment.Experiment(ctx, a.fs, cfg, opts...)
	if err != nil {
		return err
	}
	logger.Info("experiment done", zap.Int("queries", res.Len()), zap.Duration("took", time.Since(start)))

	summary, err := report.Summarize(res.Accuracy)
	if err != nil {
		return err
	}
	if err := report.WriteChart(a.fs, cfg.ErrorPlotPath, renderer, report.ErrorChart(res)); err != nil {
		return err
	}
	if err := report.WriteChart(a.fs, cfg.PlotPath, renderer, report.AccuracyChart(res)); err != nil {
		return err
	}
	logger.Info("wrote charts", zap.String("accuracy", cfg.PlotPath), zap.String("error", cfg.ErrorPlotPath))

	if cfg.CurvePath != "" {
		if err := writeCurve(a.fs, cfg.CurvePath, res); err != nil {
			return err
		}
		logger.Info("wrote learning curve", zap.String("path", cfg.CurvePath))
	}

	return summary.Print(a.out)
}

func writeCurve(fs afero.Fs, path string, res *experiment.Result) (err error) {
	w, err := fileutil.NewBufferedWriter(fs, path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, w.Close)
	return report.WriteCurves(w, res)
}

func main() {
	a := &args{fs: fileutil.OS, out: os.Stdout}
	cmdline.MustRun(a)
}
