package experiment

import (
	"github.com/PAL-UH/active-learning/activelearning/models"
	"github.com/PAL-UH/active-learning/activelearning/querystrategies"
	"github.com/PAL-UH/active-learning/golib/envutil"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// Environment variables read by DefaultConfig and WithEnv.
const (
	DatasetEnv  = "AL_DATASET"
	TestSizeEnv = "AL_TEST_SIZE"
	NLabeledEnv = "AL_N_LABELED"
	QuotaEnv    = "AL_QUOTA"
)

// Config describes a single active learning run.
type Config struct {
	// Dataset is the path of a libsvm file, optionally gzipped.
	Dataset string `yaml:"dataset"`
	// TestSize is the fraction of samples held out for testing.
	TestSize float64 `yaml:"test_size"`
	// NLabeled is the number of training samples labeled before the first query.
	NLabeled int `yaml:"n_labeled"`
	// Quota is the number of queries.
	Quota int `yaml:"quota"`
	// Seed fixes the train/test split and random sampling.
	Seed int64 `yaml:"seed"`

	// Model is the classifier evaluated after every query.
	Model string `yaml:"model"`
	// Strategy picks the entries to query.
	Strategy string `yaml:"strategy"`
	// Method is the uncertainty measure for uncertainty sampling.
	Method string `yaml:"method"`
	// QueryModel is the classifier used by uncertainty sampling.
	QueryModel string `yaml:"query_model"`

	// PlotPath receives the accuracy chart.
	PlotPath string `yaml:"plot"`
	// ErrorPlotPath receives the in-sample and out-of-sample error chart.
	ErrorPlotPath string `yaml:"error_plot"`
	// CurvePath, if set, receives the learning curve as CSV.
	CurvePath string `yaml:"curve"`
	// Renderer is the chart backend, "gochart" or "gonum".
	Renderer string `yaml:"renderer"`
}

// DefaultConfig returns the configuration of the reference experiment: LR
// evaluated on queries picked by least-confident sampling with an SVM.
func DefaultConfig() Config {
	return Config{
		Dataset:       envutil.GetenvDefault(DatasetEnv, "data/mars.txt"),
		TestSize:      0.5,
		NLabeled:      10,
		Quota:         200,
		Seed:          42,
		Model:         "logistic_regression",
		Strategy:      "uncertainty",
		Method:        "lc",
		QueryModel:    "svm",
		PlotPath:      "vis/svm.png",
		ErrorPlotPath: "vis/svm_error.png",
		Renderer:      "gochart",
	}
}

// LoadConfig reads a YAML file and overlays it on DefaultConfig.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	buf, err := fileutil.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.WithKind(errors.KindConfig, errors.Wrapf(err, "reading config"))
	}
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return Config{}, errors.WithKind(errors.KindConfig, errors.Wrapf(err, "parsing config %s", path))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithEnv returns c with the numeric fields overridden by any of
// AL_TEST_SIZE, AL_N_LABELED and AL_QUOTA that are set.
func (c Config) WithEnv() (Config, error) {
	var err error
	if c.TestSize, err = envutil.GetenvDefaultFloat(TestSizeEnv, c.TestSize); err != nil {
		return c, err
	}
	if c.NLabeled, err = envutil.GetenvDefaultInt(NLabeledEnv, c.NLabeled); err != nil {
		return c, err
	}
	if c.Quota, err = envutil.GetenvDefaultInt(QuotaEnv, c.Quota); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the fields that can be checked without reading the dataset.
func (c Config) Validate() error {
	switch {
	case c.Dataset == "":
		return errors.Configf("dataset path is empty")
	case !(c.TestSize > 0 && c.TestSize < 1):
		return errors.Configf("test_size must be in (0, 1), got %v", c.TestSize)
	case c.NLabeled < 0:
		return errors.Configf("n_labeled must not be negative, got %d", c.NLabeled)
	case c.Quota < 1:
		return errors.Configf("quota must be positive, got %d", c.Quota)
	}
	if _, err := c.strategy(); err != nil {
		return err
	}
	if _, err := models.New(c.Model); err != nil {
		return err
	}
	return nil
}

func (c Config) strategy() (querystrategies.QueryStrategy, error) {
	var qm models.Model
	if c.Strategy != "random" {
		m, err := models.New(c.QueryModel)
		if err != nil {
			return nil, errors.Wrapf(err, "query model")
		}
		qm = m
	}
	return querystrategies.New(c.Strategy, c.Method, qm, c.Seed)
}
