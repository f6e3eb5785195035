package experiment

import (
	"context"
	"testing"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/activelearning/querystrategies"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const toyPath = "../dataset/testdata/toy.txt"

// toyConfig returns a config over the 20 sample toy set whose two initial
// labels cover both classes.
func toyConfig(t *testing.T) Config {
	ds, err := dataset.LoadLibSVM(afero.NewOsFs(), toyPath)
	require.NoError(t, err)

	for seed := int64(0); seed < 1000; seed++ {
		split, err := dataset.SplitTrainTest(ds, dataset.SplitOptions{TestSize: 0.5, NLabeled: 2, Seed: seed})
		require.NoError(t, err)
		if split.TrainLabels[0] == split.TrainLabels[1] {
			continue
		}
		cfg := DefaultConfig()
		cfg.Dataset = toyPath
		cfg.NLabeled = 2
		cfg.Quota = 5
		cfg.Seed = seed
		return cfg
	}
	t.Fatal("no seed gives two classes among the initial labels")
	return Config{}
}

func TestExperimentToy(t *testing.T) {
	cfg := toyConfig(t)
	setup, err := Prepare(afero.NewOsFs(), cfg)
	require.NoError(t, err)
	require.Equal(t, 10, setup.Train.Len())
	require.Equal(t, 10, setup.Test.Len())
	require.Equal(t, 2, setup.Train.LenLabeled())
	truth := setup.Train.Clone()

	res, err := Run(context.Background(), setup)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Len())
	assert.Len(t, res.EIn, 5)
	assert.Len(t, res.EOut, 5)
	assert.Len(t, res.Queried, 5)
	assert.Len(t, res.Labels, 5)
	assert.Equal(t, 7, setup.Train.LenLabeled())

	seen := make(map[int]bool)
	for i, idx := range res.Queried {
		assert.False(t, seen[idx], "entry %d queried twice", idx)
		seen[idx] = true
		assert.True(t, truth.IsPending(idx))

		label, ok := setup.Train.Label(idx)
		require.True(t, ok)
		assert.Equal(t, res.Labels[i], label)

		assert.True(t, res.EIn[i] >= 0 && res.EIn[i] <= 1)
		assert.True(t, res.EOut[i] >= 0 && res.EOut[i] <= 1)
		assert.InDelta(t, 1-res.Accuracy[i], res.EOut[i], 1e-12)
	}

	// the last values describe the model as it stands after the run
	trainAcc, err := setup.Model.Score(setup.Train)
	require.NoError(t, err)
	testAcc, err := setup.Model.Score(setup.Test)
	require.NoError(t, err)
	assert.Equal(t, 1-trainAcc, res.EIn[4])
	assert.Equal(t, 1-testAcc, res.EOut[4])
	assert.Equal(t, testAcc, res.Accuracy[4])
}

func TestRunNilLogger(t *testing.T) {
	setup, err := Prepare(afero.NewOsFs(), toyConfig(t))
	require.NoError(t, err)
	res, err := Run(context.Background(), setup, WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Len())
}

func TestExperimentDeterministic(t *testing.T) {
	cfg := toyConfig(t)
	a, err := Experiment(context.Background(), afero.NewOsFs(), cfg)
	require.NoError(t, err)
	b, err := Experiment(context.Background(), afero.NewOsFs(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLabeledCountGrowsByOne(t *testing.T) {
	cfg := toyConfig(t)
	cfg.Strategy = "random"
	for quota := 1; quota <= 8; quota++ {
		cfg.Quota = quota
		setup, err := Prepare(afero.NewOsFs(), cfg)
		require.NoError(t, err)
		_, err = Run(context.Background(), setup)
		require.NoError(t, err)
		assert.Equal(t, cfg.NLabeled+quota, setup.Train.LenLabeled())
	}
}

func TestQuotaExhaustion(t *testing.T) {
	cfg := toyConfig(t)
	cfg.Strategy = "random"
	cfg.Quota = 9

	_, err := Experiment(context.Background(), afero.NewOsFs(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, querystrategies.ErrNoUnlabeled))
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
	assert.Contains(t, err.Error(), "query 9 of 9")
}

type fixedStrategy int

func (f fixedStrategy) MakeQuery(*dataset.Dataset) (int, error) {
	return int(f), nil
}

func TestRunRejectsLabeledQuery(t *testing.T) {
	setup, err := Prepare(afero.NewOsFs(), toyConfig(t))
	require.NoError(t, err)
	setup.Strategy = fixedStrategy(0)

	_, err = Run(context.Background(), setup)
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
	assert.Equal(t, 2, setup.Train.LenLabeled())
}

func TestRunCancelled(t *testing.T) {
	setup, err := Prepare(afero.NewOsFs(), toyConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, setup)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, setup.Train.LenLabeled())
}

func TestRunOptions(t *testing.T) {
	setup, err := Prepare(afero.NewOsFs(), toyConfig(t))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	res, err := Run(context.Background(), setup, WithLogger(zap.New(core)), WithProgress("querying"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Len())

	entries := logs.FilterMessage("queried").All()
	require.Len(t, entries, 5)
	assert.EqualValues(t, res.Queried[0], entries[0].ContextMap()["index"])
}

func TestPrepareErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.txt", []byte("1 1:0.5\nx 1:2\n"), 0644))

	cfg := DefaultConfig()
	cfg.Dataset = "bad.txt"
	_, err := Prepare(fs, cfg)
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.KindOf(err))

	cfg = toyConfig(t)
	cfg.NLabeled = 11
	_, err = Prepare(afero.NewOsFs(), cfg)
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
}

func TestPrepareMissingDataset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dataset = "nowhere.txt"
	_, err := Prepare(afero.NewMemMapFs(), cfg)
	require.Error(t, err)
	assert.Equal(t, errors.KindInput, errors.KindOf(err))
}
