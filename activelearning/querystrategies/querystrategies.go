package querystrategies

import (
	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/activelearning/models"
	"github.com/PAL-UH/active-learning/golib/errors"
)

// ErrNoUnlabeled is returned when a query is made against a dataset with no
// pending entries.
var ErrNoUnlabeled = errors.New("no unlabeled entries left to query")

// QueryStrategy selects the next pending entry to send to the labeler.
type QueryStrategy interface {
	// MakeQuery returns the index of a pending entry of ds.
	MakeQuery(ds *dataset.Dataset) (int, error)
}

// New returns a strategy by name. method and model are used by uncertainty
// sampling, seed by random sampling.
func New(name, method string, model models.Model, seed int64) (QueryStrategy, error) {
	switch name {
	case "uncertainty", "us":
		return NewUncertaintySampling(model, Method(method))
	case "random":
		return NewRandomSampling(seed), nil
	default:
		return nil, errors.Configf("unknown query strategy %q", name)
	}
}

func pending(ds *dataset.Dataset) ([]int, []dataset.Vector, error) {
	idxs, X := ds.UnlabeledEntries()
	if len(idxs) == 0 {
		return nil, nil, errors.WithKind(errors.KindConfig,
			errors.Wrapf(ErrNoUnlabeled, "%d of %d entries labeled", ds.LenLabeled(), ds.Len()))
	}
	return idxs, X, nil
}
