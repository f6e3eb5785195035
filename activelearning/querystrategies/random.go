package querystrategies

import (
	"math/rand"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
)

// RandomSampling queries pending entries uniformly at random.
type RandomSampling struct {
	rng *rand.Rand
}

// NewRandomSampling returns a RandomSampling whose choices are fixed by seed.
func NewRandomSampling(seed int64) *RandomSampling {
	return &RandomSampling{rng: rand.New(rand.NewSource(seed))}
}

// MakeQuery implements QueryStrategy.
func (r *RandomSampling) MakeQuery(ds *dataset.Dataset) (int, error) {
	idxs, _, err := pending(ds)
	if err != nil {
		return 0, err
	}
	return idxs[r.rng.Intn(len(idxs))], nil
}
