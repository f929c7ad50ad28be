package mosaic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

// Categorical is a discrete distribution over the indices [0, n) where the
// probability of drawing an index is proportional to its weight.
// It keeps the cumulative weights and draws by binary search.
type Categorical struct {
	cumulative []float64
	last       int // last index with a positive weight
}

// NewCategorical builds the distribution from unnormalized weights.
// Negative, NaN or infinite weights and a non-positive total are rejected with ErrInvalidWeights.
func NewCategorical(weights []float64) (*Categorical, error) {
	var (
		sum        float64
		last       = -1
		cumulative = make([]float64, len(weights))
	)
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %v at index %d", ErrInvalidWeights, w, i)
		}
		if w > 0 {
			last = i
		}
		sum += w
		cumulative[i] = sum
	}
	if last < 0 || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: total weight %v", ErrInvalidWeights, sum)
	}
	return &Categorical{cumulative: cumulative, last: last}, nil
}

// Len returns the number of categories.
func (c *Categorical) Len() int {
	return len(c.cumulative)
}

// Total returns the sum of all the weights.
func (c *Categorical) Total() float64 {
	return c.cumulative[len(c.cumulative)-1]
}

// Draw returns a random index. Indices with zero weight are never returned.
func (c *Categorical) Draw(rng *rand.Rand) int {
	target := rng.Float64() * c.Total()
	idx := sort.Search(len(c.cumulative), func(i int) bool {
		return c.cumulative[i] > target
	})
	// Rounding may push the target onto the total.
	if idx > c.last {
		idx = c.last
	}
	return idx
}
