package mosaic

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// centerBias shifts the weights down so the border pixels are picked less often.
const centerBias = 0.3

// Weight returns the sampling weight of the pixel at (x, y) in a cols x rows image.
// The weight is highest at the image center and decays slowly
// with the fourth root of the squared normalized distance to it.
func Weight(x, y, cols, rows int) float64 {
	cx, cy := float64(cols)/2, float64(rows)/2
	dx := (float64(x) - cx) / float64(cols)
	dy := (float64(y) - cy) / float64(rows)
	r := math.Sqrt(math.Sqrt(dx*dx + dy*dy))

	return 1/(r+1) - centerBias
}

// NewRand returns the deterministic random source used for a run with the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NewSeed draws a fresh seed from the process wide entropy source.
// It is the only place where non reproducible randomness enters a run.
func NewSeed() uint64 {
	return rand.Uint64()
}

// SampleSeeds draws n samples with replacement from the index,
// each sample being picked with a probability proportional to its Weight.
func SampleSeeds(index PixelIndex, cols, rows, n int, rng *rand.Rand) ([]Sample, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative number of seeds %d", ErrInvalidInput, n)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("%w: empty pixel index", ErrInvalidWeights)
	}
	weights := make([]float64, len(index))
	for i, s := range index {
		weights[i] = Weight(int(s.X), int(s.Y), cols, rows)
	}
	dist, err := NewCategorical(weights)
	if err != nil {
		return nil, err
	}

	seeds := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		seeds = append(seeds, index[dist.Draw(rng)])
	}
	return seeds, nil
}
