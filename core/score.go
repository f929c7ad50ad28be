package mosaic

// ColorWeightScale brings the user facing color weight down
// to the range of the normalized positional distance.
const ColorWeightScale = 10000.0

// Scorer measures the dissimilarity between a pixel and a seed.
// Lower scores mean more similar.
type Scorer struct {
	colorWeight  float64
	maxPosDist   float64
	maxColorDist float64
}

// NewScorer precomputes the normalization constants for a cols x rows image.
func NewScorer(cols, rows int, colorWeight float64) Scorer {
	return Scorer{
		colorWeight:  colorWeight,
		maxPosDist:   float64(cols)*float64(cols) + float64(rows)*float64(rows),
		maxColorDist: 255 * Channels,
	}
}

// ColorWeight returns the color weight the scorer was created with.
func (s Scorer) ColorWeight() float64 {
	return s.colorWeight
}

// Score returns the combined spatial and color distance between px and seed.
// With a zero color weight it is the plain squared euclidean distance.
func (s Scorer) Score(px, seed Sample) float64 {
	dx := uint64(absDiff(px.X, seed.X))
	dy := uint64(absDiff(px.Y, seed.Y))
	posDist := float64(dx*dx) + float64(dy*dy)

	if s.colorWeight == 0 {
		return posDist
	}

	var colorDist float64
	for i := range px.Color {
		colorDist += float64(absDiff(uint32(px.Color[i]), uint32(seed.Color[i])))
	}
	return posDist/s.maxPosDist + colorDist/s.maxColorDist*s.colorWeight/ColorWeightScale
}

func absDiff(a, b uint32) uint32 {
	if a < b {
		return b - a
	}
	return a - b
}
