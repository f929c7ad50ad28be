// Package mosaic builds weighted voronoi mosaics: seeds are sampled from the
// source image with a center biased weight, then every pixel takes the color
// of the seed closest to it under a combined position and color distance.
package mosaic

import (
	"fmt"
	"math"
)

// Stage identifies the step of a run reported to a ProgressFunc.
type Stage string

const (
	StageIndexing  Stage = "indexing"
	StageSampling  Stage = "sampling"
	StageRendering Stage = "rendering"
)

// ProgressFunc receives advisory progress notifications: done out of total
// units (rows or points) of the given stage are completed.
// It is always called from the goroutine running the stage.
type ProgressFunc func(stage Stage, done, total int)

func (fn ProgressFunc) report(stage Stage, done, total int) {
	if fn != nil {
		fn(stage, done, total)
	}
}

// Params contains the settings of a mosaic run.
type Params struct {
	// Points is the number of seeds sampled from the image.
	Points int
	// Seed makes the run reproducible. Use NewSeed when the caller has none.
	Seed uint64
	// ColorWeight balances the color distance against the spatial one.
	// Zero gives a plain positional voronoi diagram.
	ColorWeight float64
	// BlurAmount is the gaussian sigma applied to the source before scoring. Zero disables it.
	BlurAmount float64
	// PointRadius highlights the seeds with inverted discs. Negative disables it.
	PointRadius int
	Workers     int
	Progress    ProgressFunc
}

// DefaultParams returns the default settings with the given seed.
func DefaultParams(seed uint64) Params {
	return Params{
		Points:      100,
		Seed:        seed,
		ColorWeight: 3.5,
		BlurAmount:  1.0,
		PointRadius: -1,
	}
}

func (p Params) validate() error {
	if p.Points < 1 {
		return fmt.Errorf("%w: points must be positive, got %d", ErrInvalidInput, p.Points)
	}
	if math.IsNaN(p.ColorWeight) || math.IsInf(p.ColorWeight, 0) {
		return fmt.Errorf("%w: color weight %v", ErrInvalidInput, p.ColorWeight)
	}
	if math.IsNaN(p.BlurAmount) || math.IsInf(p.BlurAmount, 0) {
		return fmt.Errorf("%w: blur amount %v", ErrInvalidInput, p.BlurAmount)
	}
	return nil
}

// Result holds the rendered mosaic together with the seeds it was built from.
type Result struct {
	Image ImageParams
	Seeds []Sample
	Seed  uint64
}

// Run indexes the source pixels, samples the seeds and renders the mosaic.
// Nothing is returned on failure, so a caller never sees a partial image.
func Run(img ImageParams, p Params) (*Result, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	index := IndexPixels(img, p.Progress)

	p.Progress.report(StageSampling, 0, p.Points)
	seeds, err := SampleSeeds(index, img.Cols, img.Rows, p.Points, NewRand(p.Seed))
	if err != nil {
		return nil, err
	}
	p.Progress.report(StageSampling, p.Points, p.Points)

	r := &Renderer{
		Scorer:      NewScorer(img.Cols, img.Rows, p.ColorWeight),
		PointRadius: p.PointRadius,
		Workers:     p.Workers,
		Progress:    p.Progress,
	}
	out := r.Render(Blur(img, p.BlurAmount), seeds)

	return &Result{
		Image: out,
		Seeds: seeds,
		Seed:  p.Seed,
	}, nil
}

// Generate is like Run but returns only the rendered image.
func Generate(img ImageParams, p Params) (ImageParams, error) {
	res, err := Run(img, p)
	if err != nil {
		return ImageParams{}, err
	}
	return res.Image, nil
}
