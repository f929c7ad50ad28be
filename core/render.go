package mosaic

import (
	"runtime"
	"sync"
)

// Renderer paints every pixel with the color of its nearest seed.
type Renderer struct {
	Scorer Scorer
	// PointRadius marks the seed locations by inverting the colors inside
	// the given radius around the winning seed. Negative disables it.
	PointRadius int
	// Workers is the number of goroutines rendering rows concurrently.
	// Values below one use runtime.NumCPU.
	Workers  int
	Progress ProgressFunc
}

// Nearest returns the index of the seed with the lowest score against px.
// Exact ties go to the seed appearing first. It returns -1 for an empty seed set.
func (r *Renderer) Nearest(px Sample, seeds []Sample) int {
	nearest := -1
	minScore := 0.0
	for i, seed := range seeds {
		if s := r.Scorer.Score(px, seed); nearest < 0 || s < minScore {
			minScore = s
			nearest = i
		}
	}
	return nearest
}

// Render builds the mosaic of base. The base is read only; every pixel
// of the returned image is overwritten with a seed color.
func (r *Renderer) Render(base ImageParams, seeds []Sample) ImageParams {
	out := NewImageParams(base.Cols, base.Rows)

	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > base.Rows {
		workers = base.Rows
	}

	var (
		wg   sync.WaitGroup
		jobs = make(chan int)
		done = make(chan struct{}, workers)
	)

	go func() {
		for y := 0; y < base.Rows; y++ {
			jobs <- y
		}
		close(jobs)
	}()

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for y := range jobs {
				r.renderRow(base, out, seeds, y)
				done <- struct{}{}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	r.Progress.report(StageRendering, 0, base.Rows)
	var completed int
	for range done {
		completed++
		r.Progress.report(StageRendering, completed, base.Rows)
	}
	return out
}

// renderRow paints row y. Rows are disjoint, so concurrent calls never share a destination byte.
func (r *Renderer) renderRow(base, out ImageParams, seeds []Sample, y int) {
	for x := 0; x < base.Cols; x++ {
		px := Sample{X: uint32(x), Y: uint32(y), Color: base.At(x, y)}

		var c RGB
		if idx := r.Nearest(px, seeds); idx >= 0 {
			seed := seeds[idx]
			c = seed.Color
			if r.withinRadius(px, seed) {
				c = c.Invert()
			}
		}
		out.Set(x, y, c)
	}
}

func (r *Renderer) withinRadius(px, seed Sample) bool {
	if r.PointRadius < 0 {
		return false
	}
	dx := uint64(absDiff(px.X, seed.X))
	dy := uint64(absDiff(px.Y, seed.Y))
	radius := uint64(r.PointRadius)

	return dx*dx+dy*dy <= radius*radius
}
