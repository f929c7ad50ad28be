package mosaic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mosaic "github.com/esimov/mosaic/core"
)

func TestRun_ShouldRejectInvalidInput(t *testing.T) {
	params := mosaic.DefaultParams(1)

	cases := map[string]struct {
		img    mosaic.ImageParams
		params func(p mosaic.Params) mosaic.Params
	}{
		"zero width":   {img: mosaic.ImageParams{Rows: 4}},
		"zero height":  {img: mosaic.ImageParams{Cols: 4}},
		"short buffer": {img: mosaic.ImageParams{Pixels: make([]uint8, 10), Cols: 2, Rows: 2}},
		"no points": {img: solidImage(2, 2, red), params: func(p mosaic.Params) mosaic.Params {
			p.Points = 0
			return p
		}},
		"nan weight": {img: solidImage(2, 2, red), params: func(p mosaic.Params) mosaic.Params {
			p.ColorWeight = math.NaN()
			return p
		}},
		"inf blur": {img: solidImage(2, 2, red), params: func(p mosaic.Params) mosaic.Params {
			p.BlurAmount = math.Inf(1)
			return p
		}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := params
			if tc.params != nil {
				p = tc.params(p)
			}
			res, err := mosaic.Run(tc.img, p)
			require.ErrorIs(t, err, mosaic.ErrInvalidInput)
			require.Nil(t, res)
		})
	}
}

func TestRun_SinglePointScenario(t *testing.T) {
	img := solidImage(4, 4, black)
	img.Set(2, 2, white)

	params := mosaic.DefaultParams(42)
	params.Points = 1
	params.BlurAmount = 0

	first, err := mosaic.Run(img, params)
	require.NoError(t, err)
	second, err := mosaic.Run(img, params)
	require.NoError(t, err)

	require.Equal(t, first.Image.Pixels, second.Image.Pixels)
	require.Equal(t, uint64(42), first.Seed)
	require.Len(t, first.Seeds, 1)

	seed := first.Seeds[0]
	require.Equal(t, img.At(int(seed.X), int(seed.Y)), seed.Color)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, seed.Color, first.Image.At(x, y))
		}
	}
}

func TestRun_ShouldBeDeterministic(t *testing.T) {
	img := gradientImage(31, 17)
	params := mosaic.DefaultParams(1234)
	params.Points = 20
	params.PointRadius = 1

	a, err := mosaic.Generate(img, params)
	require.NoError(t, err)

	params.Workers = 3
	b, err := mosaic.Generate(img, params)
	require.NoError(t, err)
	require.Equal(t, a.Pixels, b.Pixels)

	params.Seed = 4321
	c, err := mosaic.Generate(img, params)
	require.NoError(t, err)
	require.NotEqual(t, a.Pixels, c.Pixels)
}

func TestRun_RedBlueHalvesShouldSplitVertically(t *testing.T) {
	const size = 10
	img := splitImage(size, size, red, blue)

	params := mosaic.DefaultParams(0)
	params.Points = 2
	params.ColorWeight = 0
	params.BlurAmount = 0

	// Look for a seed value giving one point on each half.
	var res *mosaic.Result
	for seed := uint64(0); seed < 1000; seed++ {
		params.Seed = seed
		r, err := mosaic.Run(img, params)
		require.NoError(t, err)
		if r.Seeds[0].Color != r.Seeds[1].Color {
			res = r
			break
		}
	}
	require.NotNil(t, res, "no seed value produced one point per half")

	var reds, blues int
	for y := 0; y < size; y++ {
		// A row may only switch once, from the left seed color to the right one.
		for x := 0; x < size; x++ {
			c := res.Image.At(x, y)
			if c == red {
				reds++
			} else {
				require.Equal(t, blue, c, "pixel (%d, %d)", x, y)
				blues++
			}
			if x > 0 {
				require.False(t, c == red && res.Image.At(x-1, y) == blue, "pixel (%d, %d)", x, y)
			}
		}
	}
	require.Positive(t, reds)
	require.Positive(t, blues)
}

func TestRun_ShouldScoreAgainstBlurredColors(t *testing.T) {
	const size = 16
	// A checkerboard turns into a flat gray once blurred, so the colors
	// used for scoring differ a lot from the raw ones.
	img := mosaic.NewImageParams(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, white)
			} else {
				img.Set(x, y, black)
			}
		}
	}

	params := mosaic.DefaultParams(11)
	params.Points = 40
	params.ColorWeight = 100000
	params.BlurAmount = 1.5

	res, err := mosaic.Run(img, params)
	require.NoError(t, err)

	r := &mosaic.Renderer{
		Scorer:      mosaic.NewScorer(size, size, params.ColorWeight),
		PointRadius: params.PointRadius,
	}
	blurred := r.Render(mosaic.Blur(img, params.BlurAmount), res.Seeds)
	raw := r.Render(img, res.Seeds)

	require.Equal(t, blurred.Pixels, res.Image.Pixels)
	require.NotEqual(t, raw.Pixels, res.Image.Pixels)
}

func TestRun_ShouldReportStages(t *testing.T) {
	seen := map[mosaic.Stage]int{}
	params := mosaic.DefaultParams(5)
	params.Points = 3
	params.Progress = func(stage mosaic.Stage, done, total int) {
		if done == total {
			seen[stage]++
		}
	}
	_, err := mosaic.Run(gradientImage(6, 5), params)
	require.NoError(t, err)

	assert.Equal(t, 1, seen[mosaic.StageIndexing])
	assert.Equal(t, 1, seen[mosaic.StageSampling])
	assert.Equal(t, 1, seen[mosaic.StageRendering])
}

func TestRun_OneByOneImage(t *testing.T) {
	img := solidImage(1, 1, mosaic.RGB{1, 2, 3})
	params := mosaic.DefaultParams(0)
	params.Points = 4

	out, err := mosaic.Generate(img, params)
	require.NoError(t, err)
	require.Equal(t, mosaic.RGB{1, 2, 3}, out.At(0, 0))
}

func BenchmarkGenerate(b *testing.B) {
	img := gradientImage(160, 120)
	params := mosaic.DefaultParams(42)

	var out mosaic.ImageParams
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var err error
		if out, err = mosaic.Generate(img, params); err != nil {
			b.Fatalf("error generating the mosaic: %v", err)
		}
	}
	_ = out
}
