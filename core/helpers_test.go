package mosaic_test

import (
	mosaic "github.com/esimov/mosaic/core"
)

var (
	black = mosaic.RGB{0, 0, 0}
	white = mosaic.RGB{255, 255, 255}
	red   = mosaic.RGB{255, 0, 0}
	blue  = mosaic.RGB{0, 0, 255}
)

// solidImage returns a cols x rows image filled with c.
func solidImage(cols, rows int, c mosaic.RGB) mosaic.ImageParams {
	img := mosaic.NewImageParams(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// gradientImage returns an image where every pixel has a distinct color.
func gradientImage(cols, rows int) mosaic.ImageParams {
	img := mosaic.NewImageParams(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.Set(x, y, mosaic.RGB{uint8(x * 7), uint8(y * 11), uint8((x + y) * 3)})
		}
	}
	return img
}

func splitImage(cols, rows int, left, right mosaic.RGB) mosaic.ImageParams {
	img := mosaic.NewImageParams(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if x < cols/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}
