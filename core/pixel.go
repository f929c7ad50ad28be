package mosaic

// Channels is the number of color channels of every pixel.
const Channels = 3

// RGB holds the channel values of a single pixel.
type RGB [Channels]uint8

// Invert returns the complementary color.
func (c RGB) Invert() RGB {
	for i := range c {
		c[i] = 0xff - c[i]
	}
	return c
}

// Sample is a pixel position together with its color.
type Sample struct {
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
	Color RGB    `json:"color"`
}

// PixelIndex is the row-major sequence of all the samples of an image.
type PixelIndex []Sample

// IndexPixels flattens the image into a PixelIndex, one sample per pixel,
// all the columns of row 0 first, then row 1 and so on.
func IndexPixels(img ImageParams, progress ProgressFunc) PixelIndex {
	index := make(PixelIndex, 0, img.Cols*img.Rows)
	for y := 0; y < img.Rows; y++ {
		progress.report(StageIndexing, y, img.Rows)
		for x := 0; x < img.Cols; x++ {
			index = append(index, Sample{
				X:     uint32(x),
				Y:     uint32(y),
				Color: img.At(x, y),
			})
		}
	}
	progress.report(StageIndexing, img.Rows, img.Rows)
	return index
}
