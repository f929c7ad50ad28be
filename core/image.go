package mosaic

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ImageParams holds the decoded source image as a row-major buffer
// of RGB triplets, Channels bytes per pixel.
type ImageParams struct {
	Pixels []uint8
	Rows   int
	Cols   int
}

// NewImageParams allocates a zeroed buffer of the given size.
func NewImageParams(cols, rows int) ImageParams {
	return ImageParams{
		Pixels: make([]uint8, cols*rows*Channels),
		Rows:   rows,
		Cols:   cols,
	}
}

// At returns the color of the pixel at (x, y).
func (p ImageParams) At(x, y int) RGB {
	i := (y*p.Cols + x) * Channels
	return RGB{p.Pixels[i], p.Pixels[i+1], p.Pixels[i+2]}
}

// Set writes the color of the pixel at (x, y).
func (p ImageParams) Set(x, y int, c RGB) {
	i := (y*p.Cols + x) * Channels
	copy(p.Pixels[i:i+Channels], c[:])
}

func (p ImageParams) validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidInput, p.Cols, p.Rows)
	}
	if want := p.Rows * p.Cols * Channels; len(p.Pixels) != want {
		return fmt.Errorf("%w: pixel buffer holds %d bytes, expected %d", ErrInvalidInput, len(p.Pixels), want)
	}
	return nil
}

// GetImage reads the image file and converts it to *image.NRGBA.
// EXIF orientation is applied while decoding.
func GetImage(input string) (*image.NRGBA, error) {
	src, err := imaging.Open(input, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return imaging.Clone(src), nil
}

// DecodeImage decodes the image from the reader and converts it to *image.NRGBA.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return imaging.Clone(src), nil
}

// EncodeImage writes img to w using the format derived from the file extension.
// An empty extension falls back to JPEG.
func EncodeImage(w io.Writer, img image.Image, ext string) error {
	format := imaging.JPEG
	if ext != "" {
		var err error
		if format, err = imaging.FormatFromExtension(ext); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(100)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// ImgToPixels flattens the image into an RGB buffer. The alpha channel is dropped.
func ImgToPixels(img *image.NRGBA) ImageParams {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	p := NewImageParams(cols, rows)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			j := (y*cols + x) * Channels
			p.Pixels[j+0] = img.Pix[i+0]
			p.Pixels[j+1] = img.Pix[i+1]
			p.Pixels[j+2] = img.Pix[i+2]
		}
	}
	return p
}

// PixelsToImage converts the RGB buffer back into an opaque *image.NRGBA.
func PixelsToImage(p ImageParams) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Cols, p.Rows))
	for i, j := 0, 0; i < len(p.Pixels); i, j = i+Channels, j+4 {
		img.Pix[j+0] = p.Pixels[i+0]
		img.Pix[j+1] = p.Pixels[i+1]
		img.Pix[j+2] = p.Pixels[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Blur applies a gaussian blur with the given sigma to the image.
// A zero (or negative) amount returns the source unmodified.
func Blur(p ImageParams, amount float64) ImageParams {
	if amount <= 0 {
		return p
	}
	return ImgToPixels(imaging.Blur(PixelsToImage(p), amount))
}
