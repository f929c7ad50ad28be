package mosaic

import "errors"

var (
	// ErrInvalidInput is returned when the source image or the run parameters cannot be processed.
	ErrInvalidInput = errors.New("mosaic: invalid input")

	// ErrInvalidWeights is returned when the sampling weights do not form a valid distribution.
	ErrInvalidWeights = errors.New("mosaic: invalid sampling weights")

	// ErrIO is returned when an image cannot be decoded or encoded.
	ErrIO = errors.New("mosaic: image i/o failure")
)
