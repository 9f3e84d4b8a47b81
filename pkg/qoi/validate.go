package qoi

import (
	"fmt"
)

// MaxPixels is the largest image ValidateHeader and ValidateDimensions accept.
const MaxPixels = 400_000_000

// ValidateDimensions rejects headers describing more than MaxPixels pixels.
// Consumers that allocate or iterate width*height, rather than the decoded
// pixels, should call it even when they accept otherwise invalid headers.
func ValidateDimensions(h Header) error {
	if h.PixelCount() > MaxPixels {
		return fmt.Errorf("%w: %d pixels exceed the limit of %d", ErrInvalidHeader, h.PixelCount(), MaxPixels)
	}
	return nil
}

// ValidateHeader checks the header fields the decoder passes through
// unchecked. Decoding never calls it.
func ValidateHeader(h Header) error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: empty dimensions %dx%d", ErrInvalidHeader, h.Width, h.Height)
	}
	if err := ValidateDimensions(h); err != nil {
		return err
	}
	if h.Channels != 3 && h.Channels != 4 {
		return fmt.Errorf("%w: channels must be 3 or 4, actual %d", ErrInvalidHeader, h.Channels)
	}
	if h.Colorspace > 1 {
		return fmt.Errorf("%w: colorspace must be 0 or 1, actual %d", ErrInvalidHeader, h.Colorspace)
	}
	return nil
}

// ValidatePixelCount checks that a stream emitted exactly width*height pixels.
func ValidatePixelCount(h Header, decoded int) error {
	if uint64(decoded) != h.PixelCount() {
		return fmt.Errorf("%w: expected %d, actual %d", ErrPixelCount, h.PixelCount(), decoded)
	}
	return nil
}
