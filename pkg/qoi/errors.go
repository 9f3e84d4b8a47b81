package qoi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic means the data does not start with "qoif".
	ErrInvalidMagic = errors.New("invalid magic")

	// ErrTruncated means the data ended inside a header or chunk.
	ErrTruncated = errors.New("unexpected end of input")

	// ErrNoChunk means no chunk could be decoded from empty input.
	ErrNoChunk = errors.New("no chunk matched")

	// ErrMissingEndMarker means the chunk stream ended without the end marker.
	ErrMissingEndMarker = errors.New("end marker not found")

	// ErrMisaligned means a chunk did not end on a byte boundary.
	ErrMisaligned = errors.New("chunk does not end on a byte boundary")

	// ErrEmptyCacheSlot means an index chunk referenced a slot no pixel was stored in.
	ErrEmptyCacheSlot = errors.New("index references an empty cache slot")

	// ErrUnknownChunk means a chunk passed to Reconstruct is nil or not one of
	// the chunk types of this package.
	ErrUnknownChunk = errors.New("unknown chunk")

	// ErrInvalidHeader is returned by ValidateHeader and ValidateDimensions.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrPixelCount is returned by ValidatePixelCount.
	ErrPixelCount = errors.New("invalid number of pixels decoded")
)

// FormatError reports a structurally malformed stream. Offset is the byte
// offset of the first byte that could not be decoded.
type FormatError struct {
	Offset   int
	Expected string
	Found    string
	Err      error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("qoi: %v at byte %d", e.Err, e.Offset)
	if e.Expected != "" {
		msg += ", expected " + e.Expected
	}
	if e.Found != "" {
		msg += ", found " + e.Found
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ReconstructionError reports a chunk sequence that cannot be replayed.
type ReconstructionError struct {
	Chunk int   // ordinal of the failing chunk
	Pixel int   // ordinal of the pixel it would have produced
	Index uint8 // referenced cache slot, for ErrEmptyCacheSlot
	Err   error
}

func (e *ReconstructionError) Error() string {
	if errors.Is(e.Err, ErrEmptyCacheSlot) {
		return fmt.Sprintf("qoi: %v: chunk %d (pixel %d) references slot %d", e.Err, e.Chunk, e.Pixel, e.Index)
	}
	return fmt.Sprintf("qoi: %v: chunk %d (pixel %d)", e.Err, e.Chunk, e.Pixel)
}

func (e *ReconstructionError) Unwrap() error {
	return e.Err
}

// rebase shifts the offset of a *FormatError by base bytes. Other errors are
// returned untouched.
func rebase(err error, base int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		shifted := *fe
		shifted.Offset += base
		return &shifted
	}
	return err
}
