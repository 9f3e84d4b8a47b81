package qoi

import (
	"image/color"
)

// A List of tags used in the chunk stream. The 8-bit tags occupy the whole
// leading byte, the 2-bit tags only its two most significant bits.
const (
	OpRgb   = byte(0b11111110)
	OpRgba  = byte(0b11111111)
	OpIndex = byte(0b00000000)
	OpDiff  = byte(0b01000000)
	OpLuma  = byte(0b10000000)
	OpRun   = byte(0b11000000)

	// opMask selects the 2-bit tag of a leading byte.
	opMask = byte(0b11000000)
)

// Magic is the magic code used for files of the QuiteOk image format.
const Magic = "qoif"

const (
	// HeaderSize is the encoded size of the header in bytes.
	HeaderSize = 14
	// CacheSize is the number of slots of the pixel cache.
	CacheSize = 64

	diffBias  = 2
	lumaGBias = 32
	lumaBias  = 8
	runBias   = 1
)

// The end of stream code used by files of the QuiteOk image format.
var endMarker = [...]byte{0, 0, 0, 0, 0, 0, 0, 1}

// EndMarker returns a copy of the 8 byte end of stream marker.
func EndMarker() [8]byte {
	return endMarker
}

// Pixel is a single decoded pixel. Channels are not premultiplied.
type Pixel = color.NRGBA

// startPixel is the previous pixel before the first chunk.
var startPixel = Pixel{A: 255}

// Generates a hash from the provided color. It is a number between 0 and 63.
func hashColor(pixel Pixel) uint8 {
	return uint8((int(pixel.R)*3 + int(pixel.G)*5 + int(pixel.B)*7 + int(pixel.A)*11) % CacheSize)
}
