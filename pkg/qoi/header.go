package qoi

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// maxPixelHint caps the capacity pre-allocated from the header dimensions.
// The header is not trusted to describe the stream.
const maxPixelHint = 1 << 24

// Header is the header data of a QuiteOk image. Channels and Colorspace are
// passed through as read and are not interpreted by the decoder.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// PixelCount returns width*height. It is a hint only, a stream may emit a
// different number of pixels.
func (h Header) PixelCount() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

func (h Header) capacityHint() int {
	if n := h.PixelCount(); n < maxPixelHint {
		return int(n)
	}
	return maxPixelHint
}

func (h Header) String() string {
	return fmt.Sprintf("%dx%d channels=%d colorspace=%d", h.Width, h.Height, h.Channels, h.Colorspace)
}

// ParseHeader reads the 14 byte header from the start of data and returns
// it together with the unconsumed rest of data.
func ParseHeader(data []byte) (Header, []byte, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		found := data
		if len(found) > len(Magic) {
			found = found[:len(Magic)]
		}
		return Header{}, data, &FormatError{
			Offset:   0,
			Expected: fmt.Sprintf("%q", Magic),
			Found:    fmt.Sprintf("%q", found),
			Err:      ErrInvalidMagic,
		}
	}
	if len(data) < HeaderSize {
		return Header{}, data, &FormatError{
			Offset:   len(data),
			Expected: fmt.Sprintf("%d header bytes", HeaderSize),
			Found:    fmt.Sprintf("%d", len(data)),
			Err:      ErrTruncated,
		}
	}

	header := Header{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}
	slog.Debug("qoi: header parsed",
		slog.Int64("width", int64(header.Width)),
		slog.Int64("height", int64(header.Height)),
		slog.Int("channels", int(header.Channels)),
		slog.Int("colorspace", int(header.Colorspace)))

	return header, data[HeaderSize:], nil
}
