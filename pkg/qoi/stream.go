package qoi

import (
	"errors"
	"log/slog"
)

// DecodeStream decodes chunks from data until the end marker and returns them
// together with the bytes following the marker. Error offsets are relative to
// the start of data.
func DecodeStream(data []byte) ([]Chunk, []byte, error) {
	c := newBitCursor(data)
	chunks, err := decodeStream(c)
	if err != nil {
		return nil, data, err
	}
	return chunks, c.remaining(), nil
}

func decodeStream(c *bitCursor) ([]Chunk, error) {
	// a chunk is at least one byte, minus the end marker
	chunks := make([]Chunk, 0, max(len(c.data)-len(endMarker), 0)/2)
	for {
		// the marker starts with a zero byte, which is also a valid index
		// chunk, so it has to be tested first
		if c.hasPrefix(endMarker[:]) {
			if err := c.skip(len(endMarker), "end marker"); err != nil {
				return nil, err
			}
			break
		}

		chunk, err := decodeChunk(c)
		if errors.Is(err, ErrNoChunk) {
			return nil, &FormatError{
				Offset:   c.offset(),
				Expected: "end marker",
				Found:    "end of input",
				Err:      ErrMissingEndMarker,
			}
		}
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	slog.Debug("qoi: chunk stream decoded",
		slog.Int("chunks", len(chunks)),
		slog.Int("bytes", c.offset()),
		slog.Int("trailing", len(c.remaining())))

	return chunks, nil
}
