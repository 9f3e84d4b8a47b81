// Package qoi decodes images in the QuiteOk image format.
//
// Decoding runs in three forward steps over a fully buffered byte slice:
// ParseHeader reads the 14 byte header, DecodeStream splits the rest into
// chunks up to the end marker, and Reconstruct replays the chunks against
// the previous pixel and a 64 slot pixel cache. DecodeBytes and Decode run
// all three.
package qoi

import (
	"fmt"
	"strings"
)

// Stats counts the chunks of a stream per variant.
type Stats struct {
	RGB, RGBA, Index, Diff, Luma, Run int
	// Pixels is the number of pixels the chunks emit.
	Pixels int
	// Bytes is the encoded size of the chunks, excluding the end marker.
	Bytes int
}

// CountChunks summarizes chunks. Nil entries and chunk types foreign to this
// package are skipped.
func CountChunks(chunks []Chunk) Stats {
	var s Stats
	for _, chunk := range chunks {
		chunk, ok := concrete(chunk)
		if !ok {
			continue
		}
		switch chunk.(type) {
		case RGBChunk:
			s.RGB++
		case RGBAChunk:
			s.RGBA++
		case IndexChunk:
			s.Index++
		case DiffChunk:
			s.Diff++
		case LumaChunk:
			s.Luma++
		case RunChunk:
			s.Run++
		}
		s.Pixels += chunk.PixelCount()
		s.Bytes += chunk.EncodedLen()
	}
	return s
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rgb=%d rgba=%d index=%d diff=%d luma=%d run=%d", s.RGB, s.RGBA, s.Index, s.Diff, s.Luma, s.Run)
	fmt.Fprintf(&b, " pixels=%d bytes=%d", s.Pixels, s.Bytes)
	return b.String()
}
