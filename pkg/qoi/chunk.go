package qoi

import (
	"fmt"
)

// Chunk is one tagged record of the chunk stream. The concrete types are
// RGBChunk, RGBAChunk, IndexChunk, DiffChunk, LumaChunk and RunChunk.
type Chunk interface {
	fmt.Stringer
	// EncodedLen is the number of bytes the chunk occupies in the stream.
	EncodedLen() int
	// PixelCount is the number of pixels the chunk emits.
	PixelCount() int

	isChunk()
}

// RGBChunk sets red, green and blue. Alpha is carried over.
type RGBChunk struct {
	R, G, B uint8
}

// RGBAChunk sets all four channels.
type RGBAChunk struct {
	R, G, B, A uint8
}

// IndexChunk repeats the pixel stored in a cache slot.
type IndexChunk struct {
	Index uint8
}

// DiffChunk adds small differences (-2..1) to red, green and blue.
type DiffChunk struct {
	DR, DG, DB int8
}

// LumaChunk adds a green difference (-32..31) to all color channels, plus
// red and blue differences (-8..7) relative to it.
type LumaChunk struct {
	DG, DRDG, DBDG int8
}

// RunChunk repeats the previous pixel Length times.
type RunChunk struct {
	Length uint8
}

func (RGBChunk) isChunk()   {}
func (RGBAChunk) isChunk()  {}
func (IndexChunk) isChunk() {}
func (DiffChunk) isChunk()  {}
func (LumaChunk) isChunk()  {}
func (RunChunk) isChunk()   {}

// concrete returns the value form of chunk. Pointers to the chunk types are
// dereferenced. It reports false for nil and for foreign implementations.
func concrete(chunk Chunk) (Chunk, bool) {
	switch c := chunk.(type) {
	case RGBChunk, RGBAChunk, IndexChunk, DiffChunk, LumaChunk, RunChunk:
		return c, true
	case *RGBChunk:
		if c != nil {
			return *c, true
		}
	case *RGBAChunk:
		if c != nil {
			return *c, true
		}
	case *IndexChunk:
		if c != nil {
			return *c, true
		}
	case *DiffChunk:
		if c != nil {
			return *c, true
		}
	case *LumaChunk:
		if c != nil {
			return *c, true
		}
	case *RunChunk:
		if c != nil {
			return *c, true
		}
	}
	return nil, false
}

func (RGBChunk) EncodedLen() int   { return 4 }
func (RGBAChunk) EncodedLen() int  { return 5 }
func (IndexChunk) EncodedLen() int { return 1 }
func (DiffChunk) EncodedLen() int  { return 1 }
func (LumaChunk) EncodedLen() int  { return 2 }
func (RunChunk) EncodedLen() int   { return 1 }

func (RGBChunk) PixelCount() int   { return 1 }
func (RGBAChunk) PixelCount() int  { return 1 }
func (IndexChunk) PixelCount() int { return 1 }
func (DiffChunk) PixelCount() int  { return 1 }
func (LumaChunk) PixelCount() int  { return 1 }
func (c RunChunk) PixelCount() int { return int(c.Length) }

func (c RGBChunk) String() string {
	return fmt.Sprintf("RGB(%d,%d,%d)", c.R, c.G, c.B)
}

func (c RGBAChunk) String() string {
	return fmt.Sprintf("RGBA(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

func (c IndexChunk) String() string {
	return fmt.Sprintf("INDEX(%d)", c.Index)
}

func (c DiffChunk) String() string {
	return fmt.Sprintf("DIFF(%+d,%+d,%+d)", c.DR, c.DG, c.DB)
}

func (c LumaChunk) String() string {
	return fmt.Sprintf("LUMA(%+d,%+d,%+d)", c.DG, c.DRDG, c.DBDG)
}

func (c RunChunk) String() string {
	return fmt.Sprintf("RUN(%d)", c.Length)
}

// chunkKind identifies the chunk variant selected by a leading byte.
type chunkKind uint8

const (
	kindIndex chunkKind = iota
	kindDiff
	kindLuma
	kindRun
	kindRGB
	kindRGBA
)

var kindNames = [...]string{
	kindIndex: "INDEX",
	kindDiff:  "DIFF",
	kindLuma:  "LUMA",
	kindRun:   "RUN",
	kindRGB:   "RGB",
	kindRGBA:  "RGBA",
}

func (k chunkKind) String() string {
	return kindNames[k]
}

// chunkTable maps every possible leading byte to its variant. The 8-bit
// tags take precedence, so 0xFE and 0xFF are never a run.
var chunkTable [256]chunkKind

var chunkDecoders = [...]func(c *bitCursor) (Chunk, error){
	kindIndex: decodeIndex,
	kindDiff:  decodeDiff,
	kindLuma:  decodeLuma,
	kindRun:   decodeRun,
	kindRGB:   decodeRGB,
	kindRGBA:  decodeRGBA,
}

func init() {
	for i := range chunkTable {
		b := byte(i)
		switch {
		case b == OpRgb:
			chunkTable[i] = kindRGB
		case b == OpRgba:
			chunkTable[i] = kindRGBA
		case b&opMask == OpIndex:
			chunkTable[i] = kindIndex
		case b&opMask == OpDiff:
			chunkTable[i] = kindDiff
		case b&opMask == OpLuma:
			chunkTable[i] = kindLuma
		default:
			chunkTable[i] = kindRun
		}
	}
}

// DecodeChunk decodes the single chunk at the start of data and returns it
// together with the unconsumed rest of data.
func DecodeChunk(data []byte) (Chunk, []byte, error) {
	c := newBitCursor(data)
	chunk, err := decodeChunk(c)
	if err != nil {
		return nil, data, err
	}
	return chunk, c.remaining(), nil
}

func decodeChunk(c *bitCursor) (Chunk, error) {
	start := c.offset()
	lead, ok := c.peekByte()
	if !ok {
		return nil, &FormatError{
			Offset:   start,
			Expected: "chunk tag",
			Found:    "end of input",
			Err:      ErrNoChunk,
		}
	}

	chunk, err := chunkDecoders[chunkTable[lead]](c)
	if err != nil {
		return nil, err
	}
	if err := c.assertAligned(start); err != nil {
		return nil, err
	}
	return chunk, nil
}

func decodeRGB(c *bitCursor) (Chunk, error) {
	if _, err := c.readByte("rgb tag"); err != nil {
		return nil, err
	}
	var px [3]uint8
	for i := range px {
		v, err := c.readByte("rgb channel")
		if err != nil {
			return nil, err
		}
		px[i] = v
	}
	return RGBChunk{R: px[0], G: px[1], B: px[2]}, nil
}

func decodeRGBA(c *bitCursor) (Chunk, error) {
	if _, err := c.readByte("rgba tag"); err != nil {
		return nil, err
	}
	var px [4]uint8
	for i := range px {
		v, err := c.readByte("rgba channel")
		if err != nil {
			return nil, err
		}
		px[i] = v
	}
	return RGBAChunk{R: px[0], G: px[1], B: px[2], A: px[3]}, nil
}

func decodeIndex(c *bitCursor) (Chunk, error) {
	if _, err := c.readBits(2, "index tag"); err != nil {
		return nil, err
	}
	index, err := c.readBits(6, "index")
	if err != nil {
		return nil, err
	}
	return IndexChunk{Index: index}, nil
}

func decodeDiff(c *bitCursor) (Chunk, error) {
	if _, err := c.readBits(2, "diff tag"); err != nil {
		return nil, err
	}
	var d [3]int8
	for i := range d {
		v, err := c.readBits(2, "diff")
		if err != nil {
			return nil, err
		}
		d[i] = int8(v) - diffBias
	}
	return DiffChunk{DR: d[0], DG: d[1], DB: d[2]}, nil
}

func decodeLuma(c *bitCursor) (Chunk, error) {
	if _, err := c.readBits(2, "luma tag"); err != nil {
		return nil, err
	}
	dg, err := c.readBits(6, "luma green")
	if err != nil {
		return nil, err
	}
	drdg, err := c.readBits(4, "luma red")
	if err != nil {
		return nil, err
	}
	dbdg, err := c.readBits(4, "luma blue")
	if err != nil {
		return nil, err
	}
	return LumaChunk{
		DG:   int8(dg) - lumaGBias,
		DRDG: int8(drdg) - lumaBias,
		DBDG: int8(dbdg) - lumaBias,
	}, nil
}

func decodeRun(c *bitCursor) (Chunk, error) {
	if _, err := c.readBits(2, "run tag"); err != nil {
		return nil, err
	}
	run, err := c.readBits(6, "run length")
	if err != nil {
		return nil, err
	}
	return RunChunk{Length: run + runBias}, nil
}
