package qoitest

import (
	"image"
	"image/color"
)

const maxRun = 62

func hashColor(c color.NRGBA) int {
	return (int(c.R)*3 + int(c.G)*5 + int(c.B)*7 + int(c.A)*11) % 64
}

// Encode encodes a given image to the QuiteOk image format.
func Encode(img image.Image) []byte {
	b := img.Bounds()
	pixels := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}
	return EncodePixels(uint32(b.Dx()), uint32(b.Dy()), 4, pixels)
}

// EncodePixels encodes pixels in the given order. The pixel count does not
// have to match width*height.
func EncodePixels(width, height uint32, channels uint8, pixels []color.NRGBA) []byte {
	enc := encoder{last: color.NRGBA{A: 255}}
	enc.data = AppendHeader(nil, width, height, channels, 0)
	for _, px := range pixels {
		enc.encode(px)
	}
	enc.flushRun()
	return append(enc.data, endMarker...)
}

// encoder mirrors the decoder's cache: the last pixel of every chunk,
// runs included, is stored. Slots are only referenced once written.
type encoder struct {
	data    []byte
	last    color.NRGBA
	seen    [64]color.NRGBA
	written [64]bool
	run     int
}

func (e *encoder) remember(px color.NRGBA) {
	hash := hashColor(px)
	e.seen[hash] = px
	e.written[hash] = true
	e.last = px
}

func (e *encoder) flushRun() {
	if e.run == 0 {
		return
	}
	e.data = append(e.data, Run(e.run)...)
	e.run = 0
	e.remember(e.last)
}

func (e *encoder) encode(curr color.NRGBA) {
	// OpRun
	if curr == e.last {
		e.run++
		if e.run == maxRun {
			e.flushRun()
		}
		return
	}
	e.flushRun()

	// OpIndex
	if hash := hashColor(curr); e.written[hash] && e.seen[hash] == curr {
		e.data = append(e.data, Index(hash)...)
		e.remember(curr)
		return
	}

	if curr.A == e.last.A {
		// channel differences wrap around like the decoder's additions
		dr := int(int8(curr.R - e.last.R))
		dg := int(int8(curr.G - e.last.G))
		db := int(int8(curr.B - e.last.B))

		// OpDiff
		if -2 <= dr && dr <= 1 && -2 <= dg && dg <= 1 && -2 <= db && db <= 1 {
			e.data = append(e.data, Diff(dr, dg, db)...)
			e.remember(curr)
			return
		}

		// OpLuma
		drdg := dr - dg
		dbdg := db - dg
		if -32 <= dg && dg <= 31 && -8 <= drdg && drdg <= 7 && -8 <= dbdg && dbdg <= 7 {
			e.data = append(e.data, Luma(dg, drdg, dbdg)...)
			e.remember(curr)
			return
		}

		// OpRgb
		e.data = append(e.data, RGB(curr.R, curr.G, curr.B)...)
		e.remember(curr)
		return
	}

	// OpRgba
	e.data = append(e.data, RGBA(curr.R, curr.G, curr.B, curr.A)...)
	e.remember(curr)
}
