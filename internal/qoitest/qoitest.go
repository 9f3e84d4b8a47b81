// Package qoitest builds QuiteOk byte streams for tests: headers, single
// chunks and whole encoded images.
package qoitest

import (
	"encoding/binary"
)

const magic = "qoif"

var endMarker = []byte{0, 0, 0, 0, 0, 0, 0, 1}

// AppendHeader appends the 14 byte header to dst.
func AppendHeader(dst []byte, width, height uint32, channels, colorspace uint8) []byte {
	dst = append(dst, magic...)
	dst = binary.BigEndian.AppendUint32(dst, width)
	dst = binary.BigEndian.AppendUint32(dst, height)
	return append(dst, channels, colorspace)
}

// End returns the end marker.
func End() []byte {
	return append([]byte(nil), endMarker...)
}

// RGB encodes an rgb chunk.
func RGB(r, g, b uint8) []byte {
	return []byte{0b11111110, r, g, b}
}

// RGBA encodes an rgba chunk.
func RGBA(r, g, b, a uint8) []byte {
	return []byte{0b11111111, r, g, b, a}
}

// Index encodes an index chunk. index must be in 0..63.
func Index(index int) []byte {
	return []byte{0b00000000 | byte(index&0b00111111)}
}

// Diff encodes a diff chunk. Differences must be in -2..1.
func Diff(dr, dg, db int) []byte {
	return []byte{0b01000000 | byte((dr+2)<<4) | byte((dg+2)<<2) | byte(db+2)}
}

// Luma encodes a luma chunk. dg must be in -32..31, drdg and dbdg in -8..7.
func Luma(dg, drdg, dbdg int) []byte {
	return []byte{
		0b10000000 | byte(dg+32),
		byte((drdg+8)<<4) | byte(dbdg+8),
	}
}

// Run encodes a run chunk of length n. n must be in 1..62.
func Run(n int) []byte {
	return []byte{0b11000000 | byte(n-1)}
}

// Stream concatenates a header, the given chunks and the end marker.
func Stream(width, height uint32, channels, colorspace uint8, chunks ...[]byte) []byte {
	data := AppendHeader(nil, width, height, channels, colorspace)
	for _, c := range chunks {
		data = append(data, c...)
	}
	return append(data, endMarker...)
}
