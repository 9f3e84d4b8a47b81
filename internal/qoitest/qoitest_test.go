package qoitest

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendHeader(t *testing.T) {
	require.Equal(t, []byte{
		'q', 'o', 'i', 'f',
		0x00, 0x00, 0x02, 0x00,
		0x00, 0x00, 0x00, 0x03,
		0x04, 0x01,
	}, AppendHeader(nil, 0x200, 3, 4, 1))
}

func TestChunkBuilders(t *testing.T) {
	require.Equal(t, []byte{0xFE, 1, 2, 3}, RGB(1, 2, 3))
	require.Equal(t, []byte{0xFF, 1, 2, 3, 4}, RGBA(1, 2, 3, 4))
	require.Equal(t, []byte{0x3F}, Index(63))
	require.Equal(t, []byte{0b01_00_10_11}, Diff(-2, 0, 1))
	require.Equal(t, []byte{0b10_000000, 0b0000_1111}, Luma(-32, -8, 7))
	require.Equal(t, []byte{0xFD}, Run(62))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, End())
}

func TestEncodePixels(t *testing.T) {
	// given
	red := color.NRGBA{R: 200, A: 255}
	pixels := []color.NRGBA{
		// run of the start pixel
		{A: 255},
		{A: 255},
		// rgb
		red,
		// diff
		{R: 201, G: 255, A: 255},
		// luma
		{R: 211, G: 9, B: 9, A: 255},
		// index
		red,
		// rgba
		{R: 1, G: 2, B: 3, A: 4},
	}

	// when
	data := EncodePixels(7, 1, 4, pixels)

	// then
	var want []byte
	want = AppendHeader(want, 7, 1, 4, 0)
	want = append(want, Run(2)...)
	want = append(want, RGB(200, 0, 0)...)
	want = append(want, Diff(1, -1, 0)...)
	want = append(want, Luma(10, 0, -1)...)
	want = append(want, Index(hashColor(red))...)
	want = append(want, RGBA(1, 2, 3, 4)...)
	want = append(want, End()...)
	require.Equal(t, want, data)
}

func TestEncodeSplitsLongRuns(t *testing.T) {
	// given
	pixels := make([]color.NRGBA, 130)
	for i := range pixels {
		pixels[i] = color.NRGBA{A: 255}
	}

	// when
	data := EncodePixels(130, 1, 4, pixels)

	// then
	want := Stream(130, 1, 4, 0, Run(62), Run(62), Run(6))
	require.Equal(t, want, data)
}
