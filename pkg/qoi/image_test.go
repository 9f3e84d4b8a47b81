package qoi

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImage(t *testing.T) {
	// given
	pixels := []Pixel{
		{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255},
		{R: 4, A: 255}, {R: 5, A: 255},
	}
	img := NewImage(Header{Width: 3, Height: 2, Channels: 4}, pixels)

	// then
	require.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	require.Equal(t, color.NRGBAModel, img.ColorModel())
	require.Equal(t, color.NRGBA{R: 2, A: 255}, img.At(1, 0))
	require.Equal(t, color.NRGBA{R: 5, A: 255}, img.At(1, 1))
	require.Equal(t, color.NRGBA{}, img.At(2, 1))
	require.Equal(t, color.NRGBA{}, img.At(3, 0))
	require.Equal(t, color.NRGBA{}, img.At(-1, 0))

	nrgba := img.NRGBA()
	require.Equal(t, img.Bounds(), nrgba.Bounds())
	require.Equal(t, color.NRGBA{R: 4, A: 255}, nrgba.NRGBAAt(0, 1))
	require.Equal(t, color.NRGBA{}, nrgba.NRGBAAt(2, 1))
}

func TestImageIgnoresExtraPixels(t *testing.T) {
	img := NewImage(Header{Width: 1, Height: 1}, []Pixel{{R: 9, A: 9}, {R: 8, A: 8}})

	require.Equal(t, color.NRGBA{R: 9, A: 9}, img.At(0, 0))
	require.Equal(t, []uint8{9, 0, 0, 9}, img.NRGBA().Pix)
}
