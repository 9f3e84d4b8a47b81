package qoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateHeader(t *testing.T) {
	for _, tc := range []struct {
		name   string
		header Header
		valid  bool
	}{
		{name: "rgba", header: Header{Width: 2, Height: 2, Channels: 4, Colorspace: 0}, valid: true},
		{name: "rgb linear", header: Header{Width: 2, Height: 2, Channels: 3, Colorspace: 1}, valid: true},
		{name: "zero width", header: Header{Width: 0, Height: 2, Channels: 4}},
		{name: "too large", header: Header{Width: 40_000, Height: 40_000, Channels: 4}},
		{name: "channels", header: Header{Width: 2, Height: 2, Channels: 5}},
		{name: "colorspace", header: Header{Width: 2, Height: 2, Channels: 4, Colorspace: 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateHeader(tc.header)
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidHeader)
		})
	}
}

func TestValidatePixelCount(t *testing.T) {
	h := Header{Width: 3, Height: 2}
	require.NoError(t, ValidatePixelCount(h, 6))
	require.ErrorIs(t, ValidatePixelCount(h, 5), ErrPixelCount)
	require.ErrorIs(t, ValidatePixelCount(h, 7), ErrPixelCount)
}

func TestValidateDimensions(t *testing.T) {
	require.NoError(t, ValidateDimensions(Header{Width: 20_000, Height: 20_000}))
	require.NoError(t, ValidateDimensions(Header{Width: 0, Height: 5, Channels: 9}))
	require.ErrorIs(t, ValidateDimensions(Header{Width: 1 << 20, Height: 1 << 20}), ErrInvalidHeader)
	require.ErrorIs(t, ValidateDimensions(Header{Width: 20_001, Height: 20_000}), ErrInvalidHeader)
}
