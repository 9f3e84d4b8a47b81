package qoi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"go_qoidecode/internal/qoitest"
)

func TestParseHeader(t *testing.T) {
	// given
	data := []byte{
		0x71, 0x6F, 0x69, 0x66, // qoif
		0x00, 0x00, 0x02, 0x00, // width
		0x00, 0x00, 0x02, 0x00, // height
		0x04, // channels
		0x00, // colorspace
		0xAB, // rest
	}

	// when
	header, rest, err := ParseHeader(data)

	// then
	require.NoError(t, err)
	require.Equal(t, Header{Width: 0x200, Height: 0x200, Channels: 4, Colorspace: 0}, header)
	require.Equal(t, []byte{0xAB}, rest)
}

func TestParseHeaderRoundTrip(t *testing.T) {
	for _, want := range []Header{
		{Width: 0, Height: 0, Channels: 0, Colorspace: 0},
		{Width: 1, Height: 1, Channels: 3, Colorspace: 1},
		{Width: 800, Height: 600, Channels: 4, Colorspace: 0},
		{Width: math.MaxUint32, Height: math.MaxUint32, Channels: 0xFF, Colorspace: 0xFF},
		{Width: 0x01020304, Height: 0x0A0B0C0D, Channels: 7, Colorspace: 9},
	} {
		t.Run(want.String(), func(t *testing.T) {
			// given
			data := qoitest.AppendHeader(nil, want.Width, want.Height, want.Channels, want.Colorspace)

			// when
			got, rest, err := ParseHeader(data)

			// then
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Empty(t, rest)
		})
	}
}

func TestParseHeaderErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		data   []byte
		err    error
		offset int
	}{
		{name: "empty", data: nil, err: ErrInvalidMagic, offset: 0},
		{name: "short magic", data: []byte("qoi"), err: ErrInvalidMagic, offset: 0},
		{name: "wrong magic", data: []byte{0x73, 0x6F, 0x69, 0x66, 0, 0, 2, 0, 0, 0, 2, 0, 4, 0}, err: ErrInvalidMagic, offset: 0},
		{name: "truncated", data: []byte("qoif\x00\x00\x00\x01\x00"), err: ErrTruncated, offset: 9},
		{name: "missing colorspace", data: []byte("qoif\x00\x00\x00\x01\x00\x00\x00\x01\x04"), err: ErrTruncated, offset: 13},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// when
			_, rest, err := ParseHeader(tc.data)

			// then
			require.ErrorIs(t, err, tc.err)
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tc.offset, fe.Offset)
			require.Equal(t, tc.data, rest)
		})
	}
}

func TestHeaderPixelCount(t *testing.T) {
	h := Header{Width: math.MaxUint32, Height: 2}
	require.Equal(t, uint64(math.MaxUint32)*2, h.PixelCount())
	require.Equal(t, maxPixelHint, h.capacityHint())
	require.Equal(t, 6, Header{Width: 3, Height: 2}.capacityHint())
}
