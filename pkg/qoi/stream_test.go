package qoi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"go_qoidecode/internal/qoitest"
)

func TestDecodeStreamEndMarkerOnly(t *testing.T) {
	// given
	data := []byte{0, 0, 0, 0, 0, 0, 0, 1}

	// when
	chunks, rest, err := DecodeStream(data)

	// then
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Empty(t, rest)
}

func TestDecodeStream(t *testing.T) {
	// given
	var data []byte
	for _, c := range [][]byte{
		qoitest.RGB(255, 255, 255),
		qoitest.Index(5),
		qoitest.Diff(-1, 0, 1),
		qoitest.Luma(10, -2, 3),
		qoitest.Run(7),
		qoitest.RGBA(1, 2, 3, 4),
		qoitest.End(),
		{0xCA, 0xFE},
	} {
		data = append(data, c...)
	}

	// when
	chunks, rest, err := DecodeStream(data)

	// then
	require.NoError(t, err)
	require.Equal(t, []Chunk{
		RGBChunk{R: 255, G: 255, B: 255},
		IndexChunk{Index: 5},
		DiffChunk{DR: -1, DG: 0, DB: 1},
		LumaChunk{DG: 10, DRDG: -2, DBDG: 3},
		RunChunk{Length: 7},
		RGBAChunk{R: 1, G: 2, B: 3, A: 4},
	}, chunks)
	require.Equal(t, []byte{0xCA, 0xFE}, rest)
}

func TestDecodeStreamZeroIndexBeforeMarker(t *testing.T) {
	// given: an index 0 chunk makes eight zero bytes before the final 1
	data := append([]byte{0x00}, qoitest.End()...)

	// when
	chunks, rest, err := DecodeStream(data)

	// then
	require.NoError(t, err)
	require.Equal(t, []Chunk{IndexChunk{Index: 0}}, chunks)
	require.Empty(t, rest)
}

func TestDecodeStreamStopsAtFirstMarker(t *testing.T) {
	// given
	data := append(qoitest.End(), qoitest.End()...)

	// when
	chunks, rest, err := DecodeStream(data)

	// then
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Equal(t, qoitest.End(), rest)
}

func TestDecodeStreamErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		data   []byte
		err    error
		offset int
	}{
		{name: "empty", data: nil, err: ErrMissingEndMarker, offset: 0},
		{name: "no marker", data: []byte{0xFE, 1, 2, 3, 0xC0}, err: ErrMissingEndMarker, offset: 5},
		{name: "partial marker", data: []byte{0, 0, 0, 0, 0, 0, 1}, err: ErrMissingEndMarker, offset: 7},
		{name: "truncated chunk", data: []byte{0xC0, 0xFF, 1, 2}, err: ErrTruncated, offset: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// when
			chunks, rest, err := DecodeStream(tc.data)

			// then
			require.Nil(t, chunks)
			require.Equal(t, tc.data, rest)
			require.ErrorIs(t, err, tc.err)
			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tc.offset, fe.Offset)
		})
	}
}
