package qoi

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}

// File is a parsed QuiteOk image: the header and its chunk stream, before
// any pixel has been reconstructed.
type File struct {
	Header Header
	Chunks []Chunk
}

// Parse reads the header and the chunk stream up to and including the end
// marker. It returns the bytes following the end marker. Error offsets are
// relative to the start of data.
func Parse(data []byte) (*File, []byte, error) {
	header, rest, err := ParseHeader(data)
	if err != nil {
		return nil, data, err
	}
	chunks, rest, err := DecodeStream(rest)
	if err != nil {
		return nil, data, rebase(err, HeaderSize)
	}
	return &File{Header: header, Chunks: chunks}, rest, nil
}

// Pixels reconstructs the pixels of the file.
func (f *File) Pixels() ([]Pixel, error) {
	return Reconstruct(f.Header, f.Chunks)
}

// DecodeBytes decodes a complete QuiteOk image held in data. Bytes after the
// end marker are ignored.
func DecodeBytes(data []byte) (Header, []Pixel, error) {
	file, _, err := Parse(data)
	if err != nil {
		return Header{}, nil, err
	}
	pixels, err := file.Pixels()
	if err != nil {
		return Header{}, nil, err
	}
	return file.Header, pixels, nil
}

// Decode Reads all bytes from the reader and decodes an image with the
// QuiteOk image format from it.
func Decode(reader io.Reader) (image.Image, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read qoi data: %w", err)
	}
	header, pixels, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return NewImage(header, pixels), nil
}

// DecodeConfig returns the dimensions of a QuiteOk image without decoding
// its chunk stream.
func DecodeConfig(reader io.Reader) (image.Config, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(reader, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return image.Config{}, fmt.Errorf("read qoi header: %w", err)
	}
	header, _, err := ParseHeader(buf[:n])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}
