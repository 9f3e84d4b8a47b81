package qoi

import (
	"image"
	"image/color"
)

// Image is the image type for decoded QuiteOk images. It implements the
// image.Image interface over the reconstructed pixels, row-major. Positions
// the stream did not emit a pixel for read as transparent black.
type Image struct {
	header Header
	pixels []Pixel
}

// NewImage wraps decoded pixels. The slice is not copied.
func NewImage(header Header, pixels []Pixel) *Image {
	return &Image{header: header, pixels: pixels}
}

// Header returns the header the image was decoded with.
func (img *Image) Header() Header {
	return img.header
}

// Pixels returns the decoded pixels in stream order.
func (img *Image) Pixels() []Pixel {
	return img.pixels
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{},
		Max: image.Point{
			X: int(img.header.Width),
			Y: int(img.header.Height),
		},
	}
}

func (img *Image) At(x, y int) color.Color {
	return img.NRGBAAt(x, y)
}

// NRGBAAt returns the pixel at (x, y) without boxing it in a color.Color.
func (img *Image) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	i := x + y*int(img.header.Width)
	if i >= len(img.pixels) {
		return color.NRGBA{}
	}
	return img.pixels[i]
}

// NRGBA copies the pixels into an *image.NRGBA of the header's dimensions.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	n := len(out.Pix) / 4
	if len(img.pixels) < n {
		n = len(img.pixels)
	}
	for i, px := range img.pixels[:n] {
		out.Pix[i*4+0] = px.R
		out.Pix[i*4+1] = px.G
		out.Pix[i*4+2] = px.B
		out.Pix[i*4+3] = px.A
	}
	return out
}
