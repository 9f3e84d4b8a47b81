// Package export writes decoded images in common raster formats, optionally
// scaled or flipped first.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"go_qoidecode/pkg/qoi"
)

// Format is an output raster format.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var (
	// ErrUnknownFormat is returned for format names other than png, bmp and tiff.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrTooLarge is returned when the source or the transformed image has
	// more pixels than the configured limit.
	ErrTooLarge = errors.New("image too large")
)

// ParseFormat parses a format name, case insensitive.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case PNG, BMP, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Flip is a mirroring direction.
type Flip string

const (
	FlipNone       Flip = ""
	FlipHorizontal Flip = "h"
	FlipVertical   Flip = "v"
)

// Config holds configuration for the exporter.
type Config struct {
	Format Format
	Scale  float64 // resize factor, 0 or 1 keeps the size
	Flip   Flip

	// MaxPixels limits the size of the source and of the written image.
	MaxPixels int
}

// Option is a functional option for configuring the exporter.
type Option func(*Config)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithScale sets the resize factor.
func WithScale(s float64) Option {
	return func(c *Config) {
		c.Scale = s
	}
}

// WithMaxPixels sets the largest image, before and after scaling, that is
// written.
func WithMaxPixels(n int) Option {
	return func(c *Config) {
		c.MaxPixels = n
	}
}

// WithFlip mirrors the image before writing.
func WithFlip(f Flip) Option {
	return func(c *Config) {
		c.Flip = f
	}
}

// Exporter transforms and encodes images.
type Exporter struct {
	cfg Config
	g   *gift.GIFT
}

// New creates an Exporter. The default format is PNG and the default size
// limit is qoi.MaxPixels.
func New(opts ...Option) (*Exporter, error) {
	cfg := Config{Format: PNG, MaxPixels: qoi.MaxPixels}
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, err := ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	if cfg.Scale < 0 || math.IsNaN(cfg.Scale) || math.IsInf(cfg.Scale, 0) {
		return nil, fmt.Errorf("invalid scale %v", cfg.Scale)
	}
	if cfg.MaxPixels <= 0 {
		return nil, fmt.Errorf("invalid pixel limit %d", cfg.MaxPixels)
	}

	g := gift.New()
	switch cfg.Flip {
	case FlipNone:
	case FlipHorizontal:
		g.Add(gift.FlipHorizontal())
	case FlipVertical:
		g.Add(gift.FlipVertical())
	default:
		return nil, fmt.Errorf("invalid flip %q, expected %q or %q", cfg.Flip, FlipHorizontal, FlipVertical)
	}
	return &Exporter{cfg: cfg, g: g}, nil
}

// filters returns the filter chain for an image with bounds b.
func (e *Exporter) filters(b image.Rectangle) *gift.GIFT {
	if e.cfg.Scale == 0 || e.cfg.Scale == 1 {
		return e.g
	}
	w := max(int(math.Round(float64(b.Dx())*e.cfg.Scale)), 1)
	h := max(int(math.Round(float64(b.Dy())*e.cfg.Scale)), 1)
	g := gift.New(gift.Resize(w, h, gift.LanczosResampling))
	g.Add(e.g.Filters...)
	return g
}

// Transform applies the configured resize and flip.
func (e *Exporter) Transform(src image.Image) image.Image {
	g := e.filters(src.Bounds())
	if len(g.Filters) == 0 {
		return src
	}
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// CheckSize fails with ErrTooLarge when img, or img after the configured
// resize, exceeds the pixel limit.
func (e *Exporter) CheckSize(img image.Image) error {
	src := img.Bounds()
	dst := e.filters(src).Bounds(src)
	for _, b := range []image.Rectangle{src, dst} {
		if n := int64(b.Dx()) * int64(b.Dy()); n > int64(e.cfg.MaxPixels) {
			return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, b.Dx(), b.Dy(), e.cfg.MaxPixels)
		}
	}
	return nil
}

// Encode writes img to w in the configured format.
func (e *Exporter) Encode(w io.Writer, img image.Image) error {
	if err := e.CheckSize(img); err != nil {
		return err
	}
	img = e.Transform(img)
	switch e.cfg.Format {
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

// Path returns the output path for input name inside dir.
func (e *Exporter) Path(dir, name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".zst", ".qoi"} {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, base+"."+string(e.cfg.Format))
}

// WriteFile encodes img into the output file for name inside dir and returns
// its path.
func (e *Exporter) WriteFile(dir, name string, img image.Image) (string, error) {
	if err := e.CheckSize(img); err != nil {
		return "", err
	}
	path := e.Path(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := e.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}
