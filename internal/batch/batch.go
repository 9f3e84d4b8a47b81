// Package batch decodes many QuiteOk images, memoizing results by content.
package batch

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"go_qoidecode/pkg/qoi"
)

// Config holds configuration for the decoder.
type Config struct {
	CacheSize int // number of decoded images kept (0 disables the memo)
	Workers   int // concurrent decodes (0 = GOMAXPROCS)
	Strict    bool
}

// Option is a functional option for configuring the decoder.
type Option func(*Config)

// WithCacheSize sets how many decoded images are memoized.
func WithCacheSize(n int) Option {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// WithWorkers sets the number of concurrent decodes.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithStrict enables header and pixel count validation after decoding.
// Headers above qoi.MaxPixels are rejected either way.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// Result is the outcome of decoding one input.
type Result struct {
	Name   string
	File   *qoi.File
	Image  *qoi.Image
	Cached bool
	Err    error
}

type entry struct {
	file  *qoi.File
	image *qoi.Image
}

// Decoder decodes inputs and memoizes decoded images by their SHA-256.
type Decoder struct {
	cfg   Config
	cache *lru.Cache[[sha256.Size]byte, entry]
}

// New creates a Decoder.
func New(opts ...Option) (*Decoder, error) {
	cfg := Config{CacheSize: 16}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	d := &Decoder{cfg: cfg}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[[sha256.Size]byte, entry](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create decode cache: %w", err)
		}
		d.cache = cache
	}
	return d, nil
}

// Decode decodes a single encoded image.
func (d *Decoder) Decode(name string, data []byte) Result {
	res := Result{Name: name}

	var key [sha256.Size]byte
	if d.cache != nil {
		key = sha256.Sum256(data)
		if e, ok := d.cache.Get(key); ok {
			res.File, res.Image, res.Cached = e.file, e.image, true
			slog.Debug("batch: cache hit", slog.String("name", name))
			return res
		}
	}

	file, _, err := qoi.Parse(data)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", name, err)
		return res
	}
	// the image is exported at the header's dimensions, strict or not
	if err := qoi.ValidateDimensions(file.Header); err != nil {
		res.Err = fmt.Errorf("%s: %w", name, err)
		return res
	}
	pixels, err := file.Pixels()
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", name, err)
		return res
	}
	if d.cfg.Strict {
		if err := qoi.ValidateHeader(file.Header); err != nil {
			res.Err = fmt.Errorf("%s: %w", name, err)
			return res
		}
		if err := qoi.ValidatePixelCount(file.Header, len(pixels)); err != nil {
			res.Err = fmt.Errorf("%s: %w", name, err)
			return res
		}
	}

	res.File = file
	res.Image = qoi.NewImage(file.Header, pixels)
	if d.cache != nil {
		d.cache.Add(key, entry{file: res.File, image: res.Image})
	}
	return res
}

// Input is a named encoded image.
type Input struct {
	Name string
	Data []byte
}

// DecodeAll decodes inputs on the configured number of workers. Results are
// returned in input order.
func (d *Decoder) DecodeAll(inputs []Input) []Result {
	results := make([]Result, len(inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(d.cfg.Workers, len(inputs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = d.Decode(inputs[i].Name, inputs[i].Data)
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Len returns the number of memoized images.
func (d *Decoder) Len() int {
	if d.cache == nil {
		return 0
	}
	return d.cache.Len()
}
