package qoi

// pixelCache is the 64 slot table of previously emitted pixels. Slots are
// addressed by hashColor and collisions overwrite.
type pixelCache struct {
	slots   [CacheSize]Pixel
	written [CacheSize]bool
}

func (pc *pixelCache) store(px Pixel) {
	key := hashColor(px)
	pc.slots[key] = px
	pc.written[key] = true
}

func (pc *pixelCache) load(index uint8) (Pixel, bool) {
	if int(index) >= CacheSize || !pc.written[index] {
		return Pixel{}, false
	}
	return pc.slots[index], true
}

// reconstructor replays chunks against the previous pixel and the cache.
type reconstructor struct {
	prev   Pixel
	cache  pixelCache
	pixels []Pixel
}

func newReconstructor(capacity int) *reconstructor {
	return &reconstructor{
		prev:   startPixel,
		pixels: make([]Pixel, 0, capacity),
	}
}

// Reconstruct replays chunks in order and returns the emitted pixels. The
// header is used as an allocation hint only.
func Reconstruct(header Header, chunks []Chunk) ([]Pixel, error) {
	r := newReconstructor(header.capacityHint())
	for i, chunk := range chunks {
		if err := r.apply(i, chunk); err != nil {
			return nil, err
		}
	}
	return r.pixels, nil
}

func (r *reconstructor) apply(ordinal int, chunk Chunk) error {
	chunk, ok := concrete(chunk)
	if !ok {
		return &ReconstructionError{
			Chunk: ordinal,
			Pixel: len(r.pixels),
			Err:   ErrUnknownChunk,
		}
	}

	prev := r.prev
	var px Pixel

	switch c := chunk.(type) {
	case RGBChunk:
		px = Pixel{R: c.R, G: c.G, B: c.B, A: prev.A}
	case RGBAChunk:
		px = Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
	case IndexChunk:
		cached, ok := r.cache.load(c.Index)
		if !ok {
			return &ReconstructionError{
				Chunk: ordinal,
				Pixel: len(r.pixels),
				Index: c.Index,
				Err:   ErrEmptyCacheSlot,
			}
		}
		px = cached
	case DiffChunk:
		// uint8 arithmetic wraps modulo 256
		px = Pixel{
			R: prev.R + uint8(c.DR),
			G: prev.G + uint8(c.DG),
			B: prev.B + uint8(c.DB),
			A: prev.A,
		}
	case LumaChunk:
		px = Pixel{
			R: prev.R + uint8(c.DG) + uint8(c.DRDG),
			G: prev.G + uint8(c.DG),
			B: prev.B + uint8(c.DG) + uint8(c.DBDG),
			A: prev.A,
		}
	case RunChunk:
		for i := 0; i < int(c.Length); i++ {
			r.pixels = append(r.pixels, prev)
		}
		r.finish(prev)
		return nil
	}

	r.pixels = append(r.pixels, px)
	r.finish(px)
	return nil
}

// finish records the last pixel emitted by a chunk.
func (r *reconstructor) finish(last Pixel) {
	r.cache.store(last)
	r.prev = last
}
