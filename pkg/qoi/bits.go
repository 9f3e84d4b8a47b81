package qoi

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// bitCursor reads big-endian bit fields, most significant bit first, from a
// byte slice that is fully resident in memory. It tracks the absolute bit
// offset so that byte level peeks and bit level reads share one position.
type bitCursor struct {
	data []byte
	r    *bitio.Reader
	bit  int
}

func newBitCursor(data []byte) *bitCursor {
	return &bitCursor{
		data: data,
		r:    bitio.NewReader(bytes.NewReader(data)),
	}
}

// offset is the index of the byte holding the next unread bit.
func (c *bitCursor) offset() int {
	return c.bit / 8
}

func (c *bitCursor) aligned() bool {
	return c.bit%8 == 0
}

// remaining returns the unconsumed bytes. Only meaningful when aligned.
func (c *bitCursor) remaining() []byte {
	return c.data[c.offset():]
}

func (c *bitCursor) exhausted() bool {
	return c.offset() >= len(c.data)
}

// readBits reads n bits (n <= 8) as an unsigned value.
func (c *bitCursor) readBits(n uint8, field string) (uint8, error) {
	v, err := c.r.ReadBits(n)
	if err != nil {
		return 0, &FormatError{
			Offset:   c.offset(),
			Expected: fmt.Sprintf("%d bits of %s", n, field),
			Found:    "end of input",
			Err:      ErrTruncated,
		}
	}
	c.bit += int(n)
	return uint8(v), nil
}

func (c *bitCursor) readByte(field string) (uint8, error) {
	return c.readBits(8, field)
}

// peekByte returns the next whole byte without consuming it.
func (c *bitCursor) peekByte() (byte, bool) {
	if !c.aligned() || c.exhausted() {
		return 0, false
	}
	return c.data[c.offset()], true
}

// hasPrefix reports whether the unconsumed bytes start with p.
func (c *bitCursor) hasPrefix(p []byte) bool {
	return c.aligned() && bytes.HasPrefix(c.remaining(), p)
}

// skip consumes n whole bytes.
func (c *bitCursor) skip(n int, field string) error {
	for i := 0; i < n; i++ {
		if _, err := c.readByte(field); err != nil {
			return err
		}
	}
	return nil
}

// assertAligned fails when the last read left a partially consumed byte.
func (c *bitCursor) assertAligned(start int) error {
	if c.aligned() {
		return nil
	}
	return &FormatError{
		Offset:   start,
		Expected: "byte aligned chunk",
		Found:    fmt.Sprintf("%d trailing bits", c.bit%8),
		Err:      ErrMisaligned,
	}
}
