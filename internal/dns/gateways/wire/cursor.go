package wire

import "errors"

// ErrUnderflow is returned when a decode reads past the end of the input
// buffer, typically because the header counts promised more data than the
// datagram contains.
var ErrUnderflow = errors.New("wire: read past end of message")

// cursor is a read position over an input buffer. Every read is bounds
// checked and reports ErrUnderflow instead of advancing past the end, so a
// malformed message surfaces at the read that overran rather than as
// corrupted state later.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) uint8() (uint8, error) {
	if c.remaining() < 1 {
		return 0, ErrUnderflow
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

// uint16 reads two bytes in network byte order, high bits first. Bounds are
// checked before either byte is consumed, so a failed read never advances
// the cursor.
func (c *cursor) uint16() (uint16, error) {
	if c.remaining() < 2 {
		return 0, ErrUnderflow
	}
	hi, _ := c.uint8()
	lo, _ := c.uint8()
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *cursor) uint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, ErrUnderflow
	}
	hi, _ := c.uint16()
	lo, _ := c.uint16()
	return uint32(hi)<<16 | uint32(lo), nil
}

// bytes returns a view of the next n bytes without copying; callers that
// retain the result must copy it themselves.
func (c *cursor) bytes(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrUnderflow
	}
	v := c.data[c.off : c.off+n]
	c.off += n
	return v, nil
}

// builder is the write-side twin of cursor. The buffer is pre-sized exactly
// by the size calculator before writing begins, so appends are unchecked.
type builder struct {
	buf []byte
	off int
}

func newBuilder(size int) *builder {
	return &builder{buf: make([]byte, size)}
}

func (b *builder) uint8(v uint8) {
	b.buf[b.off] = v
	b.off++
}

func (b *builder) uint16(v uint16) {
	b.uint8(uint8(v >> 8))
	b.uint8(uint8(v))
}

func (b *builder) uint32(v uint32) {
	b.uint16(uint16(v >> 16))
	b.uint16(uint16(v))
}

func (b *builder) bytes(p []byte) {
	copy(b.buf[b.off:], p)
	b.off += len(p)
}
