// Package binary provides a bounds checked little-endian reader over an in-memory buffer.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned when a read or seek would pass the end of the buffer.
var ErrOutOfBounds = errors.New("read out of bounds")

// Reader reads little-endian values from a byte slice, tracking the current position.
// The underlying buffer is never modified.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of the buffer.
func NewReader(buf []byte) *Reader {
	return &Reader{
		buf: buf,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Seek moves the read position to the given absolute offset.
// Seeking to exactly the end of the buffer is allowed.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.buf) {
		return fmt.Errorf("seeking to offset %d of %d byte buffer: %w", offset, len(r.buf), ErrOutOfBounds)
	}
	r.pos = offset
	return nil
}

// ReadBytes returns the next n bytes and advances the position.
// The returned slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, fmt.Errorf("reading %d bytes at offset %d of %d byte buffer: %w",
			n, r.pos, len(r.buf), ErrOutOfBounds)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFloat32 reads a little-endian IEEE-754 single precision value.
// NaN and infinity bit patterns are returned as is.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}
