package save

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Writer accumulates little-endian save data.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// WriteShort writes a uint16 (2 bytes, LE).
func (w *Writer) WriteShort(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteInt writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt(val int32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteUint writes a uint32 (4 bytes, LE).
func (w *Writer) WriteUint(val uint32) {
	w.WriteInt(int32(val))
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	_, _ = w.buf.Write(data)
}

// Bytes returns the accumulated data.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the current length.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Reader reads little-endian save data. Every read past the end fails
// with ErrTruncated.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) need(n int, what string) error {
	if n < 0 || r.pos+n > len(r.data) {
		return fmt.Errorf("reading %s at %d (len=%d): %w", what, r.pos, len(r.data), ErrTruncated)
	}
	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1, "byte"); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadShort reads a uint16 (2 bytes, LE).
func (r *Reader) ReadShort() (uint16, error) {
	if err := r.need(2, "short"); err != nil {
		return 0, err
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadInt reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt() (int32, error) {
	if err := r.need(4, "int"); err != nil {
		return 0, err
	}
	val := int32(binary.LittleEndian.Uint32(r.data[r.pos:]))
	r.pos += 4
	return val, nil
}

// ReadUint reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUint() (uint32, error) {
	v, err := r.ReadInt()
	return uint32(v), err
}

// ReadBytes reads n bytes. The returned slice shares memory with the
// reader's data; callers must not modify it.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n, "bytes"); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n, "skipped bytes"); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}
