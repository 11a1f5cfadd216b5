// Package protocol implements the PostgreSQL frontend/backend wire
// protocol v3.0: startup negotiation, message framing, and the typed
// encodings used to carry query results back to the client.
package protocol

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Buffer is a byte cursor over an owned slice, offering network-byte-order
// primitive reads/writes and NUL-terminated string handling. It underlies
// the startup frame parser.
type Buffer struct {
	b   []byte
	pos int
}

// NewBuffer wraps b for reading, starting at offset 0.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Len returns the number of unread bytes remaining.
func (buf *Buffer) Len() int {
	return len(buf.b) - buf.pos
}

// Bytes returns the buffer's full backing slice, for writers.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

func (buf *Buffer) need(n int) error {
	if buf.Len() < n {
		return fmt.Errorf("protocol: unexpected end of message, need %d bytes, have %d", n, buf.Len())
	}
	return nil
}

// GetUint8 reads a single byte in network byte order and advances.
func (buf *Buffer) GetUint8() (byte, error) {
	if err := buf.need(1); err != nil {
		return 0, err
	}
	v := buf.b[buf.pos]
	buf.pos++
	return v, nil
}

// GetUint16 reads a big-endian uint16 and advances.
func (buf *Buffer) GetUint16() (uint16, error) {
	if err := buf.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(buf.b[buf.pos:])
	buf.pos += 2
	return v, nil
}

// GetInt16 reads a big-endian int16 and advances.
func (buf *Buffer) GetInt16() (int16, error) {
	v, err := buf.GetUint16()
	return int16(v), err
}

// GetUint32 reads a big-endian uint32 and advances.
func (buf *Buffer) GetUint32() (uint32, error) {
	if err := buf.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(buf.b[buf.pos:])
	buf.pos += 4
	return v, nil
}

// GetInt32 reads a big-endian int32 and advances.
func (buf *Buffer) GetInt32() (int32, error) {
	v, err := buf.GetUint32()
	return int32(v), err
}

// GetUint64 reads a big-endian uint64 and advances.
func (buf *Buffer) GetUint64() (uint64, error) {
	if err := buf.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(buf.b[buf.pos:])
	buf.pos += 8
	return v, nil
}

// GetInt64 reads a big-endian int64 and advances.
func (buf *Buffer) GetInt64() (int64, error) {
	v, err := buf.GetUint64()
	return int64(v), err
}

// GetFloat32 reads a big-endian IEEE-754 float32 and advances.
func (buf *Buffer) GetFloat32() (float32, error) {
	v, err := buf.GetUint32()
	return math.Float32frombits(v), err
}

// GetFloat64 reads a big-endian IEEE-754 float64 and advances.
func (buf *Buffer) GetFloat64() (float64, error) {
	v, err := buf.GetUint64()
	return math.Float64frombits(v), err
}

// GetBytes reads the next n bytes and advances.
func (buf *Buffer) GetBytes(n int) ([]byte, error) {
	if err := buf.need(n); err != nil {
		return nil, err
	}
	v := buf.b[buf.pos : buf.pos+n]
	buf.pos += n
	return v, nil
}

// GetString reads bytes up to the next NUL, returns them as a string, and
// advances past the NUL. It fails if no NUL terminator is found.
func (buf *Buffer) GetString() (string, error) {
	for i := buf.pos; i < len(buf.b); i++ {
		if buf.b[i] == 0 {
			s := string(buf.b[buf.pos:i])
			buf.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("protocol: invalid message: unterminated string")
}

// PutUint8 appends a single byte.
func (buf *Buffer) PutUint8(v byte) {
	buf.b = append(buf.b, v)
}

// PutInt16 appends a big-endian int16.
func (buf *Buffer) PutInt16(v int16) {
	buf.b = binary.BigEndian.AppendUint16(buf.b, uint16(v))
}

// PutInt32 appends a big-endian int32.
func (buf *Buffer) PutInt32(v int32) {
	buf.b = binary.BigEndian.AppendUint32(buf.b, uint32(v))
}

// PutInt64 appends a big-endian int64.
func (buf *Buffer) PutInt64(v int64) {
	buf.b = binary.BigEndian.AppendUint64(buf.b, uint64(v))
}

// PutFloat32 appends a big-endian IEEE-754 float32.
func (buf *Buffer) PutFloat32(v float32) {
	buf.PutInt32(int32(math.Float32bits(v)))
}

// PutFloat64 appends a big-endian IEEE-754 float64.
func (buf *Buffer) PutFloat64(v float64) {
	buf.PutInt64(int64(math.Float64bits(v)))
}

// PutString appends s followed by a terminating NUL.
func (buf *Buffer) PutString(s string) {
	buf.b = append(buf.b, s...)
	buf.b = append(buf.b, 0)
}

// PutBytes appends b verbatim, with no length prefix or terminator.
func (buf *Buffer) PutBytes(b []byte) {
	buf.b = append(buf.b, b...)
}
