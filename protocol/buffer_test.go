package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferNumericRoundTrip(t *testing.T) {
	buf := NewBuffer(nil)
	buf.PutInt16(-7)
	buf.PutInt32(123456)
	buf.PutInt64(-9_000_000_000)
	buf.PutFloat32(1.5)
	buf.PutFloat64(3.14159)
	buf.PutUint8(0xAB)

	out := NewBuffer(buf.Bytes())

	i16, err := out.GetInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-7), i16)

	i32, err := out.GetInt32()
	require.NoError(t, err)
	require.Equal(t, int32(123456), i32)

	i64, err := out.GetInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-9_000_000_000), i64)

	f32, err := out.GetFloat32()
	require.NoError(t, err)
	require.InDelta(t, float32(1.5), f32, 0.0001)

	f64, err := out.GetFloat64()
	require.NoError(t, err)
	require.InDelta(t, 3.14159, f64, 0.00001)

	u8, err := out.GetUint8()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), u8)

	require.Equal(t, 0, out.Len())
}

func TestBufferStringRoundTrip(t *testing.T) {
	buf := NewBuffer(nil)
	buf.PutString("hello")
	buf.PutString("")
	buf.PutString("world")

	out := NewBuffer(buf.Bytes())
	s1, err := out.GetString()
	require.NoError(t, err)
	require.Equal(t, "hello", s1)

	s2, err := out.GetString()
	require.NoError(t, err)
	require.Equal(t, "", s2)

	s3, err := out.GetString()
	require.NoError(t, err)
	require.Equal(t, "world", s3)
}

func TestBufferStringMissingTerminator(t *testing.T) {
	buf := NewBuffer([]byte("no terminator"))
	_, err := buf.GetString()
	require.Error(t, err)
}

func TestBufferBytes(t *testing.T) {
	buf := NewBuffer(nil)
	buf.PutBytes([]byte{1, 2, 3, 4})

	out := NewBuffer(buf.Bytes())
	b, err := out.GetBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, b)
}

func TestBufferUnexpectedEOF(t *testing.T) {
	buf := NewBuffer([]byte{0x01})
	_, err := buf.GetInt32()
	require.Error(t, err)
}
