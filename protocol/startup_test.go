package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadStartupFrameSSLRequest(t *testing.T) {
	// given the 8-byte frame [0x00,0x00,0x00,0x08, 0x04,0xD2,0x16,0x2F]
	frame := []byte{0x00, 0x00, 0x00, 0x08, 0x04, 0xD2, 0x16, 0x2F}
	r := bytes.NewReader(frame)

	msg, isSSL, err := ReadStartupFrame(r)
	require.NoError(t, err)
	require.True(t, isSSL)
	require.Nil(t, msg)
}

func TestReadStartupFrameStartupMessage(t *testing.T) {
	buf := NewBuffer(nil)
	payload := NewBuffer(nil)
	payload.PutInt32(ProtocolVersion3_0)
	payload.PutString("user")
	payload.PutString("alice")
	payload.PutString("database")
	payload.PutString("alice")
	payload.PutUint8(0) // empty key terminates the list

	buf.PutInt32(int32(4 + payload.Len()))
	buf.PutBytes(payload.Bytes())

	msg, isSSL, err := ReadStartupFrame(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.False(t, isSSL)
	require.Equal(t, "alice", msg.Parameters["user"])
	require.Equal(t, "alice", msg.Parameters["database"])
}

func TestReadStartupFrameCancelRequest(t *testing.T) {
	buf := NewBuffer(nil)
	payload := NewBuffer(nil)
	payload.PutInt32(CancelRequestCode)
	payload.PutInt32(1234) // pid
	payload.PutInt32(5678) // secret

	buf.PutInt32(int32(4 + payload.Len()))
	buf.PutBytes(payload.Bytes())

	_, _, err := ReadStartupFrame(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrCancelRequest)
}

func TestReadStartupFrameUnsupportedVersion(t *testing.T) {
	buf := NewBuffer(nil)
	payload := NewBuffer(nil)
	payload.PutInt32(2 << 16)

	buf.PutInt32(int32(4 + payload.Len()))
	buf.PutBytes(payload.Bytes())

	_, _, err := ReadStartupFrame(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
}
