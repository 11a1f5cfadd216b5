package protocol

import (
	"bytes"
	"testing"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationOkBigEndianInvariant(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTransport(&buf)

	require.NoError(t, tr.Send(AuthenticationOk()))

	// encode(AuthenticationOk) must equal [0x52, 0,0,0,8, 0,0,0,0]
	require.Equal(t, []byte{0x52, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00}, buf.Bytes())
}

func TestRowDescriptionFieldCount(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTransport(&buf)

	fields := []Field{
		{Name: "name", Type: Text},
		{Name: "address", Type: Text},
		{Name: "age", Type: Int8},
	}
	require.NoError(t, tr.Send(RowDescription(fields)))

	out := buf.Bytes()
	require.Equal(t, byte('T'), out[0])
	count := NewBuffer(out[5:])
	n, err := count.GetInt16()
	require.NoError(t, err)
	require.Equal(t, int16(3), n)
}

func TestErrorResponseFields(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTransport(&buf)

	require.NoError(t, tr.Send(ErrorResponse(ErrorFields{
		Severity: "ERROR",
		SQLState: "42000",
		Message:  "boom",
	})))

	require.Equal(t, byte('E'), buf.Bytes()[0])

	var got pgproto3.ErrorResponse
	require.NoError(t, got.Decode(buf.Bytes()[5:]))
	require.Equal(t, "ERROR", got.Severity)
	require.Equal(t, "42000", got.Code)
	require.Equal(t, "boom", got.Message)
}

func TestCommandCompleteTag(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTransport(&buf)

	require.NoError(t, tr.Send(CommandComplete("SELECT 3")))
	require.Equal(t, byte('C'), buf.Bytes()[0])
}
