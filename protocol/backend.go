package protocol

import (
	"github.com/jackc/pgx/v5/pgproto3"
)

// AuthenticationOk builds the trust-path authentication success message.
func AuthenticationOk() *pgproto3.AuthenticationOk {
	return &pgproto3.AuthenticationOk{}
}

// ParameterStatus builds a ParameterStatus message.
func ParameterStatus(name, value string) *pgproto3.ParameterStatus {
	return &pgproto3.ParameterStatus{Name: name, Value: value}
}

// ReadyForQuery builds a ReadyForQuery message. This core always reports
// idle ('I'): this core has no transaction tracking.
func ReadyForQuery() *pgproto3.ReadyForQuery {
	return &pgproto3.ReadyForQuery{TxStatus: 'I'}
}

// RowDescription builds a RowDescription message from a field schema.
// Table OID and column attribute are always 0, type modifier is always
// -1, format code is always 0 (text).
func RowDescription(fields []Field) *pgproto3.RowDescription {
	fd := make([]pgproto3.FieldDescription, len(fields))
	for i, f := range fields {
		fd[i] = pgproto3.FieldDescription{
			Name:                 []byte(f.Name),
			TableOID:             0,
			TableAttributeNumber: 0,
			DataTypeOID:          uint32(f.Type),
			DataTypeSize:         f.Type.typeSize(),
			TypeModifier:         -1,
			Format:               0,
		}
	}
	return &pgproto3.RowDescription{Fields: fd}
}

// DataRow builds a DataRow message from a row of already text-encoded
// column values; a nil entry encodes as SQL NULL.
func DataRow(values [][]byte) *pgproto3.DataRow {
	return &pgproto3.DataRow{Values: values}
}

// CommandComplete builds a CommandComplete message carrying the given tag
// string, e.g. "SELECT 3".
func CommandComplete(tag string) *pgproto3.CommandComplete {
	return &pgproto3.CommandComplete{CommandTag: []byte(tag)}
}

// ErrorFields describes the three ErrorResponse fields this core always
// sends: severity text, sqlstate, and message.
type ErrorFields struct {
	Severity string
	SQLState string
	Message  string
}

// ErrorResponse builds an ErrorResponse message.
func ErrorResponse(f ErrorFields) *pgproto3.ErrorResponse {
	return &pgproto3.ErrorResponse{
		Severity: f.Severity,
		Code:     f.SQLState,
		Message:  f.Message,
	}
}
