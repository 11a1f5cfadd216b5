// Package pgwire is an embeddable PostgreSQL frontend/backend wire
// protocol (v3.0) server core: startup negotiation, the simple-query
// cycle, and typed row encoding, with the SQL itself left entirely to a
// host-supplied handler.
//
// The extended-query sub-protocol (Parse/Bind/Describe/Execute/Sync/
// Flush/Close) is accepted off the wire but answered as unsupported.
package pgwire

import (
	"pgwire/protocol"
	"pgwire/rows"
)

// Values carries bind parameters for a prepared statement. It is present
// for extensibility but is always empty under the simple query path this
// core implements — no client ever binds parameters without using the
// (unsupported) extended-query protocol.
type Values [][]byte

// PreparedStatement is what a ParseHandler returns for one query: its
// result schema and the function that produces its rows. It must outlive
// the handler invocation and the write that follows; callers get this for
// free in Go since it's an ordinary garbage-collected value referenced by
// the session's local variables for the duration of the response.
type PreparedStatement struct {
	Fields  []Field
	Handler func(w *rows.Writer, values Values) error
}

// Field re-exports protocol.Field so host code implementing ParseHandler
// doesn't need to import the protocol package directly.
type Field = protocol.Field

// Oid re-exports protocol.Oid and its named constants.
type Oid = protocol.Oid

const (
	Bool    = protocol.Bool
	Bytea   = protocol.Bytea
	Int8    = protocol.Int8
	Int2    = protocol.Int2
	Int4    = protocol.Int4
	Text    = protocol.Text
	Float4  = protocol.Float4
	Float8  = protocol.Float8
	Varchar = protocol.Varchar
)

// ParseHandler turns an opaque SQL string into a PreparedStatement. The
// SQL is handed over verbatim — this core does no parsing or planning.
type ParseHandler func(sql string) (*PreparedStatement, error)

// HandlerFactory builds a ParseHandler for a newly accepted Session,
// allowing the host to carry per-session state.
type HandlerFactory func(s *Session) ParseHandler
