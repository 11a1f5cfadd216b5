package protocol

import (
	"io"

	"github.com/jackc/pgx/v5/pgproto3"
)

// Transport reads and writes post-startup frontend/backend messages over
// one connection. It wraps a single pgproto3.Backend, which already
// implements post-startup framing (1 tag byte + length +
// payload) and the full frontend tag table (Q, X, P, B, D, E, C, H, S, F,
// f, p and friends) as typed structs — the "tag byte → constructor"
// registry a full wire implementation would need.
//
// Construct one Transport per session, after ReadStartupFrame has
// returned a StartupMessage.
type Transport struct {
	backend *pgproto3.Backend
}

// NewTransport wraps rw for post-startup message exchange.
func NewTransport(rw io.ReadWriter) *Transport {
	return &Transport{backend: pgproto3.NewBackend(rw, rw)}
}

// Unsupported wraps a frontend message this core declares out of scope:
// the extended-query sub-protocol (Parse/Bind/Describe/Execute/Sync/
// Flush/Close), CopyFail, FunctionCall, and the GSS/SASL authentication
// response family. The tag is preserved so the session can report it in
// the resulting ErrorResponse.
type Unsupported struct {
	Tag byte
}

// Receive reads and classifies the next frontend message. It returns
// exactly one of: *pgproto3.Query, *pgproto3.Terminate, *Unsupported, or
// an error.
func (t *Transport) Receive() (any, error) {
	msg, err := t.backend.Receive()
	if err != nil {
		return nil, err
	}

	switch m := msg.(type) {
	case *pgproto3.Query:
		return m, nil
	case *pgproto3.Terminate:
		return m, nil
	case *pgproto3.Parse:
		return &Unsupported{Tag: 'P'}, nil
	case *pgproto3.Bind:
		return &Unsupported{Tag: 'B'}, nil
	case *pgproto3.Describe:
		return &Unsupported{Tag: 'D'}, nil
	case *pgproto3.Execute:
		return &Unsupported{Tag: 'E'}, nil
	case *pgproto3.Sync:
		return &Unsupported{Tag: 'S'}, nil
	case *pgproto3.Flush:
		return &Unsupported{Tag: 'H'}, nil
	case *pgproto3.Close:
		return &Unsupported{Tag: 'C'}, nil
	case *pgproto3.CopyFail:
		return &Unsupported{Tag: 'f'}, nil
	case *pgproto3.FunctionCall:
		return &Unsupported{Tag: 'F'}, nil
	case *pgproto3.GSSEncRequest, *pgproto3.GSSResponse,
		*pgproto3.SASLInitialResponse, *pgproto3.SASLResponse,
		*pgproto3.PasswordMessage:
		return &Unsupported{Tag: 'p'}, nil
	default:
		return &Unsupported{Tag: 0}, nil
	}
}

// Send writes a single backend message.
func (t *Transport) Send(msg pgproto3.BackendMessage) error {
	t.backend.Send(msg)
	return t.backend.Flush()
}
