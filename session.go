package pgwire

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgproto3"

	"pgwire/protocol"
	"pgwire/rows"
)

// SessionID identifies one connected client for the lifetime of its
// connection. Assigned by the Server in increasing order starting at 1.
type SessionID int64

// serverParameters is the enumerated map of server parameters sent once
// startup completes. Iteration order is insignificant,
// so it's stored as an ordered slice purely to make tests deterministic.
var serverParameters = [][2]string{
	{"server_version", "14"},
	{"server_encoding", "UTF-8"},
	{"client_encoding", "UTF-8"},
	{"DateStyle", "ISO"},
	{"TimeZone", "UTC"},
}

// Session owns one connected socket and drives the protocol state
// machine: startup negotiation, then the query/ready cycle, until
// Terminate, EOF, or a fatal error.
//
// Grounded on _examples/louis77-mulldb/server/connection.go's Connection
// (startup → queryLoop shape), rebuilt on top of protocol.Transport/
// pgproto3 instead of hand-rolled framing.
type Session struct {
	ID   SessionID
	Conn net.Conn

	logger *slog.Logger

	handler     ParseHandler
	transport   *protocol.Transport
	startupDone bool
	secret      int32
}

// NewSession constructs a session in the pre-startup state. The caller
// must call SetHandler before Start.
func NewSession(id SessionID, conn net.Conn, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:     id,
		Conn:   conn,
		logger: logger.With("session", int64(id)),
	}
}

// SetHandler installs the host's query handler. The two-layer shape
// (HandlerFactory → ParseHandler) lets the host carry per-session state;
// Server.Serve calls this with the result of its HandlerFactory before
// calling Start.
func (s *Session) SetHandler(h ParseHandler) {
	s.handler = h
}

// Start runs the session's read/write loop to completion: startup
// negotiation, then the query/ready cycle, until the peer disconnects,
// sends Terminate, or a fatal error occurs. It always closes Conn before
// returning.
//
// Rather than driving the session off a shared cooperative reactor, this
// core runs each session's suspension points as ordinary sequential
// blocking calls in the goroutine the Server spawned for it — per-session
// state is therefore never touched by more than one goroutine, and writes
// are naturally ordered because they all happen synchronously from this
// one call stack.
func (s *Session) Start() error {
	defer s.Conn.Close()

	if err := s.startUp(); err != nil {
		if errors.Is(err, protocol.ErrCancelRequest) {
			s.logger.Debug("cancel request received, closing")
			return nil
		}
		s.logger.Error("startup failed", "error", err)
		return err
	}

	return s.queryLoop()
}

// startUp implements the pre-startup state: read the startup
// frame, reject SSL (always), and on a real StartupMessage send
// AuthenticationOk (trust path — no auth beyond this),
// ParameterStatus for each server parameter, BackendKeyData, then
// ReadyForQuery('I').
func (s *Session) startUp() error {
	for {
		msg, isSSL, err := protocol.ReadStartupFrame(s.Conn)
		if err != nil {
			return err
		}
		if isSSL {
			if _, err := s.Conn.Write([]byte{protocol.SSLResponse}); err != nil {
				return err
			}
			continue
		}

		s.transport = protocol.NewTransport(s.Conn)

		if err := s.transport.Send(protocol.AuthenticationOk()); err != nil {
			return err
		}
		for _, p := range serverParameters {
			if err := s.transport.Send(protocol.ParameterStatus(p[0], p[1])); err != nil {
				return err
			}
		}
		s.secret = rand.Int31()
		if err := s.transport.Send(&pgproto3.BackendKeyData{ProcessID: uint32(s.ID), SecretKey: uint32(s.secret)}); err != nil {
			return err
		}
		if err := s.transport.Send(protocol.ReadyForQuery()); err != nil {
			return err
		}

		_ = msg // parameters (user/database/...) are accepted but not enforced on the trust path
		s.startupDone = true
		return nil
	}
}

// queryLoop implements the idle-state query/ready cycle.
func (s *Session) queryLoop() error {
	for {
		msg, err := s.transport.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch m := msg.(type) {
		case *pgproto3.Terminate:
			return nil

		case *pgproto3.Query:
			if err := s.runQuery(m.String); err != nil {
				return err
			}

		case *protocol.Unsupported:
			if err := s.recover(unsupportedMessage(m.Tag)); err != nil {
				return err
			}

		default:
			if err := s.recover(protocolViolation("unrecognized frontend message")); err != nil {
				return err
			}
		}
	}
}

// runQuery dispatches one Query message to the host handler and writes
// RowDescription → DataRow* → CommandComplete → ReadyForQuery, in that
// strict order. Handler and row-writer errors are routed through recover
// rather than returned, since they're per-query failures that don't
// necessarily end the session.
func (s *Session) runQuery(sql string) error {
	id := newQueryID()
	start := time.Now()
	s.logger.Info("query start", "query_id", int64(id), "sql", quoteQuery(sql))

	stmt, err := s.invokeHandler(sql)
	if err != nil {
		s.logger.Info("query error", "query_id", int64(id), "elapsed", formatElapsed(time.Since(start)), "error", err)
		return s.recover(err)
	}

	w := rows.NewWriter(len(stmt.Fields))
	runErr := stmt.Handler(w, nil)
	if runErr == nil {
		// AddRow reports a ColumnWriteError if the handler left its last
		// row with fewer than len(stmt.Fields) columns.
		runErr = w.AddRow()
	}
	if runErr != nil {
		s.logger.Info("query error", "query_id", int64(id), "elapsed", formatElapsed(time.Since(start)), "error", runErr)
		return s.recover(runErr)
	}

	if err := s.transport.Send(protocol.RowDescription(stmt.Fields)); err != nil {
		return err
	}
	if _, err := s.Conn.Write(w.Bytes()); err != nil {
		return err
	}
	tag := fmt.Sprintf("SELECT %d", w.NumRows())
	if err := s.transport.Send(protocol.CommandComplete(tag)); err != nil {
		return err
	}
	if err := s.transport.Send(protocol.ReadyForQuery()); err != nil {
		return err
	}

	s.logger.Info("query end", "query_id", int64(id), "elapsed", formatElapsed(time.Since(start)), "rows", w.NumRows())
	return nil
}

// invokeHandler calls the host's ParseHandler, normalizing any error it
// returns into an *SqlException so recover has a severity to act on.
func (s *Session) invokeHandler(sql string) (*PreparedStatement, error) {
	stmt, err := s.handler(sql)
	if err != nil {
		var sqlErr *SqlException
		if errors.As(err, &sqlErr) {
			return nil, sqlErr
		}
		return nil, Errorf("%s", err.Error())
	}
	return stmt, nil
}

// recover implements this core's error propagation policy: Fatal/Panic
// terminate the session (the error is returned up to Start, which closes
// the socket); anything else writes ErrorResponse + ReadyForQuery and the
// loop resumes.
func (s *Session) recover(err error) error {
	var sqlErr *SqlException
	if !errors.As(err, &sqlErr) {
		sqlErr = Errorf("%s", err.Error())
	}

	if sqlErr.Severity.Terminal() {
		return sqlErr
	}

	if sendErr := s.transport.Send(protocol.ErrorResponse(protocol.ErrorFields{
		Severity: string(sqlErr.Severity),
		SQLState: sqlErr.SQLState,
		Message:  sqlErr.Message,
	})); sendErr != nil {
		return sendErr
	}
	return s.transport.Send(protocol.ReadyForQuery())
}
