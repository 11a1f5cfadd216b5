package pgwire

import (
	"fmt"

	"github.com/jackc/pgerrcode"
)

// Severity classifies an SqlException. Only Error,
// Fatal, and Panic drive protocol behavior in this core; the rest exist
// for interface completeness and may be produced by host handlers.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Terminal reports whether this severity must close the session: Fatal and
// Panic do; everything else emits ErrorResponse + ReadyForQuery and the
// session's query loop resumes.
func (s Severity) Terminal() bool {
	return s == SeverityFatal || s == SeverityPanic
}

// SqlException is the error type host query handlers (and this core
// itself) use to report SQL-visible failures, collapsing the
// Err/ErrHinter/ErrCoder split of pgsrv's errors.go into a single
// concrete struct.
type SqlException struct {
	Message  string
	SQLState string
	Severity Severity
}

func (e *SqlException) Error() string {
	return e.Message
}

// Errorf builds a recoverable (Severity Error) SqlException with the
// default sqlstate, 08000 (connection_exception).
func Errorf(format string, args ...any) *SqlException {
	return &SqlException{
		Message:  fmt.Sprintf(format, args...),
		SQLState: pgerrcode.ConnectionException,
		Severity: SeverityError,
	}
}

// Fatalf builds a session-terminating SqlException.
func Fatalf(format string, args ...any) *SqlException {
	e := Errorf(format, args...)
	e.Severity = SeverityFatal
	return e
}

// WithSQLState overrides the default sqlstate on e and returns it.
func (e *SqlException) WithSQLState(state string) *SqlException {
	e.SQLState = state
	return e
}

// WithSeverity overrides the severity on e and returns it.
func (e *SqlException) WithSeverity(sev Severity) *SqlException {
	e.Severity = sev
	return e
}

// protocolViolation builds the Error (sqlstate 08P01, protocol violation)
// the query loop answers with when it receives a frontend message it does
// not recognize. Errors from reading or decoding a frame are not routed
// here: they end the session.
func protocolViolation(format string, args ...any) *SqlException {
	return &SqlException{
		Message:  fmt.Sprintf(format, args...),
		SQLState: pgerrcode.ProtocolViolation,
		Severity: SeverityError,
	}
}

// unsupportedMessage builds the Error sent in response to a frontend
// message this core declares out of scope: extended-query tags, CopyFail,
// FunctionCall, and the GSS/SASL response family. sqlstate 0A000 (feature
// not supported).
func unsupportedMessage(tag byte) *SqlException {
	return &SqlException{
		Message:  fmt.Sprintf("unsupported message type %q", string(tag)),
		SQLState: pgerrcode.FeatureNotSupported,
		Severity: SeverityError,
	}
}
