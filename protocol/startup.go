package protocol

import (
	"fmt"
	"io"
)

// Protocol version codes carried in the first 4 bytes of a startup frame's
// payload. SSLRequestCode = 1234<<16 | 5679; ProtocolVersion3_0 = 3<<16|0.
const (
	SSLRequestCode     int32 = 80877103
	CancelRequestCode  int32 = 80877102
	ProtocolVersion3_0 int32 = 196608
)

// ErrCancelRequest is returned by ReadStartupFrame when the frame is a
// CancelRequest rather than a real startup. This core's only obligation
// is to not misparse the frame as a startup message; the caller should
// simply close the connection.
var ErrCancelRequest = fmt.Errorf("protocol: cancel request")

// SSLResponse is the single untagged byte the server sends in reply to an
// SSLRequest. This core never supports TLS, so it is always 'N'.
const SSLResponse byte = 'N'

// StartupMessage is the parsed post-version payload of a v3.0 startup
// frame: a sequence of NUL-terminated key/value pairs.
type StartupMessage struct {
	Parameters map[string]string
}

// ReadStartupFrame reads one untagged frame from r: a 4-byte big-endian
// length (inclusive of itself) followed by length-4 payload bytes. It
// returns isSSL=true if the frame was an SSLRequest, in which case the
// caller must write SSLResponse and call ReadStartupFrame again; otherwise
// it returns the parsed StartupMessage.
//
// Grounded on _examples/louis77-mulldb/pgwire/reader.go's ReadStartup,
// rebuilt on top of Buffer.
func ReadStartupFrame(r io.Reader) (msg *StartupMessage, isSSL bool, err error) {
	lenBytes := make([]byte, 4)
	if _, err = io.ReadFull(r, lenBytes); err != nil {
		return nil, false, fmt.Errorf("protocol: read startup length: %w", err)
	}
	length := NewBuffer(lenBytes)
	n, _ := length.GetInt32()
	if n < 8 {
		return nil, false, fmt.Errorf("protocol: startup frame too short: %d bytes", n)
	}

	payload := make([]byte, n-4)
	if _, err = io.ReadFull(r, payload); err != nil {
		return nil, false, fmt.Errorf("protocol: read startup payload: %w", err)
	}

	buf := NewBuffer(payload)
	version, err := buf.GetInt32()
	if err != nil {
		return nil, false, err
	}

	if version == SSLRequestCode {
		return nil, true, nil
	}
	if version == CancelRequestCode {
		return nil, false, ErrCancelRequest
	}
	if version != ProtocolVersion3_0 {
		return nil, false, fmt.Errorf("protocol: unsupported protocol version %d.%d", version>>16, version&0xFFFF)
	}

	params := make(map[string]string)
	for buf.Len() > 1 {
		key, err := buf.GetString()
		if err != nil {
			return nil, false, fmt.Errorf("protocol: read startup key: %w", err)
		}
		if key == "" {
			break
		}
		value, err := buf.GetString()
		if err != nil {
			return nil, false, fmt.Errorf("protocol: read startup value: %w", err)
		}
		params[key] = value
	}

	return &StartupMessage{Parameters: params}, false, nil
}
