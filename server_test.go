package pgwire

import (
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/stretchr/testify/require"

	"pgwire/rows"
)

func TestServerAssignsIncreasingSessionIDs(t *testing.T) {
	var gotIDs []SessionID
	srv := NewServer(func(s *Session) ParseHandler {
		gotIDs = append(gotIDs, s.ID)
		return func(sql string) (*PreparedStatement, error) {
			return &PreparedStatement{
				Fields:  []Field{{Name: "n", Type: Int4}},
				Handler: func(w *rows.Writer, _ Values) error { return nil },
			}, nil
		}
	}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)
	defer ln.Close()

	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", ln.Addr().String())
		require.NoError(t, err)

		fe := pgproto3.NewFrontend(conn, conn)
		fe.Send(&pgproto3.StartupMessage{ProtocolVersion: 196608, Parameters: map[string]string{"user": "demo"}})
		require.NoError(t, fe.Flush())
		for {
			msg, err := fe.Receive()
			require.NoError(t, err)
			if _, ok := msg.(*pgproto3.ReadyForQuery); ok {
				break
			}
		}
		fe.Send(&pgproto3.Terminate{})
		require.NoError(t, fe.Flush())
		conn.Close()
	}

	require.Equal(t, []SessionID{1, 2, 3}, gotIDs)
}

func TestServerAddrReflectsListener(t *testing.T) {
	srv := NewServer(func(*Session) ParseHandler { return nil }, nil)
	require.Nil(t, srv.Addr())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go srv.Serve(ln)

	require.Eventually(t, func() bool {
		return srv.Addr() != nil
	}, time.Second, 5*time.Millisecond)
}
