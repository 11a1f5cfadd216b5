// Command pgwire-demo is a reference host for the pgwire package: it
// answers every Query with a fixed three-row table, so any
// PostgreSQL-compatible client can connect and see typed rows flow
// end to end. Grounded on mulldb's main.go signal-handling shape.
package main

import (
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"pgwire"
	"pgwire/rows"
)

type person struct {
	name    string
	address string
	age     int64
}

var demoTable = []person{
	{"Ada Lovelace", "12 Mayfair", 36},
	{"Alan Turing", "Bletchley Park", 41},
	{"Grace Hopper", "US Navy Yard", 85},
}

func demoHandler(_ *pgwire.Session) pgwire.ParseHandler {
	return func(sql string) (*pgwire.PreparedStatement, error) {
		return &pgwire.PreparedStatement{
			Fields: []pgwire.Field{
				{Name: "name", Type: pgwire.Text},
				{Name: "address", Type: pgwire.Text},
				{Name: "age", Type: pgwire.Int8},
			},
			Handler: func(w *rows.Writer, _ pgwire.Values) error {
				for _, p := range demoTable {
					if err := w.AddRow(); err != nil {
						return err
					}
					if err := w.WriteString(p.name); err != nil {
						return err
					}
					if err := w.WriteString(p.address); err != nil {
						return err
					}
					if err := w.WriteInt8(p.age); err != nil {
						return err
					}
				}
				return nil
			},
		}, nil
	}
}

func main() {
	cfg := parseConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	srv := pgwire.NewServer(demoHandler, logger)

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("listen failed", "addr", addr, "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig.String())
		ln.Close()
	}()

	if err := srv.Serve(ln); err != nil {
		logger.Info("server stopped", "error", err)
	}
}
