package main

import (
	"flag"
	"os"
)

// config holds the demo binary's CLI surface: --host/-H, --port/-P,
// defaulting to 127.0.0.1:15432. This binary is a reference host for
// the pgwire package, not part of it — grounded on mulldb's
// config.Parse() flag/env shape.
type config struct {
	Host string
	Port string
}

func parseConfig() *config {
	cfg := &config{}
	flag.StringVar(&cfg.Host, "host", envStr("PGWIRE_DEMO_HOST", "127.0.0.1"), "listen host")
	flag.StringVar(&cfg.Host, "H", envStr("PGWIRE_DEMO_HOST", "127.0.0.1"), "listen host (shorthand)")
	flag.StringVar(&cfg.Port, "port", envStr("PGWIRE_DEMO_PORT", "15432"), "listen port")
	flag.StringVar(&cfg.Port, "P", envStr("PGWIRE_DEMO_PORT", "15432"), "listen port (shorthand)")
	flag.Parse()
	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
