package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/nnaakkaaii/tilemerge/internal/server"
)

func main() {
	addr := flag.String("addr", ":"+getenv("PORT", "8080"), "listen address")
	size := flag.Int("size", 4, "board size")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	config := server.DefaultConfig()
	config.Size = *size
	config.Logger = logger
	if allow := getenv("ORIGIN_ALLOWLIST", ""); allow != "" {
		config.AllowOrigins = strings.Split(allow, ",")
	}

	logger.Info("server listening", "addr", *addr, "size", *size)
	if err := http.ListenAndServe(*addr, server.New(config)); err != nil {
		logger.Error("listen", "err", err)
		os.Exit(1)
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
