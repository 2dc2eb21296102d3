package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/usecase"
)

func main() {
	size := flag.Int("size", 4, "board size")
	seed := flag.Int64("seed", 0, "random seed (0 = current time)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := domain.DefaultGameConfig()
	config.Size = *size
	config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if _, err := usecase.PlayGame(ctx, os.Stdin, os.Stdout, rng, config); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("play", "err", err)
		os.Exit(1)
	}
}
