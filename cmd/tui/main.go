package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/tui"
	"github.com/nnaakkaaii/tilemerge/internal/usecase"
)

func main() {
	size := flag.Int("size", 4, "board size")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	config := domain.DefaultGameConfig()
	config.Size = *size
	// 画面を乱さないようにログは捨てる
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	game, err := domain.NewGame(rng, config)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	summary, err := usecase.Run(context.Background(), game, tui.NewKeyboard(screen), tui.NewDisplay(screen), usecase.SessionConfig{})
	if err == nil && summary.Over {
		// 結果を見せてから終了する
		screen.PollEvent()
	}
	screen.Fini()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("score: %d, moves: %d, max tile: %d\n", summary.Score, summary.Moves, summary.MaxTile)
}
