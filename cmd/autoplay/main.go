package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/usecase"
)

func main() {
	size := flag.Int("size", 4, "board size")
	strategy := flag.String("strategy", usecase.StrategyExpectimax, "random, expectimax, parallel or lua")
	depth := flag.Int("depth", 3, "search depth")
	eval := flag.String("eval", domain.EvalLargestTile, "evaluator: "+strings.Join(domain.EvaluatorNames, ", "))
	delay := flag.Int("delay", 100, "delay between moves (ms)")
	script := flag.String("script", "", "lua script defining next_move (strategy=lua)")
	seed := flag.Int64("seed", 0, "random seed (0 = current time)")
	quiet := flag.Bool("quiet", false, "suppress output")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	config := usecase.DefaultAutoPlayConfig()
	config.Game.Size = *size
	config.Game.Logger = logger
	config.Strategy = *strategy
	config.MaxDepth = *depth
	config.Evaluator = *eval
	config.Delay = time.Duration(*delay) * time.Millisecond
	config.Verbose = !*quiet

	if *script != "" {
		src, err := os.ReadFile(*script)
		if err != nil {
			logger.Error("read script", "path", *script, "err", err)
			os.Exit(1)
		}
		config.Script = string(src)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := usecase.AutoPlay(ctx, os.Stdout, rng, config); err != nil {
		logger.Error("autoplay", "seed", *seed, "err", err)
		os.Exit(1)
	}
}
