package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/player"
)

// 自動プレイの戦略
const (
	StrategyRandom     = "random"
	StrategyExpectimax = "expectimax"
	StrategyParallel   = "parallel"
	StrategyLua        = "lua"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// AutoPlayConfig は自動プレイの設定
type AutoPlayConfig struct {
	Game     domain.GameConfig
	Strategy string
	MaxDepth int
	// Evaluator は探索系の戦略で使う評価関数の名前
	Evaluator string
	Delay     time.Duration
	// Script はStrategyLuaで使うスクリプトのソース
	Script  string
	Verbose bool
}

// DefaultAutoPlayConfig はデフォルトの設定を返す
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		Game:      domain.DefaultGameConfig(),
		Strategy:  StrategyExpectimax,
		MaxDepth:  3,
		Evaluator: domain.EvalLargestTile,
		Delay:     100 * time.Millisecond,
		Verbose:   true,
	}
}

// NewBot は設定に応じたプレイヤーを生成する
// 戻り値のcloseは必ず呼ぶこと
func NewBot(rng domain.Rand, config AutoPlayConfig) (player.Player, func(), error) {
	switch config.Strategy {
	case StrategyRandom:
		return player.NewRandom(rng), func() {}, nil
	case StrategyExpectimax, StrategyParallel:
		ev, err := domain.NewEvaluator(config.Evaluator)
		if err != nil {
			return nil, nil, err
		}
		if config.Strategy == StrategyParallel {
			return player.NewSolver(domain.NewParallelSolver(ev, config.MaxDepth)), func() {}, nil
		}
		return player.NewSolver(domain.NewSolver(ev, config.MaxDepth)), func() {}, nil
	case StrategyLua:
		s, err := player.NewScript(config.Script)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.Strategy)
	}
}

// AutoPlay は自動でゲームをプレイする
func AutoPlay(ctx context.Context, w io.Writer, rng domain.Rand, config AutoPlayConfig) (Summary, error) {
	bot, closeBot, err := NewBot(rng, config)
	if err != nil {
		return Summary{}, err
	}
	defer closeBot()

	game, err := domain.NewGame(rng, config.Game)
	if err != nil {
		return Summary{}, err
	}

	var display Display = nopDisplay{}
	if config.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintf(w, "Size: %d, Strategy: %s, Depth: %d, Eval: %s\n\n", config.Game.Size, config.Strategy, config.MaxDepth, config.Evaluator)
		display = NewTextDisplay(w)
	}

	summary, err := Run(ctx, game, bot, display, SessionConfig{Delay: config.Delay})

	// 最終結果は常に表示
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Final Score: %d\n", summary.Score)
	fmt.Fprintf(w, "Total Moves: %d\n", summary.Moves)
	fmt.Fprintf(w, "Max Tile: %d\n", summary.MaxTile)

	if errors.Is(err, player.ErrNoMove) {
		return summary, nil
	}
	return summary, err
}
