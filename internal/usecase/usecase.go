package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/player"
)

// PlayGame はCLIで2048ゲームを実行する
func PlayGame(ctx context.Context, r io.Reader, w io.Writer, rng domain.Rand, config domain.GameConfig) (Summary, error) {
	game, err := domain.NewGame(rng, config)
	if err != nil {
		return Summary{}, err
	}

	fmt.Fprintln(w, "=== 2048 ===")
	fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, q=Quit")
	fmt.Fprintln(w)

	return Run(ctx, game, player.NewHuman(r, w), NewTextDisplay(w), SessionConfig{})
}
