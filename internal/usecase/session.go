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

// Display は盤面とメッセージを表示する
type Display interface {
	Render(snapshot domain.Snapshot) error
	Notify(msg string) error
}

// TextDisplay は盤面をASCIIアートで書き出すDisplay
type TextDisplay struct {
	w io.Writer
}

// NewTextDisplay は新しいTextDisplayを生成する
func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: w}
}

func (d *TextDisplay) Render(s domain.Snapshot) error {
	_, err := fmt.Fprintf(d.w, "%vScore: %d\n", s, s.Score)
	return err
}

func (d *TextDisplay) Notify(msg string) error {
	_, err := fmt.Fprintln(d.w, msg)
	return err
}

// nopDisplay は何も表示しないDisplay
type nopDisplay struct{}

func (nopDisplay) Render(domain.Snapshot) error { return nil }
func (nopDisplay) Notify(string) error          { return nil }

// SessionConfig はセッションの設定
type SessionConfig struct {
	// Delay は手と手の間の待ち時間
	Delay time.Duration
}

// Summary はセッション終了時の結果
type Summary struct {
	Score   int
	Moves   int
	MaxTile int
	Over    bool
}

func summarize(game *domain.Game) Summary {
	return Summary{
		Score:   game.Score(),
		Moves:   game.Moves(),
		MaxTile: game.MaxTile(),
		Over:    game.IsOver(),
	}
}

// Run はゲームが終わるかプレイヤーが終了するまで手を受け付ける
// プレイヤーの終了は正常終了として扱う
func Run(ctx context.Context, game *domain.Game, p player.Player, display Display, config SessionConfig) (Summary, error) {
	if err := display.Render(game.Snapshot()); err != nil {
		return summarize(game), err
	}
	if game.IsOver() {
		return summarize(game), display.Notify("Game over!")
	}

	for {
		token, err := p.NextMove(ctx, game.Board())
		if errors.Is(err, player.ErrQuit) {
			return summarize(game), display.Notify("Quit.")
		}
		if err != nil {
			return summarize(game), err
		}

		result := game.Move(token)
		if err := display.Render(game.Snapshot()); err != nil {
			return summarize(game), err
		}

		switch result {
		case domain.Invalid:
			if err := display.Notify("Invalid move!"); err != nil {
				return summarize(game), err
			}
		case domain.GameOver:
			return summarize(game), display.Notify("Game over!")
		case domain.Valid:
			if err := wait(ctx, config.Delay); err != nil {
				return summarize(game), err
			}
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
