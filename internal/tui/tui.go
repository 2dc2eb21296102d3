// Package tui はtcellを使った端末用の表示とキーボード入力
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
	"github.com/nnaakkaaii/tilemerge/internal/player"
)

const cellWidth = 7

// Display はtcell.Screenに盤面を描画する
type Display struct {
	screen tcell.Screen
	msg    string
	last   domain.Snapshot
}

// NewDisplay は新しいDisplayを生成する
func NewDisplay(screen tcell.Screen) *Display {
	return &Display{screen: screen}
}

func (d *Display) Render(s domain.Snapshot) error {
	d.last = s
	d.msg = ""
	d.draw()
	return nil
}

func (d *Display) Notify(msg string) error {
	d.msg = msg
	d.draw()
	return nil
}

func (d *Display) draw() {
	d.screen.Clear()
	style := tcell.StyleDefault
	y := 0
	drawText(d.screen, 0, y, style.Bold(true), "2048  (arrows / w a s d, q to quit)")
	y += 2

	for _, row := range d.last.Cells {
		for c, v := range row {
			text := "      ."
			if v != 0 {
				text = fmt.Sprintf("%*d", cellWidth, v)
			}
			drawText(d.screen, c*cellWidth, y, tileStyle(v), text)
		}
		y += 2
	}

	drawText(d.screen, 0, y, style, fmt.Sprintf("Score: %d", d.last.Score))
	if d.msg != "" {
		drawText(d.screen, 0, y+1, style.Foreground(tcell.ColorRed), d.msg)
	}
	d.screen.Show()
}

func tileStyle(v int) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case v == 0:
		return style.Foreground(tcell.ColorGray)
	case v <= 4:
		return style
	case v <= 64:
		return style.Foreground(tcell.ColorYellow)
	case v <= 512:
		return style.Foreground(tcell.ColorOrange).Bold(true)
	default:
		return style.Foreground(tcell.ColorGreen).Bold(true)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Keyboard はキー入力を方向トークンに変換するプレイヤー
type Keyboard struct {
	screen tcell.Screen
}

// NewKeyboard は新しいKeyboardを生成する
func NewKeyboard(screen tcell.Screen) *Keyboard {
	return &Keyboard{screen: screen}
}

// NextMove はキー入力があるまで待つ
// 方向以外の文字キーはそのまま返し、ゲーム側で無効な手として扱わせる
func (k *Keyboard) NextMove(ctx context.Context, _ *domain.Board) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		ev := k.screen.PollEvent()
		if ev == nil {
			// スクリーンが終了した
			return "", player.ErrQuit
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			k.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				return domain.Up.Token(), nil
			case tcell.KeyDown:
				return domain.Down.Token(), nil
			case tcell.KeyLeft:
				return domain.Left.Token(), nil
			case tcell.KeyRight:
				return domain.Right.Token(), nil
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", player.ErrQuit
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return "", player.ErrQuit
				}
				return string(ev.Rune()), nil
			}
		}
	}
}
