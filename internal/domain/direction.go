package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection は認識できない方向トークンを表す
var ErrInvalidDirection = errors.New("invalid direction token")

// Direction はスワイプの方向を表す
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NoMove は有効な手が存在しないことを表す
const NoMove = Direction(-1)

// Directions は全方向を列挙順に並べたもの
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection は w/a/s/d のトークンを方向に変換する
func ParseDirection(token string) (Direction, error) {
	switch token {
	case "w":
		return Up, nil
	case "s":
		return Down, nil
	case "a":
		return Left, nil
	case "d":
		return Right, nil
	default:
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
	}
}

// Token は方向に対応する入力トークンを返す
func (d Direction) Token() string {
	switch d {
	case Up:
		return "w"
	case Down:
		return "s"
	case Left:
		return "a"
	case Right:
		return "d"
	default:
		return ""
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Valid は4方向のいずれかであるかを返す
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// rotations は左スライドに正規化するための時計回り90度回転の回数
func (d Direction) rotations() int {
	switch d {
	case Down:
		return 1
	case Right:
		return 2
	case Up:
		return 3
	default:
		return 0
	}
}
