package domain

// MoveResult は1回の移動要求の分類結果
type MoveResult int

const (
	// Invalid は認識できない入力、または盤面が変化しなかったことを表す（状態は変化しない）
	Invalid MoveResult = iota
	Valid
	GameOver
)

func (r MoveResult) String() string {
	switch r {
	case Invalid:
		return "Invalid"
	case Valid:
		return "Valid"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// State はゲームセッションの状態
type State int

const (
	Playing State = iota
	Over
)

func (s State) String() string {
	if s == Over {
		return "Over"
	}
	return "Playing"
}
