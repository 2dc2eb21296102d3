package domain

import (
	"log/slog"
)

// GameConfig はゲームの設定
type GameConfig struct {
	Size   int
	Logger *slog.Logger
}

// DefaultGameConfig はデフォルトの設定を返す
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Size:   4,
		Logger: slog.Default(),
	}
}

// Game は2048ゲームの状態を管理する
type Game struct {
	board  *Board
	rng    Rand
	state  State
	moves  int
	logger *slog.Logger
}

// NewGame は新しいゲームを開始する
// 空の盤面に2つのタイルを配置してから開始する
func NewGame(rng Rand, config GameConfig) (*Game, error) {
	board, err := NewBoard(config.Size)
	if err != nil {
		return nil, err
	}
	board.SpawnRandomTile(rng)
	board.SpawnRandomTile(rng)
	return NewGameFromBoard(board, rng, config), nil
}

// NewGameFromBoard は指定した盤面からゲームを開始する（タイルは追加しない）
func NewGameFromBoard(board *Board, rng Rand, config GameConfig) *Game {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		board:  board,
		rng:    rng,
		state:  Playing,
		logger: logger,
	}
	if board.IsGameOver() {
		g.state = Over
	}
	return g
}

// Board は現在の盤面のコピーを返す
func (g *Game) Board() *Board {
	return g.board.Copy()
}

// Snapshot は現在の盤面とスコアを返す
func (g *Game) Snapshot() Snapshot {
	return g.board.Snapshot()
}

// Score は現在のスコアを返す
func (g *Game) Score() int {
	return g.board.Score()
}

// Moves は受理された移動の回数を返す
func (g *Game) Moves() int {
	return g.moves
}

// MaxTile は盤面上の最大タイルを返す
func (g *Game) MaxTile() int {
	return g.board.MaxTile()
}

// State はセッションの状態を返す
func (g *Game) State() State {
	return g.state
}

// IsOver はゲームが終了しているかどうかを返す
func (g *Game) IsOver() bool {
	return g.state == Over
}

// Move はトークン（w/a/s/d）で指定された方向に移動する
func (g *Game) Move(token string) MoveResult {
	if g.state == Over {
		return GameOver
	}
	dir, err := ParseDirection(token)
	if err != nil {
		g.logger.Debug("illegal move", "token", token, "err", err)
		return Invalid
	}
	return g.MoveDirection(dir)
}

// MoveDirection は指定した方向にスワイプし、新しいタイルを配置して結果を分類する
func (g *Game) MoveDirection(dir Direction) MoveResult {
	if g.state == Over {
		return GameOver
	}
	if !dir.Valid() {
		g.logger.Debug("illegal move", "direction", int(dir))
		return Invalid
	}

	moved, gained := g.board.Slide(dir)
	if !moved {
		return Invalid
	}
	g.moves++
	g.logger.Debug("moved", "direction", dir.String(), "gained", gained, "score", g.board.Score())

	if !g.board.SpawnRandomTile(g.rng) {
		g.state = Over
		return GameOver
	}
	if g.board.IsGameOver() {
		g.state = Over
		return GameOver
	}
	return Valid
}
