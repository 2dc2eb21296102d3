// Package player は移動方向のトークンを供給するプレイヤーを提供する
package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
)

var (
	// ErrQuit はプレイヤーがゲームの終了を選んだことを表す
	ErrQuit = errors.New("player quit")
	// ErrNoMove は探索で有効な手が見つからなかったことを表す
	ErrNoMove = errors.New("no move available")
)

// Player は次の移動方向をトークン（w/a/s/d）で返す
type Player interface {
	NextMove(ctx context.Context, board *domain.Board) (string, error)
}

// Human は標準入力などから1行ずつ入力を読むプレイヤー
type Human struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewHuman は新しいHumanを生成する
func NewHuman(r io.Reader, w io.Writer) *Human {
	return &Human{reader: bufio.NewReader(r), w: w}
}

// NextMove はプロンプトを表示して1行読み込む
func (h *Human) NextMove(ctx context.Context, _ *domain.Board) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(h.w, "Move: ")
	line, err := h.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", fmt.Errorf("read move: %w", err)
	}

	input := strings.TrimSpace(strings.ToLower(line))
	if input == "q" {
		return "", ErrQuit
	}
	return input, nil
}

// Random は4方向から一様にランダムに選ぶプレイヤー
type Random struct {
	rng domain.Rand
}

// NewRandom は新しいRandomを生成する
func NewRandom(rng domain.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) NextMove(ctx context.Context, _ *domain.Board) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return domain.Directions[p.rng.Intn(len(domain.Directions))].Token(), nil
}

// Searcher は盤面から最良の手を探索する
type Searcher interface {
	BestMove(board *domain.Board) domain.Direction
}

// Solver は探索結果を手として返すプレイヤー
type Solver struct {
	searcher Searcher
}

// NewSolver は新しいSolverを生成する
func NewSolver(searcher Searcher) *Solver {
	return &Solver{searcher: searcher}
}

func (p *Solver) NextMove(ctx context.Context, board *domain.Board) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := p.searcher.BestMove(board)
	if !dir.Valid() {
		return "", ErrNoMove
	}
	return dir.Token(), nil
}
