package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSize = errors.New("board size must be positive")
	ErrNotSquare   = errors.New("board cells must form a square grid")
	ErrInvalidTile = errors.New("tile must be zero or a power of two")
)

// ProbFour は新しいタイルが4になる確率（それ以外は2）
const ProbFour = 0.1

// Rand は盤面操作が使う乱数源。*rand.Rand がそのまま満たす
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Board はN×Nの2048ゲーム盤面とスコアを表す
type Board struct {
	cells [][]int
	size  int
	score int
}

// Snapshot は表示や通信用の盤面のコピー
type Snapshot struct {
	Size  int     `json:"size"`
	Cells [][]int `json:"cells"`
	Score int     `json:"score"`
}

// NewBoard は空のBoardを生成する
func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{cells: newGrid(size), size: size}, nil
}

// NewBoardFromCells はセルの値を指定してBoardを生成する
func NewBoardFromCells(cells [][]int) (*Board, error) {
	size := len(cells)
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	grid := newGrid(size)
	for r, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), size)
		}
		for c, v := range row {
			if v < 0 || v&(v-1) != 0 || v == 1 {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
			grid[r][c] = v
		}
	}
	return &Board{cells: grid, size: size}, nil
}

func newGrid(size int) [][]int {
	grid := make([][]int, size)
	for r := range grid {
		grid[r] = make([]int, size)
	}
	return grid
}

// Size は盤面の一辺の長さを返す
func (b *Board) Size() int {
	return b.size
}

// Get は指定した位置のセル値を取得する
func (b *Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Score は累積スコアを返す
func (b *Board) Score() int {
	return b.score
}

// Copy はBoardのコピーを返す
func (b *Board) Copy() *Board {
	grid := newGrid(b.size)
	for r := range b.cells {
		copy(grid[r], b.cells[r])
	}
	return &Board{cells: grid, size: b.size, score: b.score}
}

// Equal は2つのBoardのセルが等しいかどうかを返す（スコアは比較しない）
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for r := range b.cells {
		if !equalLine(b.cells[r], other.cells[r]) {
			return false
		}
	}
	return true
}

// EmptyCells は空のセルの座標一覧を返す
func (b *Board) EmptyCells() [][2]int {
	var empty [][2]int
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.cells[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	return empty
}

// MaxTile は盤面上の最大タイルを返す
func (b *Board) MaxTile() int {
	max := 0
	for _, row := range b.cells {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// SpawnRandomTile は空きマスの中から一様に1つ選び、2か4を置く
// 空きマスがなければ何もせずfalseを返す
func (b *Board) SpawnRandomTile(rng Rand) bool {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return false
	}
	pos := empty[rng.Intn(len(empty))]
	val := 2
	if rng.Float64() < ProbFour {
		val = 4
	}
	b.cells[pos[0]][pos[1]] = val
	return true
}

// IsGameOver は空きマスがなく、隣接する同じ値のペアもないかどうかを返す
func (b *Board) IsGameOver() bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			v := b.cells[r][c]
			if v == 0 {
				return false
			}
			if c < b.size-1 && v == b.cells[r][c+1] {
				return false
			}
			if r < b.size-1 && v == b.cells[r+1][c] {
				return false
			}
		}
	}
	return true
}

// Slide は指定した方向にスワイプし、変化があったかと獲得スコアを返す
// 盤面を回転させて左スライドに正規化し、スライド後に元の向きへ戻す
func (b *Board) Slide(dir Direction) (bool, int) {
	if !dir.Valid() {
		return false, 0
	}
	n := dir.rotations()
	for i := 0; i < n; i++ {
		b.rotate()
	}
	moved, gained := b.slideLeft()
	for i := 0; i < (4-n)%4; i++ {
		b.rotate()
	}
	b.score += gained
	return moved, gained
}

// SwipeWithoutSpawn は盤面を変更せず、スワイプ後の盤面と獲得スコアを返す
func (b *Board) SwipeWithoutSpawn(dir Direction) (*Board, int) {
	next := b.Copy()
	_, gained := next.Slide(dir)
	return next, gained
}

// rotate は盤面を時計回りに90度回転させる
// 新しいグリッドを確保して読み出し元の座標から埋める
func (b *Board) rotate() {
	n := b.size
	grid := newGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			grid[i][j] = b.cells[n-1-j][i]
		}
	}
	b.cells = grid
}

// slideLeft は全ての行を左にマージする
func (b *Board) slideLeft() (bool, int) {
	moved := false
	total := 0
	for r, row := range b.cells {
		merged, score := mergeLine(row)
		if !equalLine(row, merged) {
			moved = true
			b.cells[r] = merged
		}
		total += score
	}
	return moved, total
}

// mergeLine は1行を左方向にマージし、結果とスコアを返す
// 1回のスライドで同じタイルが2度マージされることはない
func mergeLine(line []int) ([]int, int) {
	score := 0
	merged := make([]int, 0, len(line))
	canMerge := false
	for _, v := range line {
		if v == 0 {
			continue
		}
		if canMerge && merged[len(merged)-1] == v {
			merged[len(merged)-1] *= 2
			score += merged[len(merged)-1]
			canMerge = false
			continue
		}
		merged = append(merged, v)
		canMerge = true
	}

	result := make([]int, len(line))
	copy(result, merged)
	return result, score
}

func equalLine(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Render は各セルを幅5の右寄せ数値で整形した行の一覧を返す
func (b *Board) Render() []string {
	rows := make([]string, 0, b.size)
	for _, row := range b.cells {
		fields := make([]string, len(row))
		for c, v := range row {
			fields[c] = fmt.Sprintf("%5d", v)
		}
		rows = append(rows, strings.Join(fields, " "))
	}
	return rows
}

// Snapshot は現在の盤面とスコアのコピーを返す
func (b *Board) Snapshot() Snapshot {
	return Snapshot{Size: b.size, Cells: b.Copy().cells, Score: b.score}
}

// String はBoardをASCIIアートとして表示する
func (b *Board) String() string {
	return formatGrid(b.cells)
}

// String はSnapshotの盤面をBoardと同じ形式で表示する
func (s Snapshot) String() string {
	return formatGrid(s.Cells)
}

func formatGrid(cells [][]int) string {
	var sb strings.Builder
	line := "+" + strings.Repeat("------+", len(cells))
	sb.WriteString(line + "\n")
	for _, row := range cells {
		sb.WriteString("|")
		for _, v := range row {
			if v == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", v)
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}
