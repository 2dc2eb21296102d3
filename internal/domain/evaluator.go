package domain

import (
	"errors"
	"fmt"
	"math"
)

// 名前で選べる評価関数
const (
	EvalHeuristic   = "heuristic"
	EvalSnake       = "snake"
	EvalMaxTile     = "maxtile"
	EvalLargestTile = "largest"
)

// EvaluatorNames は選択可能な評価関数の名前一覧
var EvaluatorNames = []string{EvalHeuristic, EvalSnake, EvalMaxTile, EvalLargestTile}

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator はBoardを評価してスコアを返すインターフェース
type Evaluator interface {
	Evaluate(b *Board) float64
}

// WeightedEvaluator は複数のEvaluatorを係数付きで組み合わせる
type WeightedEvaluator struct {
	evaluators []Evaluator
	weights    []float64
}

// NewWeightedEvaluator は係数付きEvaluatorを生成する
func NewWeightedEvaluator(evaluators []Evaluator, weights []float64) *WeightedEvaluator {
	return &WeightedEvaluator{
		evaluators: evaluators,
		weights:    weights,
	}
}

// NewHeuristicEvaluator は探索用の標準的な組み合わせを返す
func NewHeuristicEvaluator() *WeightedEvaluator {
	return NewWeightedEvaluator(
		[]Evaluator{
			&EmptyCellsEvaluator{},
			&MonotonicityEvaluator{},
			&SmoothnessEvaluator{},
			&CornerBonusEvaluator{},
			&MergeableEvaluator{},
		},
		[]float64{2.7, 1.0, 0.1, 2.0, 1.0},
	)
}

// NewEvaluator は名前に対応するEvaluatorを返す
func NewEvaluator(name string) (Evaluator, error) {
	switch name {
	case EvalHeuristic:
		return NewHeuristicEvaluator(), nil
	case EvalSnake:
		// スネーク配置に空きマスを少し足して詰まりを避ける
		return NewWeightedEvaluator(
			[]Evaluator{&SnakePatternEvaluator{}, &EmptyCellsEvaluator{}},
			[]float64{1.0, 4.0},
		), nil
	case EvalMaxTile:
		return NewWeightedEvaluator(
			[]Evaluator{&MaxTileEvaluator{}, &EmptyCellsEvaluator{}, &MergeableEvaluator{}},
			[]float64{4.0, 1.0, 1.0},
		), nil
	case EvalLargestTile:
		return &LargestTilePotentialEvaluator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
}

// Evaluate は全てのEvaluatorの重み付き和を返す
func (w *WeightedEvaluator) Evaluate(b *Board) float64 {
	score := 0.0
	for i, ev := range w.evaluators {
		score += w.weights[i] * ev.Evaluate(b)
	}
	return score
}

// EmptyCellsEvaluator は空きマス数で評価する
type EmptyCellsEvaluator struct{}

func (e *EmptyCellsEvaluator) Evaluate(b *Board) float64 {
	return float64(len(b.EmptyCells()))
}

// MonotonicityEvaluator は単調性で評価する（角から降順に並ぶほど高評価）
type MonotonicityEvaluator struct{}

func (e *MonotonicityEvaluator) Evaluate(b *Board) float64 {
	maxScore := math.Inf(-1)
	for _, fromTop := range []bool{true, false} {
		for _, fromLeft := range []bool{true, false} {
			if s := monotonicity(b, fromTop, fromLeft); s > maxScore {
				maxScore = s
			}
		}
	}
	return maxScore
}

// monotonicity は指定した角から見て降順になっている隣接ペアの数を返す
func monotonicity(b *Board, fromTop, fromLeft bool) float64 {
	n := b.Size()
	score := 0.0

	for r := 0; r < n; r++ {
		for c := 0; c < n-1; c++ {
			c1, c2 := c, c+1
			if !fromLeft {
				c1, c2 = n-1-c, n-2-c
			}
			if b.Get(r, c1) >= b.Get(r, c2) {
				score++
			}
		}
	}

	for c := 0; c < n; c++ {
		for r := 0; r < n-1; r++ {
			r1, r2 := r, r+1
			if !fromTop {
				r1, r2 = n-1-r, n-2-r
			}
			if b.Get(r1, c) >= b.Get(r2, c) {
				score++
			}
		}
	}

	return score
}

// SmoothnessEvaluator は隣接タイルの値の差で評価する（差が小さいほど高評価）
type SmoothnessEvaluator struct{}

func (e *SmoothnessEvaluator) Evaluate(b *Board) float64 {
	n := b.Size()
	penalty := 0.0

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := b.Get(r, c)
			if v == 0 {
				continue
			}
			logV := math.Log2(float64(v))

			if c < n-1 {
				if right := b.Get(r, c+1); right != 0 {
					penalty += math.Abs(logV - math.Log2(float64(right)))
				}
			}
			if r < n-1 {
				if down := b.Get(r+1, c); down != 0 {
					penalty += math.Abs(logV - math.Log2(float64(down)))
				}
			}
		}
	}

	// ペナルティなので負の値を返す
	return -penalty
}

// CornerBonusEvaluator は最大タイルが角にあると高評価
type CornerBonusEvaluator struct{}

func (e *CornerBonusEvaluator) Evaluate(b *Board) float64 {
	_, row, col := maxTilePos(b)
	if isCorner(b.Size(), row, col) {
		return 1.0
	}
	return 0.0
}

func maxTilePos(b *Board) (int, int, int) {
	maxVal, maxRow, maxCol := 0, 0, 0
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if v := b.Get(r, c); v > maxVal {
				maxVal, maxRow, maxCol = v, r, c
			}
		}
	}
	return maxVal, maxRow, maxCol
}

func isCorner(n, row, col int) bool {
	return (row == 0 || row == n-1) && (col == 0 || col == n-1)
}

// SnakePatternEvaluator はスネークパターンに沿った配置を高評価
type SnakePatternEvaluator struct{}

func (e *SnakePatternEvaluator) Evaluate(b *Board) float64 {
	weights := snakeWeights(b.Size())
	patterns := [][][]float64{weights}
	for i := 0; i < 3; i++ {
		patterns = append(patterns, rotateWeights(patterns[i]))
	}
	for i := 0; i < 4; i++ {
		patterns = append(patterns, flipHorizontal(patterns[i]))
	}

	maxScore := math.Inf(-1)
	for _, pattern := range patterns {
		if score := patternScore(b, pattern); score > maxScore {
			maxScore = score
		}
	}
	return maxScore
}

// snakeWeights は左上から蛇状に降順となる重みを返す
func snakeWeights(n int) [][]float64 {
	w := make([][]float64, n)
	top := float64(n*n - 1)
	for r := 0; r < n; r++ {
		w[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			idx := r*n + c
			if r%2 == 1 {
				idx = r*n + (n - 1 - c)
			}
			w[r][c] = top - float64(idx)
		}
	}
	return w
}

func patternScore(b *Board, weights [][]float64) float64 {
	score := 0.0
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if v := b.Get(r, c); v > 0 {
				score += weights[r][c] * math.Log2(float64(v))
			}
		}
	}
	return score
}

func rotateWeights(w [][]float64) [][]float64 {
	n := len(w)
	result := make([][]float64, n)
	for r := range result {
		result[r] = make([]float64, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			result[c][n-1-r] = w[r][c]
		}
	}
	return result
}

func flipHorizontal(w [][]float64) [][]float64 {
	n := len(w)
	result := make([][]float64, n)
	for r := 0; r < n; r++ {
		result[r] = make([]float64, n)
		for c := 0; c < n; c++ {
			result[r][n-1-c] = w[r][c]
		}
	}
	return result
}

// MaxTileEvaluator は最大タイルの値（log2）で評価する
type MaxTileEvaluator struct{}

func (e *MaxTileEvaluator) Evaluate(b *Board) float64 {
	maxVal := b.MaxTile()
	if maxVal == 0 {
		return 0
	}
	return math.Log2(float64(maxVal))
}

// LargestTilePotentialEvaluator は最大タイルを作る可能性で評価する
type LargestTilePotentialEvaluator struct{}

func (e *LargestTilePotentialEvaluator) Evaluate(b *Board) float64 {
	n := b.Size()
	maxVal, maxRow, maxCol := maxTilePos(b)
	if maxVal == 0 {
		return 0
	}

	score := float64(maxVal) * 10.0
	if isCorner(n, maxRow, maxCol) {
		score += float64(maxVal) * 5.0
	}
	score += float64(len(b.EmptyCells())) * float64(maxVal) * 0.1

	secondMax := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if v := b.Get(r, c); v > secondMax && v < maxVal {
				secondMax = v
			}
		}
	}

	// 最大タイルと同じ値が隣接していれば次のレベルへ進める
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := maxRow+d[0], maxCol+d[1]
		if nr < 0 || nr >= n || nc < 0 || nc >= n {
			continue
		}
		v := b.Get(nr, nc)
		if v == maxVal {
			score += float64(maxVal) * 20.0
		} else if v == secondMax && secondMax > 0 {
			score += float64(secondMax) * 2.0
		}
	}

	// 最大タイルに近い角を基準にした単調性（0〜1に正規化）
	pairs := 2 * n * (n - 1)
	if pairs > 0 {
		mono := monotonicity(b, maxRow < (n+1)/2, maxCol < (n+1)/2)
		score += mono / float64(pairs) * float64(maxVal) * 0.5
	}

	return score
}

// MergeableEvaluator は隣接する同じ値のペア数で評価する
type MergeableEvaluator struct{}

func (e *MergeableEvaluator) Evaluate(b *Board) float64 {
	n := b.Size()
	count := 0.0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := b.Get(r, c)
			if v == 0 {
				continue
			}
			if c < n-1 && b.Get(r, c+1) == v {
				count++
			}
			if r < n-1 && b.Get(r+1, c) == v {
				count++
			}
		}
	}
	return count
}
