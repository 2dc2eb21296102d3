package domain

import (
	"sync"
)

// ParallelSolver はトップレベルの候補手を並列に評価するSolver
type ParallelSolver struct {
	*Solver
}

// NewParallelSolver は新しいParallelSolverを生成する
func NewParallelSolver(evaluator Evaluator, maxDepth int) *ParallelSolver {
	return &ParallelSolver{Solver: NewSolver(evaluator, maxDepth)}
}

// BestMove は現在の盤面から最良の手を返す
func (s *ParallelSolver) BestMove(board *Board) Direction {
	return BestOf(s.Scores(board))
}

// Scores は有効な方向ごとの期待評価値を並列に計算する
func (s *ParallelSolver) Scores(board *Board) map[Direction]float64 {
	type result struct {
		dir   Direction
		score float64
	}

	// 有効な手を事前にフィルタリング
	candidates := make(map[Direction]*Board, len(Directions))
	for _, dir := range Directions {
		next, _ := board.SwipeWithoutSpawn(dir)
		if !next.Equal(board) {
			candidates[dir] = next
		}
	}

	results := make(chan result, len(candidates))
	var wg sync.WaitGroup
	for dir, next := range candidates {
		wg.Add(1)
		go func(d Direction, b *Board) {
			defer wg.Done()
			results <- result{dir: d, score: s.expectedScore(b, s.maxDepth-1)}
		}(dir, next)
	}
	wg.Wait()
	close(results)

	scores := make(map[Direction]float64, len(candidates))
	for r := range results {
		scores[r.dir] = r.score
	}
	return scores
}
