package domain

// 空きマスが多い場合にサンプリングする最大数
const maxSampleCells = 6

// Solver はExpectimaxアルゴリズムで最良の手を探索する
type Solver struct {
	evaluator Evaluator
	maxDepth  int
}

// NewSolver は新しいSolverを生成する
func NewSolver(evaluator Evaluator, maxDepth int) *Solver {
	return &Solver{
		evaluator: evaluator,
		maxDepth:  maxDepth,
	}
}

// BestMove は現在の盤面から最良の手を返す
// 有効な手がない場合はNoMoveを返す
func (s *Solver) BestMove(board *Board) Direction {
	return BestOf(s.Scores(board))
}

// Scores は盤面が変化する方向ごとの期待評価値を返す
func (s *Solver) Scores(board *Board) map[Direction]float64 {
	scores := make(map[Direction]float64, len(Directions))
	for _, dir := range Directions {
		next, _ := board.SwipeWithoutSpawn(dir)
		if next.Equal(board) {
			continue
		}
		scores[dir] = s.expectedScore(next, s.maxDepth-1)
	}
	return scores
}

// BestOf は最も評価の高い方向を返す（同点はDirectionsの順で先勝ち）
// 評価がなければNoMoveを返す
func BestOf(scores map[Direction]float64) Direction {
	bestDir := NoMove
	bestScore := 0.0
	for _, dir := range Directions {
		score, ok := scores[dir]
		if !ok {
			continue
		}
		if bestDir == NoMove || score > bestScore {
			bestDir, bestScore = dir, score
		}
	}
	return bestDir
}

// expectedScore はスポーンの期待値を計算する
func (s *Solver) expectedScore(board *Board, depth int) float64 {
	emptyCells := board.EmptyCells()
	if len(emptyCells) == 0 || depth <= 0 {
		return s.evaluator.Evaluate(board)
	}

	sampleCells := sampleEvenly(emptyCells, maxSampleCells)

	totalScore := 0.0
	for _, pos := range sampleCells {
		board2 := board.Copy()
		board2.cells[pos[0]][pos[1]] = 2
		board4 := board.Copy()
		board4.cells[pos[0]][pos[1]] = 4

		totalScore += (1-ProbFour)*s.searchMax(board2, depth) + ProbFour*s.searchMax(board4, depth)
	}

	return totalScore / float64(len(sampleCells))
}

// sampleEvenly は均等に分散するようにセルを最大max個選ぶ
func sampleEvenly(cells [][2]int, max int) [][2]int {
	if len(cells) <= max {
		return cells
	}
	sample := make([][2]int, 0, max)
	step := len(cells) / max
	for i := 0; i < len(cells) && len(sample) < max; i += step {
		sample = append(sample, cells[i])
	}
	return sample
}

// searchMax はプレイヤーの最善手を探索
func (s *Solver) searchMax(board *Board, depth int) float64 {
	if depth <= 0 || board.IsGameOver() {
		return s.evaluator.Evaluate(board)
	}

	bestScore := 0.0
	hasMoved := false

	for _, dir := range Directions {
		next, _ := board.SwipeWithoutSpawn(dir)
		if next.Equal(board) {
			continue
		}
		score := s.expectedScore(next, depth-1)
		if !hasMoved || score > bestScore {
			bestScore = score
		}
		hasMoved = true
	}

	if !hasMoved {
		return s.evaluator.Evaluate(board)
	}
	return bestScore
}
