package domain

import (
	"errors"
	"testing"
)

func TestEmptyCellsEvaluator(t *testing.T) {
	ev := &EmptyCellsEvaluator{}

	board := mustBoard(t, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if score := ev.Evaluate(board); score != 15 {
		t.Errorf("expected 15 empty cells, got %f", score)
	}
}

func TestCornerBonusEvaluator(t *testing.T) {
	ev := &CornerBonusEvaluator{}

	cornerBoard := mustBoard(t, [][]int{
		{2, 0, 0},
		{0, 0, 0},
		{0, 4, 16},
	})
	if ev.Evaluate(cornerBoard) != 1.0 {
		t.Error("expected corner bonus 1.0")
	}

	nonCornerBoard := mustBoard(t, [][]int{
		{2, 16, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	if ev.Evaluate(nonCornerBoard) != 0.0 {
		t.Error("expected corner bonus 0.0")
	}
}

func TestSmoothnessEvaluator(t *testing.T) {
	ev := &SmoothnessEvaluator{}

	smoothBoard := mustBoard(t, [][]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	roughBoard := mustBoard(t, [][]int{
		{2, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	smoothScore := ev.Evaluate(smoothBoard)
	roughScore := ev.Evaluate(roughBoard)
	if smoothScore <= roughScore {
		t.Errorf("smooth board should have higher score: smooth=%f, rough=%f", smoothScore, roughScore)
	}
}

func TestMonotonicityEvaluator(t *testing.T) {
	ev := &MonotonicityEvaluator{}

	monoBoard := mustBoard(t, [][]int{
		{16, 8, 4, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	nonMonoBoard := mustBoard(t, [][]int{
		{2, 16, 4, 8},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	monoScore := ev.Evaluate(monoBoard)
	nonMonoScore := ev.Evaluate(nonMonoBoard)
	if monoScore <= nonMonoScore {
		t.Errorf("monotonic board should have higher score: mono=%f, nonMono=%f", monoScore, nonMonoScore)
	}
}

func TestSnakeWeights(t *testing.T) {
	w := snakeWeights(4)
	expected := [][]float64{
		{15, 14, 13, 12},
		{8, 9, 10, 11},
		{7, 6, 5, 4},
		{0, 1, 2, 3},
	}
	for r := range expected {
		for c := range expected[r] {
			if w[r][c] != expected[r][c] {
				t.Errorf("snakeWeights(4)[%d][%d] = %f, want %f", r, c, w[r][c], expected[r][c])
			}
		}
	}
}

func TestSnakePatternEvaluator(t *testing.T) {
	ev := &SnakePatternEvaluator{}

	snakeBoard := mustBoard(t, [][]int{
		{2048, 1024, 512, 256},
		{16, 32, 64, 128},
		{8, 4, 2, 0},
		{0, 0, 0, 0},
	})

	if score := ev.Evaluate(snakeBoard); score <= 0 {
		t.Errorf("snake pattern board should have positive score, got %f", score)
	}
}

func TestMergeableEvaluator(t *testing.T) {
	ev := &MergeableEvaluator{}

	board := mustBoard(t, [][]int{
		{2, 2, 0},
		{2, 0, 0},
		{0, 0, 0},
	})
	if score := ev.Evaluate(board); score != 2 {
		t.Errorf("expected 2 mergeable pairs, got %f", score)
	}
}

func TestLargestTilePotentialEvaluator(t *testing.T) {
	ev := &LargestTilePotentialEvaluator{}

	corner := mustBoard(t, [][]int{
		{64, 32, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	center := mustBoard(t, [][]int{
		{0, 0, 0, 0},
		{0, 32, 64, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	if ev.Evaluate(corner) <= ev.Evaluate(center) {
		t.Error("expected corner placement to score higher")
	}
}

func TestWeightedEvaluator(t *testing.T) {
	evaluators := []Evaluator{
		&EmptyCellsEvaluator{},
		&CornerBonusEvaluator{},
	}
	weights := []float64{1.0, 10.0}

	wev := NewWeightedEvaluator(evaluators, weights)

	board := mustBoard(t, [][]int{
		{16, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	// 15 empty cells * 1.0 + corner bonus 1.0 * 10.0 = 25.0
	expected := 15.0*1.0 + 1.0*10.0
	if score := wev.Evaluate(board); score != expected {
		t.Errorf("expected %f, got %f", expected, score)
	}
}

func TestMaxTileEvaluator(t *testing.T) {
	ev := &MaxTileEvaluator{}

	empty := mustBoard(t, [][]int{{0, 0}, {0, 0}})
	if score := ev.Evaluate(empty); score != 0 {
		t.Errorf("expected 0 for an empty board, got %f", score)
	}

	board := mustBoard(t, [][]int{{2, 0}, {256, 8}})
	if score := ev.Evaluate(board); score != 8 {
		t.Errorf("expected log2(256)=8, got %f", score)
	}
}

func TestNewEvaluator(t *testing.T) {
	board := mustBoard(t, [][]int{
		{64, 32, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	for _, name := range EvaluatorNames {
		t.Run(name, func(t *testing.T) {
			ev, err := NewEvaluator(name)
			if err != nil {
				t.Fatal(err)
			}
			if ev == nil {
				t.Fatal("expected an evaluator")
			}
			ev.Evaluate(board)
		})
	}

	if _, err := NewEvaluator("greedy"); !errors.Is(err, ErrUnknownEvaluator) {
		t.Errorf("expected ErrUnknownEvaluator, got %v", err)
	}
}
