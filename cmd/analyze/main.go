package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
)

func main() {
	size := flag.Int("size", 4, "board size")
	depth := flag.Int("depth", 4, "search depth")
	parallel := flag.Bool("parallel", false, "evaluate top-level moves in parallel")
	eval := flag.String("eval", domain.EvalHeuristic, "evaluator: "+strings.Join(domain.EvaluatorNames, ", "))
	flag.Parse()

	evaluator, err := domain.NewEvaluator(*eval)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var solver interface {
		Scores(board *domain.Board) map[domain.Direction]float64
	}
	if *parallel {
		solver = domain.NewParallelSolver(evaluator, *depth)
	} else {
		solver = domain.NewSolver(evaluator, *depth)
	}

	fmt.Println("=== 2048 Analyzer ===")
	fmt.Printf("Enter %d numbers (0 for empty), row by row, or 'quit' to exit\n\n", *size * *size)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		board, err := readBoard(scanner, os.Stdout, *size)
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		analyze(os.Stdout, board, solver.Scores(board))
	}
}

// readBoard はsize*size個の数値が揃うまで入力を読む
func readBoard(scanner *bufio.Scanner, w io.Writer, size int) (*domain.Board, error) {
	values := make([]int, 0, size*size)
	fmt.Fprint(w, "Board: ")
	for len(values) < size*size {
		if !scanner.Scan() {
			return nil, io.EOF
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "q" {
			return nil, io.EOF
		}
		for _, field := range strings.Fields(line) {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", field)
			}
			values = append(values, v)
		}
	}
	if len(values) != size*size {
		return nil, fmt.Errorf("expected %d numbers, got %d", size*size, len(values))
	}

	cells := make([][]int, size)
	for r := range cells {
		cells[r] = values[r*size : (r+1)*size]
	}
	return domain.NewBoardFromCells(cells)
}

func analyze(w io.Writer, board *domain.Board, scores map[domain.Direction]float64) {
	fmt.Fprintln(w)
	for _, row := range board.Render() {
		fmt.Fprintln(w, row)
	}

	if board.IsGameOver() {
		fmt.Fprintln(w, "Game Over!")
		return
	}

	best := domain.BestOf(scores)
	if best == domain.NoMove {
		fmt.Fprintln(w, "No valid moves available!")
		return
	}

	fmt.Fprintf(w, "\n=== Recommended move: %s (%s) ===\n", best, best.Token())
	fmt.Fprintln(w, "Move scores:")
	for _, dir := range domain.Directions {
		score, ok := scores[dir]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-5s: %.2f", dir, score)
		if dir == best {
			fmt.Fprint(w, " <- BEST")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
