// 蛇的移动、碰撞与食物生成
package snake

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/hoshinonyaruko/snake-in-term/structs"
)

// Random picks uniformly in [0, n). *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// NewRand returns a generator seeded with seed, or with the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Game holds the state advanced once per tick.
type Game struct {
	Size  structs.Size
	Body  []structs.Position // head first
	Food  structs.Position
	Score int
	// Board is the occupancy snapshot of the last committed tick. Advance tests against it.
	Board structs.Board

	rng Random
}

// NewGame seeds a one-cell snake at a random position and places the first food.
// A side shorter than one cell is raised to one.
func NewGame(size structs.Size, rng Random) *Game {
	size.Rows = max(size.Rows, 1)
	size.Cols = max(size.Cols, 1)
	g := &Game{
		Size: size,
		Body: []structs.Position{{Row: rng.Intn(size.Rows), Col: rng.Intn(size.Cols)}},
		Food: structs.NoSpace,
		rng:  rng,
	}
	g.Board = BuildBoard(size, g.Body, structs.NoSpace)
	g.Food = GenerateFood(g.Board, size, rng)
	g.Board = BuildBoard(size, g.Body, g.Food)
	return g
}

// Head returns the snake's head.
func (g *Game) Head() structs.Position {
	return g.Body[0]
}

// Len returns the snake's length.
func (g *Game) Len() int {
	return len(g.Body)
}

// Advance moves the snake one step in dir. On collision it returns false and the game is left untouched.
func (g *Game) Advance(dir structs.Direction) bool {
	step, ok := Advance(g.Body, dir, g.Size, g.Board, g.Food, g.rng)
	if !ok {
		return false
	}
	g.Body = step.Body
	g.Food = step.Food
	if step.Ate {
		g.Score++
	}
	// 提交后再重建快照
	g.Board = BuildBoard(g.Size, g.Body, g.Food)
	return true
}

// Step is the outcome of a successful Advance.
type Step struct {
	Body []structs.Position
	Food structs.Position
	Ate  bool
}

// Advance computes the next body from board, the snapshot taken before this tick.
// body is never modified; ok is false when the new head leaves the board or lands on the snake.
func Advance(body []structs.Position, dir structs.Direction, size structs.Size, board structs.Board, food structs.Position, rng Random) (step Step, ok bool) {
	head := body[0].Add(dir)
	if !size.Contains(head) {
		return Step{}, false
	}

	switch board.At(head) {
	case structs.FoodCell:
		next := make([]structs.Position, 0, len(body)+1)
		next = append(next, head)
		next = append(next, body...)
		return Step{Body: next, Food: GenerateFood(board, size, rng), Ate: true}, true
	case structs.Empty:
		next := make([]structs.Position, 0, len(body))
		next = append(next, head)
		next = append(next, body[:len(body)-1]...)
		return Step{Body: next, Food: food}, true
	default:
		return Step{}, false
	}
}

// GenerateFood picks random cells until one is empty in board. It gives up after
// size.Area() attempts and returns structs.NoSpace.
func GenerateFood(board structs.Board, size structs.Size, rng Random) structs.Position {
	for i := 0; i < size.Area(); i++ {
		pos := structs.Position{Row: rng.Intn(size.Rows), Col: rng.Intn(size.Cols)}
		if board.At(pos) == structs.Empty {
			return pos
		}
	}
	return structs.NoSpace
}

// BuildBoard marks every body cell as snake and food as food when it is on the board.
func BuildBoard(size structs.Size, body []structs.Position, food structs.Position) structs.Board {
	board := make(structs.Board, size.Rows)
	cells := make([]structs.Cell, size.Rows*size.Cols)
	for r := range board {
		board[r] = cells[r*size.Cols : (r+1)*size.Cols : (r+1)*size.Cols]
	}
	for _, p := range body {
		board[p.Row][p.Col] = structs.SnakeCell
	}
	if size.Contains(food) {
		board[food.Row][food.Col] = structs.FoodCell
	}
	return board
}

// Timing controls how long the loop sleeps between ticks.
type Timing struct {
	Base time.Duration
	Min  time.Duration
	Step time.Duration
}

// TickInterval is Base shortened by Step per point of score, never below Min.
func TickInterval(score int, t Timing) time.Duration {
	d := t.Base - time.Duration(score)*t.Step
	if d < t.Min {
		return t.Min
	}
	return d
}
