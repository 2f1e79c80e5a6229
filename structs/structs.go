package structs

// Position is a grid coordinate. Row grows downward, Col grows to the right.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSpace is returned in place of a food position when no empty cell was found.
var NoSpace = Position{Row: -1, Col: -1}

// Add returns p moved by d.
func (p Position) Add(d Direction) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Size is the fixed board size.
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Contains reports whether p lies on a board of this size.
func (s Size) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Cols
}

// Area is the number of cells on the board.
func (s Size) Area() int {
	return s.Rows * s.Cols
}

// Direction is a unit step on the grid. The zero value means no key pressed yet.
type Direction struct {
	Row int
	Col int
}

var (
	Up    = Direction{Row: -1}
	Down  = Direction{Row: 1}
	Left  = Direction{Col: -1}
	Right = Direction{Col: 1}
)

// IsZero reports whether no direction has been chosen.
func (d Direction) IsZero() bool {
	return d == Direction{}
}

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	SnakeCell
	FoodCell
)

// Board is the occupancy grid, indexed [row][col].
type Board [][]Cell

// At returns the cell at p. p must be in bounds.
func (b Board) At(p Position) Cell {
	return b[p.Row][p.Col]
}

// Phase is the overall game status.
type Phase int

const (
	Paused Phase = iota
	Running
	Over
)

func (p Phase) String() string {
	switch p {
	case Paused:
		return "paused"
	case Running:
		return "running"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}
