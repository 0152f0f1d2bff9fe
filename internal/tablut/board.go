package tablut

import (
	"strings"
)

const (
	Size       = 9
	NumSquares = Size * Size
)

// Square 行 0..8 对应数字 1..9，列 0..8 对应字母 a..i
type Square struct {
	Row int8
	Col int8
}

var NoSquare = Square{Row: -1, Col: -1}

// Throne 王座，e5
var Throne = Square{Row: 4, Col: 4}

func Sq(row, col int) Square { return Square{Row: int8(row), Col: int8(col)} }

func OnBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (s Square) Valid() bool { return OnBoard(int(s.Row), int(s.Col)) }

func (s Square) Index() int { return int(s.Row)*Size + int(s.Col) }

func squareAt(idx int) Square { return Sq(idx/Size, idx%Size) }

func (s Square) String() string {
	if !s.Valid() {
		return "z0"
	}
	return string([]byte{byte('a' + s.Col), byte('1' + s.Row)})
}

func (s Square) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Square) UnmarshalText(b []byte) error {
	sq, err := ParseSquare(string(b))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

// ParseSquare 格式不对返回 ErrMalformedAction，超出棋盘返回 ErrOutOfBoard。
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, ErrMalformedAction
	}
	letter, digit := name[0], name[1]
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' || digit < '0' || digit > '9' {
		return NoSquare, ErrMalformedAction
	}
	row, col := int(digit-'1'), int(letter-'a')
	if !OnBoard(row, col) {
		return NoSquare, ErrOutOfBoard
	}
	return Sq(row, col), nil
}

type Direction int8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// 生成走法和吃子检测都按这个顺序
var directions = [4]Direction{Up, Down, Left, Right}

var dirDelta = [4][2]int8{
	Up:    {-1, 0},
	Down:  {1, 0},
	Left:  {0, -1},
	Right: {0, 1},
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "U"
	case Down:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "A"
}

// Step 沿 d 走 n 格，不检查越界
func (s Square) Step(d Direction, n int) Square {
	return Square{Row: s.Row + dirDelta[d][0]*int8(n), Col: s.Col + dirDelta[d][1]*int8(n)}
}

// IsEscape 四条边都是王的逃生格
func IsEscape(s Square) bool {
	return s.Valid() && (s.Row == 0 || s.Row == Size-1 || s.Col == 0 || s.Col == Size-1)
}

type SquareClass int8

const (
	Plain SquareClass = iota
	ThroneSquare
	Citadel
)

func (c SquareClass) String() string {
	switch c {
	case ThroneSquare:
		return "THRONE"
	case Citadel:
		return "CITADEL"
	}
	return "PLAIN"
}

// 营地（citadel）标记：四组，每组 4 格；数字是组号
const citadelLayout = `
...222...
....2....
.........
0.......1
00..T..11
0.......1
.........
....3....
...333...`

var (
	squareClass [Size][Size]SquareClass
	cluster     [Size][Size]int8
)

func init() {
	rows := strings.Fields(citadelLayout)
	if len(rows) != Size {
		panic("citadelLayout 行数不为 9")
	}
	for r, line := range rows {
		if len(line) != Size {
			panic("citadelLayout 列数不为 9")
		}
		for c, ch := range line {
			cluster[r][c] = -1
			switch {
			case ch == 'T':
				squareClass[r][c] = ThroneSquare
			case ch >= '0' && ch <= '3':
				squareClass[r][c] = Citadel
				cluster[r][c] = int8(ch - '0')
			}
		}
	}
}

func Classify(s Square) SquareClass {
	if !s.Valid() {
		return Plain
	}
	return squareClass[s.Row][s.Col]
}

// CitadelCluster 返回营地组号，非营地返回 -1
func CitadelCluster(s Square) int {
	if !s.Valid() {
		return -1
	}
	return int(cluster[s.Row][s.Col])
}

// Board 是值类型，直接赋值就是深拷贝
type Board struct {
	Cells [Size][Size]Cell
}

func (b *Board) At(s Square) Cell { return b.Cells[s.Row][s.Col] }

func (b *Board) Set(s Square, c Cell) { b.Cells[s.Row][s.Col] = c }

// cellAt 越界当成空格
func (b *Board) cellAt(s Square) Cell {
	if !s.Valid() {
		return CellEmpty
	}
	return b.Cells[s.Row][s.Col]
}

const initialBoardString = `
OOOBBBOOO
OOOOBOOOO
OOOOWOOOO
BOOOWOOOB
BBWWKWWBB
BOOOWOOOB
OOOOWOOOO
OOOOBOOOO
OOOBBBOOO`

var cellLetters = map[rune]Cell{
	'O': CellEmpty,
	'W': CellWhite,
	'B': CellBlack,
	'K': CellKing,
}

func cellToChar(c Cell) byte {
	switch c {
	case CellWhite:
		return 'W'
	case CellBlack:
		return 'B'
	case CellKing:
		return 'K'
	}
	return 'O'
}

func parseInitialBoard() Board {
	var b Board
	rows := strings.Fields(initialBoardString)
	if len(rows) != Size {
		panic("initialBoardString 行数不为 9")
	}
	for r, line := range rows {
		for c, ch := range line {
			cell, ok := cellLetters[ch]
			if !ok {
				panic("unknown cell letter: " + string(ch))
			}
			b.Cells[r][c] = cell
		}
	}
	return b
}

func NewInitialBoard() Board { return parseInitialBoard() }

// String 每行一行，第一行是 a1..i1
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sb.WriteByte(cellToChar(b.Cells[r][c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
