package tablut

import (
	"errors"
	"strings"
)

var ErrInvalidEncoding = errors.New("invalid board encoding")

var turnLetters = map[Turn]string{
	WhiteToMove: "W",
	BlackToMove: "B",
	WhiteWin:    "WW",
	BlackWin:    "BW",
	Draw:        "D",
}

// Encode 9 行用 "/" 隔开，连续空格用数字压缩；空格后是轮次字母。
// 例：开局 "3BBB3/4B4/4W4/B3W3B/BBWWKWWBB/B3W3B/4W4/4B4/3BBB3 W"
func (s *GameState) Encode() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Size; c++ {
			cell := s.Board.Cells[r][c]
			if cell == CellEmpty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(cellToChar(cell))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(turnLetters[s.Turn])
	return sb.String()
}

// DecodeState 解析 Encode 的格式；空格也可以直接写 'O'。
func DecodeState(enc string) (*GameState, error) {
	parts := strings.Fields(enc)
	if len(parts) != 2 {
		return nil, ErrInvalidEncoding
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Size {
		return nil, ErrInvalidEncoding
	}
	var b Board
	kings := 0
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				if c > Size {
					return nil, ErrInvalidEncoding
				}
				continue
			}
			cell, ok := cellLetters[ch]
			if !ok || c >= Size {
				return nil, ErrInvalidEncoding
			}
			if cell == CellKing {
				kings++
			}
			b.Cells[r][c] = cell
			c++
		}
		if c != Size {
			return nil, ErrInvalidEncoding
		}
	}
	if kings > 1 {
		return nil, ErrInvalidEncoding
	}
	turn, ok := WhiteToMove, false
	for t, letter := range turnLetters {
		if letter == parts[1] {
			turn, ok = t, true
			break
		}
	}
	if !ok {
		return nil, ErrInvalidEncoding
	}
	if b.At(Throne) != CellEmpty && b.At(Throne) != CellKing {
		return nil, ErrInvalidEncoding
	}
	return NewState(b, turn), nil
}
