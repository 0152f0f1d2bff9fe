package client

import (
	"fmt"

	"tablut/internal/tablut"
)

// serverState 服务器推过来的局面
type serverState struct {
	Board [][]string `json:"board"`
	Turn  string     `json:"turn"`
}

var wireCells = map[string]tablut.Cell{
	"EMPTY":  tablut.CellEmpty,
	"THRONE": tablut.CellEmpty, // 王离开后的王座
	"WHITE":  tablut.CellWhite,
	"BLACK":  tablut.CellBlack,
	"KING":   tablut.CellKing,
}

// toState board[i][j] 对应格子 (Row i, Col j)
func (w serverState) toState() (*tablut.GameState, error) {
	if len(w.Board) != tablut.Size {
		return nil, fmt.Errorf("client: board has %d rows", len(w.Board))
	}
	var b tablut.Board
	for r, row := range w.Board {
		if len(row) != tablut.Size {
			return nil, fmt.Errorf("client: row %d has %d cells", r, len(row))
		}
		for c, name := range row {
			cell, ok := wireCells[name]
			if !ok {
				return nil, fmt.Errorf("client: unknown cell %q at %v", name, tablut.Sq(r, c))
			}
			b.Cells[r][c] = cell
		}
	}
	turn, err := tablut.ParseTurn(w.Turn)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	return tablut.NewState(b, turn), nil
}
