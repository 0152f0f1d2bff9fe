package main

import (
	"fmt"

	"tablut/internal/tablut"
)

func main() {
	s := tablut.NewInitialState()
	fmt.Println("Position:", s.Encode())
	fmt.Println(s)
	fmt.Println("White legal moves:", len(s.LegalActions(tablut.White)))
	fmt.Println("Black legal moves:", len(s.LegalActions(tablut.Black)))
	if err := s.Validate(); err != nil {
		fmt.Println("validate:", err)
	}
}
