package game

import (
	"math/rand"
	"time"
)

// Source supplies the randomness behind key draws and mole selection, so
// rounds are reproducible under test.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
