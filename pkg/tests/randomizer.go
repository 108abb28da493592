package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Int63n  func(n int64) int64
	String  func(alphabet string, n int) string
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Int63n:  random.Int63n,
		String: func(alphabet string, n int) string {
			runes := []rune(alphabet)
			out := make([]rune, n)

			for i := range out {
				out[i] = runes[random.Intn(len(runes))]
			}

			return string(out)
		},
	}
}
