// Package dice parses and rolls the dice notation found on weapon records ("1d8", "2d6+1")
// and provides the d20 advantage/disadvantage rolls used by attacks and ability checks.
package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// RollResult is one evaluated expression: the faces thrown and the flat modifier.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the sum of the faces plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll log line, e.g. "2d6+3 [4, 5] +3 = 12" or "1d8 [6] = 6".
func (r RollResult) String() string {
	faces := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		faces[i] = strconv.Itoa(d)
	}
	var b strings.Builder
	if r.Expression != "" {
		b.WriteString(r.Expression)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", strings.Join(faces, ", "))
	if r.Modifier != 0 {
		fmt.Fprintf(&b, " %+d", r.Modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}

// Source yields die faces. Implementations must be safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

// Intn panics when n <= 0 or the system randomness source fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("dice: Intn(%d): n must be positive", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: reading crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// seededSource replays the same PCG stream for the same seed.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a deterministic Source, so a roll can be reproduced from its seed.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn panics when n <= 0.
func (s *seededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}
