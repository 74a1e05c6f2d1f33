// Package testgen produces random separated number series for tests and
// benchmarks.
package testgen

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Distribution draws values 1..n with probability proportional to the
// weight given for each value.
type Distribution struct {
	cumulative []int
}

// NewDistribution builds a Distribution from weights; weights[i] is the weight
// of value i+1. At least one weight must be positive and none negative.
func NewDistribution(weights ...int) (Distribution, error) {
	d := Distribution{cumulative: make([]int, len(weights))}
	total := 0
	for i, w := range weights {
		if w < 0 {
			return Distribution{}, fmt.Errorf("testgen: negative weight %d at position %d", w, i)
		}
		total += w
		d.cumulative[i] = total
	}
	if total == 0 {
		return Distribution{}, errors.New("testgen: expected at least one positive weight")
	}
	return d, nil
}

// MustDistribution is like NewDistribution but panics on invalid weights.
func MustDistribution(weights ...int) Distribution {
	d, err := NewDistribution(weights...)
	if err != nil {
		panic(err)
	}
	return d
}

// Max returns the largest value the distribution can draw.
func (d Distribution) Max() int {
	return len(d.cumulative)
}

// Sample draws a value in 1..Max().
func (d Distribution) Sample(rng *rand.Rand) int {
	x := rng.Intn(d.cumulative[len(d.cumulative)-1])
	return sort.SearchInts(d.cumulative, x+1) + 1
}

// Config describes the shape of a generated series.
type Config struct {
	// Separators lists the bytes placed between numbers.
	Separators string
	// Numbers draws the digit count of each number.
	Numbers Distribution
	// Gaps draws the number of separators between two numbers.
	Gaps Distribution
	// Signs draws 1 for no sign, 2 for '+' and 3 for '-'. Only Signed uses it.
	Signs Distribution
}

// Unsigned returns exactly size bytes of unsigned numbers and separators.
func Unsigned(size int, cfg Config, rng *rand.Rand) []byte {
	return generate(size, cfg, rng, false)
}

// Signed returns exactly size bytes of optionally signed numbers and separators.
func Signed(size int, cfg Config, rng *rand.Rand) []byte {
	return generate(size, cfg, rng, true)
}

func generate(size int, cfg Config, rng *rand.Rand, signed bool) []byte {
	out := make([]byte, 0, size)
	separator := func() byte {
		return cfg.Separators[rng.Intn(len(cfg.Separators))]
	}

	for len(out) < size {
		var sign byte
		if signed {
			switch cfg.Signs.Sample(rng) {
			case 2:
				sign = '+'
			case 3:
				sign = '-'
			}
		}
		digits := cfg.Numbers.Sample(rng)
		need := digits
		if sign != 0 {
			need++
		}
		if len(out)+need > size {
			break
		}
		if sign != 0 {
			out = append(out, sign)
		}
		for range digits {
			out = append(out, byte('0'+rng.Intn(10)))
		}

		gap := cfg.Gaps.Sample(rng)
		for i := 0; i < gap && len(out) < size; i++ {
			out = append(out, separator())
		}
	}

	for len(out) < size {
		out = append(out, separator())
	}
	return out
}
