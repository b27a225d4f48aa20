// Package main provides a CLI that tallies die faces from the round
// engine's strategies and reports a chi-square fit against the uniform
// distribution. Run it with -strategy both to compare the operative
// rejection sampler with the naive modulo reduction.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/louisbranch/radicex/dice"
	"github.com/louisbranch/radicex/random"
)

// chiSquareCritical is the 5-degree-of-freedom critical value at p=0.05.
// A fair die stays under it in all but one run in twenty.
const chiSquareCritical = 11.070

func main() {
	var rolls int
	var seed int64
	var strategyName string

	flag.IntVar(&rolls, "rolls", 600000, "number of die rolls per strategy")
	flag.Int64Var(&seed, "seed", 0, "seed for reproducible runs (0 = crypto source)")
	flag.StringVar(&strategyName, "strategy", "both", "strategy to tally (rejection, modulo, both)")
	flag.Parse()

	if rolls <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -rolls must be positive, got %d\n", rolls)
		os.Exit(1)
	}

	strategies, err := selectStrategies(strategyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, entry := range strategies {
		counts, err := tally(entry.strategy, newSource(seed), rolls)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		report(entry.name, counts, rolls)
	}
}

type namedStrategy struct {
	name     string
	strategy dice.Strategy
}

func selectStrategies(name string) ([]namedStrategy, error) {
	switch name {
	case "rejection":
		return []namedStrategy{{"rejection", dice.Rejection{}}}, nil
	case "modulo":
		return []namedStrategy{{"modulo", dice.Modulo{}}}, nil
	case "both":
		return []namedStrategy{
			{"rejection", dice.Rejection{}},
			{"modulo", dice.Modulo{}},
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want rejection, modulo, or both)", name)
	}
}

func newSource(seed int64) random.Source {
	if seed == 0 {
		return random.Crypto()
	}
	return random.NewSeeded(seed)
}

func tally(strategy dice.Strategy, src random.Source, rolls int) ([6]int, error) {
	var counts [6]int
	for i := 0; i < rolls; i++ {
		face, err := strategy.Roll(src)
		if err != nil {
			return counts, fmt.Errorf("roll %d: %w", i+1, err)
		}
		counts[face-1]++
	}
	return counts, nil
}

func report(name string, counts [6]int, rolls int) {
	fmt.Printf("%s: %d rolls\n", name, rolls)
	for face, count := range counts {
		share := 100 * float64(count) / float64(rolls)
		fmt.Printf("  face %d: %10d  %7.4f%%\n", face+1, count, share)
	}

	chi := chiSquare(counts, rolls)
	verdict := "uniform"
	if chi > chiSquareCritical {
		verdict = "skewed"
	}
	fmt.Printf("  chi-square %.4f against %.3f at p=0.05: %s\n\n", chi, chiSquareCritical, verdict)
}

func chiSquare(counts [6]int, rolls int) float64 {
	expected := float64(rolls) / 6
	var sum float64
	for _, count := range counts {
		diff := float64(count) - expected
		sum += diff * diff / expected
	}
	return sum
}
