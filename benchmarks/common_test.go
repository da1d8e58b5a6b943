// Package benchmarks compares min-query against popular Go collection
// libraries on ordering, deduplication, grouping and paging.
package benchmarks

import (
	"math/rand/v2"
	"strconv"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// record is the element type used across benchmarks.
type record struct {
	ID    int
	Name  string
	Group int
	Score float64
}

// generateRecords creates n records with a fixed seed so every library
// sorts the same input.
func generateRecords(n int) []record {
	r := rand.New(rand.NewPCG(uint64(n), 0xbe4c))
	data := make([]record, n)
	for i := range data {
		data[i] = record{
			ID:    r.IntN(n),
			Name:  "name-" + strconv.Itoa(r.IntN(n)),
			Group: r.IntN(16),
			Score: r.Float64(),
		}
	}
	return data
}

func byGroup(r record) int     { return r.Group }
func byName(r record) string   { return r.Name }
func byScore(r record) float64 { return r.Score }
