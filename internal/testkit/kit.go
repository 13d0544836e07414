// Package testkit builds synthetic tables for tests and benchmarks.
package testkit

import (
	"fmt"
	"math/rand"

	"github.com/eightchip/Custom-Merge-Excel-for-web/domain/table"
)

// PairConfig configures the synthetic left/right table pair generator
type PairConfig struct {
	Rows          int     `json:"rows"`
	OverlapRate   float64 `json:"overlap_rate"`   // fraction of left keys also present on the right
	DuplicateRate float64 `json:"duplicate_rate"` // fraction of keys emitted twice on their side
	MismatchRate  float64 `json:"mismatch_rate"`  // fraction of shared keys whose name cell differs
	Seed          int64   `json:"seed"`
}

// DefaultPairConfig returns sensible defaults for benchmark-sized tables
func DefaultPairConfig() PairConfig {
	return PairConfig{
		Rows:          1000,
		OverlapRate:   0.7,
		DuplicateRate: 0.05,
		MismatchRate:  0.2,
		Seed:          42,
	}
}

// TableGenerator generates deterministic synthetic tables
type TableGenerator struct {
	config PairConfig
	rng    *rand.Rand
}

// NewTableGenerator creates a new table generator
func NewTableGenerator(config PairConfig) *TableGenerator {
	return &TableGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GeneratePair builds a left/right table pair keyed on "id". The right
// table shares OverlapRate of the left keys, MismatchRate of the shared
// rows differ in their name cell, and DuplicateRate of the keys appear
// twice on their side.
func (g *TableGenerator) GeneratePair() (table.Table, table.Table) {
	left := table.New([]string{"id", "name", "qty"})
	right := table.New([]string{"id", "name", "price"})

	for i := 0; i < g.config.Rows; i++ {
		key := fmt.Sprintf("key_%06d", i)
		name := fmt.Sprintf("name_%06d", i)

		left.AppendRow([]string{key, name, fmt.Sprintf("%d", g.rng.Intn(100))})
		if g.rng.Float64() < g.config.DuplicateRate {
			left.AppendRow([]string{key, name + "_dup", fmt.Sprintf("%d", g.rng.Intn(100))})
		}

		if g.rng.Float64() < g.config.OverlapRate {
			rightName := name
			if g.rng.Float64() < g.config.MismatchRate {
				rightName = name + "_changed"
			}
			right.AppendRow([]string{key, rightName, fmt.Sprintf("%d", g.rng.Intn(1000))})
			if g.rng.Float64() < g.config.DuplicateRate {
				right.AppendRow([]string{key, rightName, fmt.Sprintf("%d", g.rng.Intn(1000))})
			}
		} else {
			right.AppendRow([]string{fmt.Sprintf("right_%06d", i), name, fmt.Sprintf("%d", g.rng.Intn(1000))})
		}
	}

	return left, right
}

// GenerateTable builds a single table keyed on "region" with Rows data
// rows spread over a handful of key values, for split tests and benchmarks.
func (g *TableGenerator) GenerateTable() table.Table {
	regions := []string{"north", "south", "east", "west", "", "EMPTY", "  padded  "}

	out := table.New([]string{"region", "order_id", "amount"})
	for i := 0; i < g.config.Rows; i++ {
		region := regions[g.rng.Intn(len(regions))]
		out.AppendRow([]string{
			region,
			fmt.Sprintf("order_%06d", i),
			fmt.Sprintf("%d", g.rng.Intn(10000)),
		})
	}
	return out
}

// NewTable builds a table literal for test fixtures.
func NewTable(headers []string, rows ...[]string) table.Table {
	t := table.New(headers)
	for _, row := range rows {
		t.AppendRow(row)
	}
	return t
}
