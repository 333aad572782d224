// Package stats aggregates classified partner records into per-entity and
// per-category gender statistics. Partials merge associatively so they can be
// folded in any completion order.
package stats

import (
	"fmt"

	"github.com/emptyOVO/mrkit-gender/classify"
)

// GenderCount holds label counts. Totals and shares are always derived.
type GenderCount struct {
	M int64 `json:"M"`
	F int64 `json:"F"`
	U int64 `json:"U"`
}

func (c *GenderCount) Inc(l classify.Label) {
	switch l {
	case classify.Male:
		c.M++
	case classify.Female:
		c.F++
	default:
		c.U++
	}
}

func (c GenderCount) Plus(o GenderCount) GenderCount {
	return GenderCount{M: c.M + o.M, F: c.F + o.F, U: c.U + o.U}
}

func (c GenderCount) Total() int64 {
	return c.M + c.F + c.U
}

// Count returns the count for one label.
func (c GenderCount) Count(l classify.Label) int64 {
	switch l {
	case classify.Male:
		return c.M
	case classify.Female:
		return c.F
	}
	return c.U
}

// Share is the fraction of the total carrying l, or 0 for an empty count.
func (c GenderCount) Share(l classify.Label) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Count(l)) / float64(total)
}

func (c GenderCount) String() string {
	return fmt.Sprintf("M=%d F=%d U=%d", c.M, c.F, c.U)
}
