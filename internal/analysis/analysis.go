// Package analysis integrates the external analysis collaborator.
//
// The collaborator is optional: callers bound every request with a
// context deadline and fall back to the locally generated insight text
// on any error.
package analysis

import (
	"context"

	"github.com/shopspring/decimal"
)

// Payload is the numeric dataset sent to the collaborator.
type Payload struct {
	Totals       map[string]decimal.Decimal `json:"totals"`
	Counts       map[string]int             `json:"counts"`
	RecentEvents []string                   `json:"recentEvents"`
}

// Analyzer produces a natural language summary for a payload.
type Analyzer interface {
	Analyze(ctx context.Context, payload Payload) (string, error)
}
