package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RequiredLine is one ingredient requirement handed to the reconciliation
// engine: a name, a positive quantity and an optional unit. The engine never
// mutates it.
type RequiredLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// MatchedLine pairs a required line with the stock item that covers it.
// Quantity is the required quantity converted into the stock item's unit;
// the deduction itself is deferred to the commit phase.
type MatchedLine struct {
	Line     RequiredLine `json:"line"`
	Stock    *StockItem   `json:"stock"`
	Quantity float64      `json:"quantity"`
	Unit     string       `json:"unit"`
}

// MissingLine is the uncovered remainder of a required line. Available is 0
// when no stock item matched at all, and the item's pre-deduction quantity
// when stock existed but was insufficient. In the latter case Stock carries
// the partially covering item, which the commit phase fully consumes.
type MissingLine struct {
	Name      string     `json:"name"`
	Needed    float64    `json:"needed"`
	Available float64    `json:"available"`
	Unit      string     `json:"unit"`
	Stock     *StockItem `json:"stock,omitempty"`
}

// Residual is the quantity still to be bought after the partially available
// stock is consumed.
func (m *MissingLine) Residual() float64 {
	if r := m.Needed - m.Available; r > 0 {
		return r
	}
	return 0
}

// ReconciliationOutcome is the preview shown to the user before any stock
// mutation: which lines are covered by stock and which are missing.
type ReconciliationOutcome struct {
	HouseholdID primitive.ObjectID `json:"household_id"`
	Matched     []MatchedLine      `json:"matched"`
	Missing     []MissingLine      `json:"missing"`
}

// CommitFailure records a single line whose mutation failed during commit.
// Already-applied deductions are not rolled back.
type CommitFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// CommitResult is the final matched/missing summary after the commit phase.
type CommitResult struct {
	Committed []MatchedLine   `json:"committed"`
	Failures  []CommitFailure `json:"failures"`
}
