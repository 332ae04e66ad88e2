// Package services provides domain services that orchestrate business operations
// across the order and book aggregates.
//
// The package includes:
//   - StockPlanner: decides the stock adjustments a status transition requires
//
// The planner works on plain values (aggregated quantities and stock counts) and
// never touches storage, so the decision is the same whichever store executes it.
package services
