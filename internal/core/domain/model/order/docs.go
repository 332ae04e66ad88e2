// Package order provides the Order aggregate and its line items.
//
// The package includes:
//   - Order: the aggregate root holding status, total and customer of an order
//   - Status: the lifecycle states pending, completed and cancelled
//   - Action: the two transitions an administrator can request (complete, cancel)
//   - Line and Quantities: immutable line items and their per-book aggregation
//   - Transitioned: the event recorded after a committed transition
//
// Key business rules:
//   - An order is never transitioned to the status it already has
//   - Any stored status other than completed or cancelled counts as pending
//   - Lines are read-only once placed; quantities are aggregated by book
package order
