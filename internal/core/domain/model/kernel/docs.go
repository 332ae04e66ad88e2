// Package kernel provides core domain primitives shared by the bookstore domain model.
//
// The package includes:
//   - ID: a positive integer identifier used for orders, books and customers
//
// Primitives validate themselves and are immutable, so they can be shared
// freely between goroutines.
package kernel
