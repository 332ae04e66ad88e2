// Package book provides the Book entity of the catalog together with its stock count.
//
// A book's stock is a non-negative number of copies on hand. Completing an order
// debits it, cancelling a completed order credits it back.
package book
