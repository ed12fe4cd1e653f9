// Package order provides the order aggregate a customer builds up over a
// conversation and the placed-order record written when it is finalized.
//
// The package includes:
//   - State: the in-progress order of one customer (line items, shipping
//     address, purchase-order number, status)
//   - LineItem: one product, quantity and unit price inside a State
//   - PlacedOrder: the header and lines committed to storage
//   - Status: Draft or Confirmed
//
// Key business rules:
//   - State is a value: every mutation returns a new State and never touches
//     the receiver, so a failed operation leaves the caller's copy intact
//   - No two line items share a product; adding an existing product merges quantities
//   - A quantity is never stored below 1; removing down to zero drops the line
//   - A Confirmed state has no line items; adding an item reopens it as Draft
//   - Only a State with a shipping address and at least one line item can be placed
package order
