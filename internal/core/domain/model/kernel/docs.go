// Package kernel provides the value objects shared by every aggregate of the
// ordering domain:
//   - UUID: generated identifier of a placed order
//   - Money: a non-negative decimal amount in the store currency
//
// Values are immutable and safe for concurrent use.
package kernel
