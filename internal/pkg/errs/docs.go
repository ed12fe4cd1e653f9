// Package errs holds the error kinds shared across the ordering service.
//
// Every kind has a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) and a struct carrying the offending
// parameter and an optional cause that is folded into the message. The structs
// unwrap to their sentinel, so callers match with errors.Is and adapters map
// ErrObjectNotFound to 404.
package errs
