// Package statemachine applies one classified intent to an in-progress order.
//
// OrderStateMachine.Apply never fails: lookup errors, missing products and
// stock shortfalls are turned into reply text, and the returned State is the
// one to persist for the next turn. Only a finalize intent writes to storage,
// and it does so through ports.OrderFinalizer.
package statemachine
