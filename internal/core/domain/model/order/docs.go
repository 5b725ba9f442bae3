// Package order contains the order aggregate and its lifecycle state machine.
//
// The aggregate owns two pieces of state that must always move together: the
// current status and the append-only status history. TransitionTo is the only
// writer of both, and it validates every move against a central
// allowed-predecessors table, so call sites cannot skip lifecycle steps.
//
// The package also derives payment-status effects of a transition
// (DerivePaymentChange) and carries the reward idempotency marker that keeps
// the delivery reward pipeline at-most-once per order.
package order
