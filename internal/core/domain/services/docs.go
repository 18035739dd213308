// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - CounterpartyResolver: decides who must hear about a lifecycle transition
//
// A transition is always reported to the other side of the order: the sender when
// the carrier acted and the carrier when the sender acted. Transitions with nobody
// on the other side, such as cancelling an order no carrier accepted, resolve to
// ErrNoCounterparty and are not announced.
package services
