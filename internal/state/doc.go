// Package state holds the shared state tree and the store that owns it.
//
// Allowed here:
// - the two sub-states (header, children), their actions and pure reducers
// - the Store: single writer of GlobalState, synchronous subscriber fan-out
// - selectors and selector-scoped subscriptions (Watch)
//
// Not allowed here:
// - rendering, key handling, private view counters, or I/O of any kind
package state
