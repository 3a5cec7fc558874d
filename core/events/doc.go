// Package events provides the typed observer primitive used for loader
// lifecycle notifications.
//
// Instead of an event-emitter base type, each event is an explicit
// Signal[T] field on the owning struct. Observers register a callback and
// receive back an unsubscribe function:
//
//	sig := events.NewSignal[string]()
//	off := sig.Subscribe(func(v string) { fmt.Println(v) })
//	sig.Emit("hello")
//	off()
//
// # Guarantees
//
//   - Fan-out to every subscriber in registration order.
//   - Once subscriptions fire at most one time.
//   - Callbacks run outside the internal lock, so a callback may safely
//     subscribe, unsubscribe, or emit again.
package events
