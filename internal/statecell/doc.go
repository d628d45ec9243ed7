// Package statecell provides the observable plumbing for the session
// controller: a single-slot broadcast cell that always carries the latest
// value, and a combiner that derives one cell from two others.
//
// # Purpose
//
// The controller never hands out raw state. Readers subscribe to a Cell and
// receive the current value immediately, then every later value as it is
// published. Emission is conflating: a slow subscriber skips intermediate
// values and always lands on the newest one, so publishers never block.
//
// # Concurrency Model
//
//   - A Cell is safe for any number of concurrent publishers and subscribers.
//   - Each subscriber owns a one-slot channel; Set replaces a pending
//     undelivered value rather than waiting for the subscriber.
//   - Subscriptions are context-scoped: cancelling the context detaches the
//     subscriber and closes its channel.
package statecell
