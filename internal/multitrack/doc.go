// Package multitrack implements the multitrack frame synchronizer.
//
// A Multitrack aggregates N independently seekable producers (tracks) into
// a single virtual producer. A downstream compositor pulls it once per track
// index per output frame, in lockstep, starting at index 0.
//
// ARCHITECTURE:
//
// Track Registry (registry.go):
// A sparse, growable slice of borrowed producer references indexed by
// track number. Slots may be empty; an empty slot means "no source for this
// track", never an error. Tracks are attached, never detached.
//
// Stats Reconciler (reconcile.go):
// Derives whole-timeline length and frame rate from the registry. Runs after
// every attach and after every completed round.
//
// Frame-Pull Synchronizer (pull.go):
// Pull(index) seeks the track under index to the synchronizer's own
// position and delegates to it. The first index past the last track returns
// a RoundComplete result: the round is over and the position advances by
// one frame.
//
// Clip-Point Aggregator (clip.go):
// Merges the clip edges of every playlist track into one ordered sequence.
//
// CONCURRENCY:
//
// A Multitrack is not safe for concurrent use. The compositor calls Pull
// sequentially, and Attach must not run concurrently with Pull, Reconcile
// or ClipBoundary. Producers are borrowed: Close releases the track list but
// never the producers.
package multitrack
