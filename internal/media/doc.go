// Package media defines the producer and frame contracts shared by the
// multitrack synchronizer and its collaborators.
//
// The package provides:
//   - Position, Whence and EOFPolicy: timeline addressing primitives
//   - Frame and Properties: the unit of output and its side-channel bag
//   - Producer and Playlist: the capability interfaces the synchronizer consumes
//   - Color and Sequence: concrete leaf and playlist producers
//
// Producers here are position-addressed: PullFrame reads at the current
// position and never advances it. Callers Seek explicitly before pulling,
// which is what keeps tracks aligned when a synchronizer drives them.
package media
