package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nitrogate/mlt/internal/trace"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a session with minimal fields and returns it.
func createTestSession(t *testing.T, s *Store, id string) Session {
	t.Helper()
	sess := Session{
		ID:         id,
		Timeline:   "test.yaml",
		TrackCount: 3,
		Length:     150,
		FPS:        "25",
		ClipPolicy: "merge",
	}
	if err := s.WriteSession(context.Background(), sess); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return sess
}

// createTestRound builds a three-track round record at seq.
func createTestRound(seq int64) trace.RoundRecord {
	return trace.RoundRecord{
		Seq:            seq,
		Position:       seq,
		OutputTrack:    2,
		OutputResource: "title",
		Pulls: []trace.PullRecord{
			{Track: 0, Kind: "real", Resource: "bg", Speed: "1"},
			{Track: 1, Kind: "filler"},
			{Track: 2, Kind: "real", Resource: "title", Speed: "1"},
		},
	}
}
