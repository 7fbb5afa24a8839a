package store

import (
	"context"
	"fmt"

	"github.com/nitrogate/mlt/internal/trace"
)

// Session describes one run of a timeline.
type Session struct {
	ID         string `json:"id"`
	Timeline   string `json:"timeline"`
	TrackCount int    `json:"track_count"`
	Length     int64  `json:"length"`
	FPS        string `json:"fps"`
	ClipPolicy string `json:"clip_policy"`
	Start      int64  `json:"start"`
}

// WriteSession inserts a session record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteSession(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, timeline, track_count, length, fps, clip_policy, start_position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.Timeline,
		sess.TrackCount,
		sess.Length,
		sess.FPS,
		sess.ClipPolicy,
		sess.Start,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteRound inserts a round and its pulls in one transaction.
//
// Returns inserted=false when the (session, seq) pair already exists; the
// stored round is left untouched. The session must exist (foreign key).
func (s *Store) WriteRound(ctx context.Context, sessionID string, rec trace.RoundRecord) (inserted bool, err error) {
	digest, err := rec.Digest()
	if err != nil {
		return false, fmt.Errorf("write round: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write round: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO rounds
		(session_id, seq, position, output_track, output_resource, digest)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		sessionID,
		rec.Seq,
		rec.Position,
		rec.OutputTrack,
		rec.OutputResource,
		digest,
	)
	if err != nil {
		return false, fmt.Errorf("write round: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write round: rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	for _, p := range rec.Pulls {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pulls
			(session_id, round_seq, track, kind, resource, speed)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			sessionID,
			rec.Seq,
			p.Track,
			p.Kind,
			p.Resource,
			p.Speed,
		)
		if err != nil {
			return false, fmt.Errorf("write round: pull track %d: %w", p.Track, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write round: commit: %w", err)
	}
	return true, nil
}
