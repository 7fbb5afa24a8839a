package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nitrogate/mlt/internal/trace"
)

// StoredRound is a round read back from the store with its digest.
type StoredRound struct {
	trace.RoundRecord
	Digest string `json:"digest"`
}

// ReadSession returns the session with the given id, or ErrNotFound.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timeline, track_count, length, fps, clip_policy, start_position
		FROM sessions
		WHERE id = ?
	`, id)

	var sess Session
	err := row.Scan(&sess.ID, &sess.Timeline, &sess.TrackCount, &sess.Length, &sess.FPS, &sess.ClipPolicy, &sess.Start)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns every session ordered by id. UUIDv7 ids sort by
// creation time.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timeline, track_count, length, fps, clip_policy, start_position
		FROM sessions
		ORDER BY id ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Timeline, &sess.TrackCount, &sess.Length, &sess.FPS, &sess.ClipPolicy, &sess.Start); err != nil {
			return nil, fmt.Errorf("list sessions: scan: %w", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// ReadRounds returns the rounds of a session in seq order, pulls in track
// order.
func (s *Store) ReadRounds(ctx context.Context, sessionID string) ([]StoredRound, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, position, output_track, output_resource, digest
		FROM rounds
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read rounds: %w", err)
	}
	defer rows.Close()

	var rounds []StoredRound
	index := make(map[int64]int)
	for rows.Next() {
		var r StoredRound
		if err := rows.Scan(&r.Seq, &r.Position, &r.OutputTrack, &r.OutputResource, &r.Digest); err != nil {
			return nil, fmt.Errorf("read rounds: scan: %w", err)
		}
		r.Pulls = []trace.PullRecord{}
		index[r.Seq] = len(rounds)
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rounds: %w", err)
	}

	pullRows, err := s.db.QueryContext(ctx, `
		SELECT round_seq, track, kind, resource, speed
		FROM pulls
		WHERE session_id = ?
		ORDER BY round_seq ASC, track ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read pulls: %w", err)
	}
	defer pullRows.Close()

	for pullRows.Next() {
		var seq int64
		var p trace.PullRecord
		if err := pullRows.Scan(&seq, &p.Track, &p.Kind, &p.Resource, &p.Speed); err != nil {
			return nil, fmt.Errorf("read pulls: scan: %w", err)
		}
		i, ok := index[seq]
		if !ok {
			continue
		}
		rounds[i].Pulls = append(rounds[i].Pulls, p)
	}
	if err := pullRows.Err(); err != nil {
		return nil, fmt.Errorf("read pulls: %w", err)
	}

	return rounds, nil
}
