package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/tractor"
)

// DomainRound separates round digests from any other hashed content.
const DomainRound = "mlt/round/v1"

// PullRecord is one pulled track of a round.
type PullRecord struct {
	Track    int    `json:"track"`
	Kind     string `json:"kind"`
	Resource string `json:"resource,omitempty"`
	Speed    string `json:"speed,omitempty"`
}

// RoundRecord is the persisted form of a tractor.Round.
type RoundRecord struct {
	Seq            int64        `json:"seq"`
	Position       int64        `json:"position"`
	OutputTrack    int          `json:"output_track"`
	OutputResource string       `json:"output_resource,omitempty"`
	Pulls          []PullRecord `json:"pulls"`
}

// FromRound converts a completed round into a record.
func FromRound(r tractor.Round) RoundRecord {
	rec := RoundRecord{
		Seq:         r.Seq,
		Position:    int64(r.Position),
		OutputTrack: r.OutputTrack,
		Pulls:       make([]PullRecord, 0, len(r.Tracks)),
	}
	if r.Output != nil && !r.Output.IsFiller() {
		rec.OutputResource = r.Output.Resource()
	}
	for _, t := range r.Tracks {
		pr := PullRecord{Track: t.Track, Kind: t.Kind.String()}
		if t.Frame != nil {
			pr.Resource = t.Frame.Resource()
			pr.Speed = t.Frame.Properties.Get(media.PropSpeed)
		}
		rec.Pulls = append(rec.Pulls, pr)
	}
	return rec
}

// Canonical returns the record as a value accepted by MarshalCanonical.
// Empty optional strings are omitted.
func (r RoundRecord) Canonical() map[string]any {
	pulls := make([]any, len(r.Pulls))
	for i, p := range r.Pulls {
		m := map[string]any{
			"track": p.Track,
			"kind":  p.Kind,
		}
		if p.Resource != "" {
			m["resource"] = p.Resource
		}
		if p.Speed != "" {
			m["speed"] = p.Speed
		}
		pulls[i] = m
	}

	out := map[string]any{
		"seq":          r.Seq,
		"position":     r.Position,
		"output_track": r.OutputTrack,
		"pulls":        pulls,
	}
	if r.OutputResource != "" {
		out["output_resource"] = r.OutputResource
	}
	return out
}

// Digest returns the content-addressed identity of the record:
// hex(SHA256(DomainRound + 0x00 + canonical JSON)).
func (r RoundRecord) Digest() (string, error) {
	data, err := MarshalCanonical(r.Canonical())
	if err != nil {
		return "", fmt.Errorf("round digest: %w", err)
	}
	return hashWithDomain(DomainRound, data), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
