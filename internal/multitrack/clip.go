package multitrack

import (
	"fmt"
	"sort"

	"github.com/nitrogate/mlt/internal/media"
)

// ClipPolicy selects how clip boundaries of several playlist tracks combine.
type ClipPolicy int

const (
	// ClipMerge orders the clip edges of every playlist track by position
	// and addresses them as one sequence.
	ClipMerge ClipPolicy = iota

	// ClipFirstPlaylist answers from the first playlist track only.
	ClipFirstPlaylist
)

// String returns the configuration name of the policy.
func (p ClipPolicy) String() string {
	switch p {
	case ClipMerge:
		return "merge"
	case ClipFirstPlaylist:
		return "first"
	default:
		return fmt.Sprintf("clip_policy(%d)", int(p))
	}
}

// ParseClipPolicy converts a configuration name to a ClipPolicy.
func ParseClipPolicy(s string) (ClipPolicy, error) {
	switch s {
	case "merge", "":
		return ClipMerge, nil
	case "first":
		return ClipFirstPlaylist, nil
	default:
		return ClipMerge, fmt.Errorf("invalid clip policy %q: must be one of merge, first", s)
	}
}

// ClipEdge is one clip boundary in the merged cross-track sequence.
type ClipEdge struct {
	Position media.Position
	Track    int // first track contributing this position
	Clip     int // clip index within that track; ClipCount() is the out edge
}

type playlistTrack struct {
	track    int
	playlist media.Playlist
}

// playlists returns the attached playlist tracks in index order and reports
// every other attached track.
func (m *Multitrack) playlists() []playlistTrack {
	var out []playlistTrack
	for i := 0; i < m.count; i++ {
		p := m.tracks[i]
		if p == nil {
			continue
		}
		pl, ok := media.AsPlaylist(p)
		if !ok {
			m.diag.Report(Diagnostic{
				Kind:    DiagNotPlaylist,
				Track:   i,
				Message: fmt.Sprintf("track %d isn't a playlist", i),
			})
			continue
		}
		out = append(out, playlistTrack{track: i, playlist: pl})
	}
	return out
}

// ClipEdges returns every clip edge of every playlist track ordered by
// position. Edges at the same position collapse into the one from the lowest
// track. Blanks contribute edges like clips.
func (m *Multitrack) ClipEdges() []ClipEdge {
	return mergeEdges(m.playlists())
}

func mergeEdges(tracks []playlistTrack) []ClipEdge {
	var edges []ClipEdge
	for _, t := range tracks {
		n := t.playlist.ClipCount()
		for clip := 0; clip <= n; clip++ {
			edges = append(edges, ClipEdge{
				Position: t.playlist.ClipBoundary(media.WhenceStart, clip),
				Track:    t.track,
				Clip:     clip,
			})
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Position < edges[j].Position
	})

	merged := edges[:0]
	for _, e := range edges {
		if len(merged) > 0 && merged[len(merged)-1].Position == e.Position {
			continue
		}
		merged = append(merged, e)
	}
	return merged
}

// ClipBoundary returns the position of the index-th clip edge relative to
// whence, across all playlist tracks.
//
// Under ClipMerge:
//   - WhenceStart: edges[index]
//   - WhenceCurrent: index edges after the last edge at or before Position()
//   - WhenceEnd: index edges before the last edge
//
// Out-of-range indexes clamp to the first or last edge. Under
// ClipFirstPlaylist the first playlist track's own answer is returned.
// Without any playlist track the result is 0.
func (m *Multitrack) ClipBoundary(whence media.Whence, index int) media.Position {
	tracks := m.playlists()
	if len(tracks) == 0 {
		return 0
	}

	if m.clipPolicy == ClipFirstPlaylist {
		return tracks[0].playlist.ClipBoundary(whence, index)
	}

	edges := mergeEdges(tracks)

	i := index
	switch whence {
	case media.WhenceCurrent:
		pos := m.clock.Current()
		cur := sort.Search(len(edges), func(k int) bool {
			return edges[k].Position > pos
		}) - 1
		i = cur + index
	case media.WhenceEnd:
		i = len(edges) - 1 - index
	}

	if i < 0 {
		i = 0
	}
	if i >= len(edges) {
		i = len(edges) - 1
	}
	return edges[i].Position
}
