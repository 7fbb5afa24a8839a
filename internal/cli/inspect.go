package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
	"github.com/nitrogate/mlt/internal/timeline"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Whence string
	Index  int
}

// TrackInfo describes one track slot.
type TrackInfo struct {
	Index    int    `json:"index"`
	Producer string `json:"producer"` // "color", "playlist" or "empty"
	Playtime int64  `json:"playtime"`
	FPS      string `json:"fps,omitempty"`
	EOF      string `json:"eof,omitempty"`
	Clips    int    `json:"clips,omitempty"`
}

// InspectResult is the synchronizer state after building a timeline.
type InspectResult struct {
	Name       string      `json:"name"`
	Count      int         `json:"count"`
	Capacity   int         `json:"capacity"`
	Length     int64       `json:"length"`
	Out        int64       `json:"out"`
	FPS        string      `json:"fps"`
	Speed      string      `json:"speed"`
	ClipPolicy string      `json:"clip_policy"`
	Tracks     []TrackInfo `json:"tracks"`
	ClipEdges  []int64     `json:"clip_edges"`
	Boundary   *Boundary   `json:"boundary,omitempty"`
}

// Boundary is the answer to a single clip boundary query.
type Boundary struct {
	Whence   string `json:"whence"`
	Index    int    `json:"index"`
	Position int64  `json:"position"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <timeline>",
		Short: "Show the synchronizer state built from a timeline",
		Long: `Build a timeline without playing it and print the track registry,
the aggregate length, out point and frame rate, and the merged clip edges.

With --whence the clip boundary for (--whence, --index) is also printed.

Example:
  mlt inspect demo.yaml
  mlt inspect --whence end --index 1 demo.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Whence, "whence", "", "clip boundary origin (start|current|end)")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "clip boundary index relative to --whence")

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	var whence media.Whence
	if opts.Whence != "" {
		w, err := media.ParseWhence(opts.Whence)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --whence", err)
		}
		whence = w
	}

	doc, err := timeline.Load(path)
	if err != nil {
		return WrapExitError(loadExitCode(err), "failed to load timeline", err)
	}
	m, err := timeline.Build(doc, multitrack.WithDiagnostics(multitrack.SlogDiagnostics{Logger: logger}))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build timeline", err)
	}
	defer m.Close()

	result := inspect(doc.Name, m)
	if opts.Whence != "" {
		result.Boundary = &Boundary{
			Whence:   whence.String(),
			Index:    opts.Index,
			Position: int64(m.ClipBoundary(whence, opts.Index)),
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.String())
}

func inspect(name string, m *multitrack.Multitrack) InspectResult {
	result := InspectResult{
		Name:       name,
		Count:      m.Count(),
		Capacity:   m.Capacity(),
		Length:     int64(m.Length()),
		Out:        int64(m.Out()),
		FPS:        formatFloat(m.FrameRate()),
		Speed:      formatFloat(m.Speed()),
		ClipPolicy: m.ClipPolicy().String(),
		Tracks:     make([]TrackInfo, 0, m.Count()),
		ClipEdges:  []int64{},
	}

	for i := 0; i < m.Count(); i++ {
		p := m.Track(i)
		if p == nil {
			result.Tracks = append(result.Tracks, TrackInfo{Index: i, Producer: "empty"})
			continue
		}
		info := TrackInfo{
			Index:    i,
			Producer: timeline.ProducerColor,
			Playtime: int64(p.Playtime()),
			FPS:      formatFloat(p.FrameRate()),
			EOF:      p.EOF().String(),
		}
		if pl, ok := media.AsPlaylist(p); ok {
			info.Producer = timeline.ProducerPlaylist
			info.Clips = pl.ClipCount()
		}
		result.Tracks = append(result.Tracks, info)
	}

	for _, e := range m.ClipEdges() {
		result.ClipEdges = append(result.ClipEdges, int64(e.Position))
	}
	return result
}

// String renders the result as indented text.
func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "timeline %s\n", r.Name)
	fmt.Fprintf(&b, "  count=%d capacity=%d length=%d out=%d fps=%s speed=%s clip_policy=%s\n",
		r.Count, r.Capacity, r.Length, r.Out, r.FPS, r.Speed, r.ClipPolicy)
	for _, t := range r.Tracks {
		if t.Producer == "empty" {
			fmt.Fprintf(&b, "  track %d: empty\n", t.Index)
			continue
		}
		fmt.Fprintf(&b, "  track %d: %s playtime=%d fps=%s eof=%s", t.Index, t.Producer, t.Playtime, t.FPS, t.EOF)
		if t.Producer == timeline.ProducerPlaylist {
			fmt.Fprintf(&b, " clips=%d", t.Clips)
		}
		b.WriteString("\n")
	}

	edges := make([]string, len(r.ClipEdges))
	for i, e := range r.ClipEdges {
		edges[i] = fmt.Sprint(e)
	}
	fmt.Fprintf(&b, "  clip edges: [%s]", strings.Join(edges, " "))
	if r.Boundary != nil {
		fmt.Fprintf(&b, "\n  clip boundary %s %d: %d", r.Boundary.Whence, r.Boundary.Index, r.Boundary.Position)
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
