package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nitrogate/mlt/internal/multitrack"
	"github.com/nitrogate/mlt/internal/session"
	"github.com/nitrogate/mlt/internal/store"
	"github.com/nitrogate/mlt/internal/timeline"
	"github.com/nitrogate/mlt/internal/trace"
	"github.com/nitrogate/mlt/internal/tractor"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Rounds   int
	Database string

	// SessionIDs allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	SessionIDs session.IDGenerator
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Timeline string              `json:"timeline"`
	Rounds   []trace.RoundRecord `json:"rounds"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <timeline>",
		Short: "Play a timeline round by round",
		Long: `Build the multitrack described by a timeline file and pull rounds
from it. Each round reads every track at the same position and reports
the frame the compositor would show.

With --db every round is persisted under a new session id and can be
read back with "mlt trace".

Example:
  mlt run demo.yaml
  mlt run --rounds 250 --db ./mlt.db demo.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Rounds, "rounds", 0, "number of rounds to pull (0 plays to the out point)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database for persisting rounds")

	return cmd
}

func runTimeline(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	doc, err := timeline.Load(path)
	if err != nil {
		return WrapExitError(loadExitCode(err), "failed to load timeline", err)
	}
	m, err := timeline.Build(doc, multitrack.WithDiagnostics(multitrack.SlogDiagnostics{Logger: logger}))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build timeline", err)
	}
	defer m.Close()
	logger.Info("timeline loaded",
		"name", doc.Name,
		"tracks", m.Count(),
		"length", int64(m.Length()),
		"fps", m.FrameRate(),
	)

	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = int(m.Length() - m.Position())
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping playback", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var st *store.Store
	var sessionID string
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()

		gen := opts.SessionIDs
		if gen == nil {
			gen = session.UUIDv7Generator{}
		}
		sessionID = gen.Generate()
		if err := st.WriteSession(ctx, sessionFor(sessionID, path, m)); err != nil {
			return WrapExitError(ExitCommandError, "failed to record session", err)
		}
		logger.Info("session started", "session", sessionID, "db", opts.Database)
	}

	records := []trace.RoundRecord{}
	if rounds > 0 {
		tr := tractor.New(m, tractor.WithLogger(logger))
		err = tr.Run(ctx, rounds, func(r tractor.Round) error {
			rec := trace.FromRound(r)
			if st != nil {
				if _, err := st.WriteRound(ctx, sessionID, rec); err != nil {
					return fmt.Errorf("persisting round %d: %w", rec.Seq, err)
				}
			}
			records = append(records, rec)
			if opts.Format == "text" {
				fmt.Fprintln(formatter.Writer, formatRound(rec))
			}
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return WrapExitError(ExitFailure, "playback failed", err)
		}
	}

	logger.Debug("playback finished", "rounds", len(records), "position", int64(m.Position()))

	if opts.Format == "json" {
		return formatter.SuccessWithSession(sessionID, RunResult{Timeline: doc.Name, Rounds: records})
	}
	summary := fmt.Sprintf("%d rounds", len(records))
	if sessionID != "" {
		summary += fmt.Sprintf(" (session %s)", sessionID)
	}
	return formatter.Success(summary)
}

func sessionFor(id, path string, m *multitrack.Multitrack) store.Session {
	return store.Session{
		ID:         id,
		Timeline:   path,
		TrackCount: m.Count(),
		Length:     int64(m.Length()),
		FPS:        formatFloat(m.FrameRate()),
		ClipPolicy: m.ClipPolicy().String(),
		Start:      int64(m.Position()),
	}
}

// formatRound renders one round as a single text line:
//
//	round 0 position=0 output=2:title tracks=[0:bg 1:- 2:title]
//
// Tracks without content print as "-".
func formatRound(rec trace.RoundRecord) string {
	output := "none"
	if rec.OutputTrack >= 0 {
		output = fmt.Sprintf("%d:%s", rec.OutputTrack, rec.OutputResource)
	}

	parts := make([]string, len(rec.Pulls))
	for i, p := range rec.Pulls {
		resource := p.Resource
		if resource == "" {
			resource = "-"
		}
		parts[i] = fmt.Sprintf("%d:%s", p.Track, resource)
	}

	return fmt.Sprintf("round %d position=%d output=%s tracks=[%s]",
		rec.Seq, rec.Position, output, strings.Join(parts, " "))
}
