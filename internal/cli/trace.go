package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitrogate/mlt/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string // optional - lists sessions when empty
}

// TraceResult is the JSON payload of the trace command for one session.
type TraceResult struct {
	Session  store.Session       `json:"session"`
	Rounds   []store.StoredRound `json:"rounds"`
	Verified bool                `json:"verified"`
	Mismatch []int64             `json:"mismatch,omitempty"` // seqs whose digest differs
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Read back persisted rounds",
		Long: `Read the rounds a "mlt run --db" session persisted and verify each
round's stored digest against its recomputed canonical form.

Without --session the sessions in the database are listed.

Examples:
  mlt trace --db ./mlt.db
  mlt trace --db ./mlt.db --session 0190f4a2-...
  mlt trace --db ./mlt.db --session 0190f4a2-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to trace")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.Session == "" {
		return listSessions(ctx, st, formatter)
	}

	sess, err := st.ReadSession(ctx, opts.Session)
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("session %q not found", opts.Session), err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	rounds, err := st.ReadRounds(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read rounds", err)
	}

	result := TraceResult{Session: sess, Rounds: rounds, Verified: true}
	for _, r := range rounds {
		digest, err := r.RoundRecord.Digest()
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("round %d", r.Seq), err)
		}
		if digest != r.Digest {
			result.Verified = false
			result.Mismatch = append(result.Mismatch, r.Seq)
		}
	}

	if opts.Format == "json" {
		if err := formatter.SuccessWithSession(sess.ID, result); err != nil {
			return err
		}
	} else {
		outputTraceText(formatter, result)
	}

	if !result.Verified {
		return NewExitError(ExitFailure, fmt.Sprintf("digest mismatch in %d round(s)", len(result.Mismatch)))
	}
	return nil
}

func listSessions(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}
	if sessions == nil {
		sessions = []store.Session{}
	}

	if formatter.Format == "json" {
		return formatter.Success(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(formatter.Writer, "No sessions recorded")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(formatter.Writer, "%s %s tracks=%d length=%d\n", s.ID, s.Timeline, s.TrackCount, s.Length)
	}
	return nil
}

func outputTraceText(formatter *OutputFormatter, result TraceResult) {
	s := result.Session
	fmt.Fprintf(formatter.Writer, "session %s timeline=%s tracks=%d length=%d fps=%s clip_policy=%s start=%d\n",
		s.ID, s.Timeline, s.TrackCount, s.Length, s.FPS, s.ClipPolicy, s.Start)

	mismatched := make(map[int64]bool, len(result.Mismatch))
	for _, seq := range result.Mismatch {
		mismatched[seq] = true
	}
	for _, r := range result.Rounds {
		line := formatRound(r.RoundRecord)
		if mismatched[r.Seq] {
			line += " DIGEST MISMATCH"
		}
		fmt.Fprintln(formatter.Writer, line)
	}

	if result.Verified {
		fmt.Fprintf(formatter.Writer, "%d rounds, digests verified\n", len(result.Rounds))
	} else {
		fmt.Fprintf(formatter.Writer, "%d rounds, %d digest mismatch(es)\n", len(result.Rounds), len(result.Mismatch))
	}
}
