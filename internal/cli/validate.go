package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitrogate/mlt/internal/multitrack"
	"github.com/nitrogate/mlt/internal/timeline"
)

// FileResult is the validation outcome of one timeline file.
type FileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool         `json:"valid"`
	Files []FileResult `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <timeline>...",
		Short: "Check timeline files without playing them",
		Long: `Parse timeline files, check them against the timeline schema and
attach their tracks to a throwaway multitrack.

Exit code 1 means at least one timeline is invalid.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	result := ValidationResult{Valid: true}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s", path)
		fr := validateFile(path)
		if !fr.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fr)
	}

	if result.Valid {
		return outputValidateSuccess(formatter, result)
	}
	return outputValidationErrors(formatter, result)
}

func validateFile(path string) FileResult {
	doc, err := timeline.Load(path)
	if err == nil {
		var m *multitrack.Multitrack
		m, err = timeline.Build(doc, multitrack.WithDiagnostics(&multitrack.Recorder{}))
		if err == nil {
			m.Close()
			return FileResult{Path: path, Valid: true}
		}
	}

	fr := FileResult{Path: path, Code: ErrorCode(err), Message: err.Error()}
	var loadErr *timeline.LoadError
	if errors.As(err, &loadErr) {
		fr.Message = loadErr.Message
		if loadErr.Pos.IsValid() {
			fr.Line = loadErr.Pos.Line()
		}
	}
	return fr
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, f := range result.Files {
		fmt.Fprintf(formatter.Writer, "✓ %s\n", f.Path)
	}
	return nil
}

// outputValidationErrors outputs per-file results when any file failed.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	var failed []FileResult
	for _, f := range result.Files {
		if !f.Valid {
			failed = append(failed, f)
		}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    failed[0].Code,
				Message: failed[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d timeline(s)", len(failed)))
	}

	for _, f := range result.Files {
		if f.Valid {
			fmt.Fprintf(formatter.Writer, "✓ %s\n", f.Path)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✗ %s\n", f.Path)
		if f.Line > 0 {
			fmt.Fprintf(formatter.Writer, "  line %d\n", f.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", f.Code, f.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d timeline(s)", len(failed)))
}
