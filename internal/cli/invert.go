package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/litebind"
)

// InvertOptions holds flags for the invert command.
type InvertOptions struct {
	*RootOptions
	Output   string
	Compress bool
}

// NewInvertCommand creates the invert command.
func NewInvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invert <changeset>",
		Short: "Invert a changeset file",
		Long: `Invert writes the changeset that exactly undoes the input: applying the
output to a database in the state the input was captured from restores the
pre-change rows. No database is involved; this is a pure buffer transform.

Example:
  litebind invert changes.cs -o undo.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvert(opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output changeset file (required)")
	cmd.Flags().BoolVar(&opts.Compress, "xz", false, "xz-compress the output")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runInvert(opts *InvertOptions, csPath string, out io.Writer) error {
	data, err := readInput(csPath)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read changeset %s", csPath), err)
	}

	buf, err := litebind.InvertChangeset(data)
	if err != nil {
		return WrapExitError(ExitFailure, "invert failed", err)
	}
	defer buf.Close()

	inverted := buf.Bytes()
	if err := writeOutput(opts.Output, inverted, opts.Compress); err != nil {
		return WrapExitError(ExitCommandError, "cannot write changeset", err)
	}

	result := map[string]any{"output": opts.Output, "size": len(inverted)}
	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "wrote %s (%d bytes)\n", opts.Output, len(inverted))
	})
}
