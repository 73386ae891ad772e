package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <db> <changeset>",
		Short: "Apply a changeset file to a database",
		Long: `Apply replays a changeset's row-level changes against the database, in
changeset order. Conflicting changes are omitted (the engine's default
policy). xz-compressed changesets are detected automatically.

Example:
  litebind apply app.db changes.cs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runApply(opts *ApplyOptions, dbPath, csPath string, out io.Writer) error {
	data, err := readInput(csPath)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read changeset %s", csPath), err)
	}

	db, closeDB, err := openDatabase(opts.RootOptions, dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := db.ApplyChangeset(data); err != nil {
		return WrapExitError(ExitFailure, "apply failed", err)
	}

	result := map[string]any{"database": dbPath, "changeset": csPath, "size": len(data)}
	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "applied %s to %s (%d bytes)\n", csPath, dbPath, len(data))
	})
}
