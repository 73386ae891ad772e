package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Schema string
	Verify string
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore <db> <snapshot>",
		Short: "Replace a database's content with a serialized snapshot",
		Long: `Restore deserializes a snapshot file into the named database, replacing
the target schema's entire prior content. xz-compressed snapshots are
detected automatically. With --verify, the snapshot's BLAKE3 digest must
match before anything touches the target.

Example:
  litebind restore app.db app.snap
  litebind restore app.db app.snap.xz --verify 9c3f...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", `target schema (default "main")`)
	cmd.Flags().StringVar(&opts.Verify, "verify", "", "required BLAKE3 digest of the snapshot")
	return cmd
}

func runRestore(opts *RestoreOptions, dbPath, snapPath string, out io.Writer) error {
	data, err := readInput(snapPath)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot read snapshot %s", snapPath), err)
	}

	if opts.Verify != "" {
		if got := digest(data); got != opts.Verify {
			return WrapExitError(ExitFailure,
				fmt.Sprintf("snapshot digest mismatch: got %s, want %s", got, opts.Verify), nil)
		}
	}

	db, closeDB, err := openDatabase(opts.RootOptions, dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := db.Deserialize(data, opts.Schema); err != nil {
		return WrapExitError(ExitFailure, "restore failed", err)
	}

	result := map[string]any{"database": dbPath, "snapshot": snapPath, "size": len(data)}
	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "restored %s from %s (%d bytes)\n", dbPath, snapPath, len(data))
	})
}
