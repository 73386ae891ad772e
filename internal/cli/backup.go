package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// BackupOptions holds flags for the backup command.
type BackupOptions struct {
	*RootOptions
	SrcSchema string
	DstSchema string
}

// NewBackupCommand creates the backup command.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backup <src-db> <dst-db>",
		Short: "Copy one database's content into another",
		Long: `Backup replaces the destination schema's entire content with the source's
via the engine's page-level copy. The destination file is created if it
does not exist.

Example:
  litebind backup app.db app-copy.db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.SrcSchema, "src-schema", "", `source schema (default "main")`)
	cmd.Flags().StringVar(&opts.DstSchema, "dst-schema", "", `destination schema (default "main")`)
	return cmd
}

func runBackup(opts *BackupOptions, srcPath, dstPath string, out io.Writer) error {
	src, closeSrc, err := openDatabase(opts.RootOptions, srcPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	dst, closeDst, err := openDatabase(opts.RootOptions, dstPath)
	if err != nil {
		return err
	}
	defer closeDst()

	if err := dst.BackupFrom(src, opts.DstSchema, opts.SrcSchema); err != nil {
		return WrapExitError(ExitFailure, "backup failed", err)
	}

	result := map[string]any{"source": srcPath, "destination": dstPath}
	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "backed up %s into %s\n", srcPath, dstPath)
	})
}
