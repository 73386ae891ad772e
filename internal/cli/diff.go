package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/litebind"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Output   string
	Compress bool
}

// diffInfo is the diff command's result payload.
type diffInfo struct {
	Output string   `json:"output"`
	Size   int      `json:"size"`
	Blake3 string   `json:"blake3,omitempty"`
	Tables []string `json:"tables"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <from-db> <to-db>",
		Short: "Produce the changeset that transforms one database into another",
		Long: `Diff computes, per table, the row-level changes that take the from-database
to the to-database, using the engine's session diff. Tables are paired by
name and must share a primary-key shape. Tables that exist only in the
from-database are not represented (changesets carry row changes, not DDL).

Applying the resulting changeset to a copy of the from-database yields the
to-database's rows.

Example:
  litebind diff before.db after.db -o changes.cs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output changeset file (required)")
	cmd.Flags().BoolVar(&opts.Compress, "xz", false, "xz-compress the changeset")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runDiff(opts *DiffOptions, fromPath, toPath string, out io.Writer) error {
	db, closeDB, err := openDatabase(opts.RootOptions, toPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := db.Exec(`ATTACH DATABASE ? AS before`, fromPath); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("cannot attach %s", fromPath), err)
	}

	tables, err := userTables(db)
	if err != nil {
		return err
	}

	sess, err := db.CreateSession("")
	if err != nil {
		return WrapExitError(ExitFailure, "cannot create session", err)
	}
	defer sess.Close()

	for _, table := range tables {
		if err := sess.Attach(table); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("cannot attach table %s", table), err)
		}
		if err := sess.Diff("before", table); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("diff failed for table %s", table), err)
		}
		slog.Debug("diffed table", "table", table)
	}

	buf, err := sess.Changeset()
	if err != nil {
		return WrapExitError(ExitFailure, "cannot produce changeset", err)
	}

	// No recorded differences: still write a (valid, empty) changeset so
	// downstream apply is a clean no-op.
	var data []byte
	if buf != nil {
		defer buf.Close()
		data = buf.Bytes()
	}
	if err := writeOutput(opts.Output, data, opts.Compress); err != nil {
		return WrapExitError(ExitCommandError, "cannot write changeset", err)
	}

	info := diffInfo{Output: opts.Output, Size: len(data), Tables: tables}
	if len(data) > 0 {
		info.Blake3 = digest(data)
	}
	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(info, func(w io.Writer) {
		if info.Size == 0 {
			fmt.Fprintf(w, "no changes; wrote empty changeset %s\n", info.Output)
			return
		}
		fmt.Fprintf(w, "wrote %s (%d bytes, %d tables)\n", info.Output, info.Size, len(info.Tables))
	})
}

// userTables lists the target database's user tables through the binding.
func userTables(db *litebind.Database) ([]string, error) {
	rows, err := db.Query(
		`SELECT name FROM sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "cannot list tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		tables = append(tables, rows.Row()[0].(string))
	}
	if err := rows.Err(); err != nil {
		return nil, WrapExitError(ExitFailure, "cannot list tables", err)
	}
	return tables, nil
}
