package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// TablesOptions holds flags for the tables command.
type TablesOptions struct {
	*RootOptions
	Schema string
}

// schemaObject is one row of the schema listing.
type schemaObject struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tables <db>",
		Short: "List tables and other schema objects of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", `schema to list (default "main")`)
	return cmd
}

func runTables(opts *TablesOptions, path string, out io.Writer) error {
	db, closeDB, err := openDatabase(opts.RootOptions, path)
	if err != nil {
		return err
	}
	defer closeDB()

	schema := opts.Schema
	if schema == "" {
		schema = "main"
	}
	rows, err := db.Query(fmt.Sprintf(
		`SELECT name, type FROM %q.sqlite_schema WHERE name NOT LIKE 'sqlite_%%' ORDER BY name`, schema))
	if err != nil {
		return WrapExitError(ExitFailure, "cannot read schema", err)
	}
	defer rows.Close()

	var objects []schemaObject
	for rows.Next() {
		row := rows.Row()
		objects = append(objects, schemaObject{
			Name: row[0].(string),
			Type: row[1].(string),
		})
	}
	if err := rows.Err(); err != nil {
		return WrapExitError(ExitFailure, "cannot read schema", err)
	}

	p := &Printer{Format: opts.Format, Out: out}
	return p.Result(objects, func(w io.Writer) {
		if len(objects) == 0 {
			fmt.Fprintln(w, "no objects")
			return
		}
		for _, o := range objects {
			fmt.Fprintf(w, "%-8s %s\n", o.Type, o.Name)
		}
	})
}
