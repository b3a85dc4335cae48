package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leapstack-labs/prql/internal/config"
	"github.com/leapstack-labs/prql/internal/runner"
	"github.com/leapstack-labs/prql/internal/sql"
	"github.com/leapstack-labs/prql/pkg/rq"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query [FILE]",
		Short: "Compile a query and run it against a SQLite database",
		Long: `Compile a YAML query document and execute the resulting SQL.

The query runs against the configured SQLite database, or an in-memory one
when no database is configured. Results render as a table on terminals and
as markdown elsewhere; use --output to force a format.`,
		Example: `  # Run against a database file
  prql query query.yaml --output json

  # Read the query from stdin
  cat query.yaml | prql query`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQueryCmd,
	}
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig(cmd.Context())

	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	q, err := rq.DecodeQuery(data)
	if err != nil {
		return err
	}

	// The signature comment is for emitted files, not for execution. The
	// SQLite target keeps output compatible with the driver below.
	sqlText, err := sql.Compile(q, sql.Options{Target: "sql.sqlite"})
	if err != nil {
		return err
	}

	r, err := runner.Open(cfg.Database, nil)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	res, err := r.Query(cmd.Context(), sqlText)
	if err != nil {
		return err
	}
	return res.Render(cmd.OutOrStdout(), resolveOutput(cfg.Output))
}

// resolveOutput maps the "auto" mode to a concrete format: tables for
// terminals, markdown for pipes.
func resolveOutput(output string) string {
	if output != "" && output != config.DefaultOutput {
		return output
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}
	return "md"
}
