package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prql/internal/sql"
	"github.com/leapstack-labs/prql/pkg/rq"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate a query without generating SQL",
		Long: `Validate a YAML query document.

Decodes the query, verifies that its main relation is a pipeline, and
reports which SQL clause each transform lands in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			transforms, err := sql.Preprocess(q)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, st := range transforms {
				fmt.Fprintf(w, "%-10s %T\n", st.Clause, st.Transform)
			}
			fmt.Fprintf(w, "OK: %d transforms\n", len(transforms))
			return nil
		},
	}
}
