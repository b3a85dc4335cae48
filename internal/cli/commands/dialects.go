package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prql/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"DIALECT", "SUPPORT", "CTES"})

			for _, name := range dialect.List() {
				handler, err := dialect.Get(name)
				if err != nil {
					return err
				}
				ctes := "no"
				if handler.SupportsCTEs() {
					ctes = "yes"
				}
				t.AppendRow(table.Row{name, handler.SupportLevel().String(), ctes})
			}

			t.Render()
			return nil
		},
	}
}
