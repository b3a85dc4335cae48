package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prql/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "prql version %s\n", version.Version)
			return err
		},
	}
}
