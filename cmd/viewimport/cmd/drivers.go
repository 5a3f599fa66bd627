package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/viewimport/repository"
)

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "Lists the registered node store drivers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, driver := range repository.Drivers() {
				fmt.Fprintln(cmd.OutOrStdout(), driver)
			}
		},
	}
}
