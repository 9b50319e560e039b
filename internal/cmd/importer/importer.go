package importer

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "importer",
		Short: "Manages the import of CSV data",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("welcome to curator importer!")
			return nil
		},
	}
	cmd.AddCommand(newRunCommand())
	return cmd
}
