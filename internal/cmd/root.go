package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgddrd/curator/internal/cmd/fixtures"
	"github.com/cgddrd/curator/internal/cmd/importer"
	"github.com/cgddrd/curator/internal/cmd/schema"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "curator",
		Short: "Imports CSV files into PostgreSQL tables, one table per file",
		Long:  ``,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to curator!")
		},
	}

	cmd.AddCommand(importer.NewCommand())
	cmd.AddCommand(schema.NewCommand())
	cmd.AddCommand(fixtures.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
