package schema

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cgddrd/curator/internal"
	"github.com/cgddrd/curator/internal/postgres"
)

func newGenerateCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates the CREATE TABLE statement for a CSV file's header",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, _ := zap.NewDevelopment()
			l := logger.Named("schema.generate")
			l.Info(
				"curator schema generate!",
				zap.String("file", viper.GetString("file")),
				zap.String("table", viper.GetString("table")),
			)

			fpath := viper.GetString("file")
			if fpath == "" {
				return fmt.Errorf("a csv file is required")
			}

			f, err := os.Open(fpath)
			if err != nil {
				return err
			}
			defer f.Close()

			columns, _, err := internal.ReadRecords(f)
			if err != nil {
				return err
			}

			table := viper.GetString("table")
			if table == "" {
				table = internal.TableName(fpath)
			}

			fmt.Println(postgres.CreateTableDDL(table, columns))

			return nil
		},
	}

	cmd.PersistentFlags().StringP("file", "f", "", "The CSV file to derive the schema from")
	cmd.PersistentFlags().StringP("table", "t", "", "The table name, defaulting to the file's base name")
	viper.BindPFlag("file", cmd.PersistentFlags().Lookup("file"))
	viper.BindPFlag("table", cmd.PersistentFlags().Lookup("table"))
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CURATOR")
	return cmd
}
