package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cgddrd/curator/internal/config"
)

func newRunCommand() *cobra.Command {
	var configPath string
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Runs one import. Every CSV file at the source is loaded into a table named for the file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := config.NewCuratorFromFile(configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(c.Global.Logger.Level)
			if err != nil {
				return err
			}
			defer logger.Sync()
			l := logger.Named("curator.importer.run")
			l.Info("starting importer!")

			source, err := config.NewSource(c, l)
			if err != nil {
				return err
			}

			// Discover before dialing, so a missing source path fails
			// without a database connection ever being attempted.
			files, err := source.List(ctx)
			if err != nil {
				return err
			}

			loader, err := config.NewLoader(ctx, c, l)
			if err != nil {
				return err
			}
			defer loader.Close(ctx)

			catalog := config.NewImporter(source, loader, l).Run(ctx, files)

			bs, err := json.MarshalIndent(catalog, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(bs))

			if summaryPath != "" {
				if err := os.WriteFile(summaryPath, bs, 0644); err != nil {
					return err
				}
			}

			if !catalog.Success() && catalog.Succeeded == 0 {
				return fmt.Errorf("all %d files failed to import", catalog.Failed)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./config.yml", "Path to config file")
	cmd.Flags().StringVarP(&summaryPath, "summary", "s", "", "Path to write the run catalog JSON to")

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("config: unknown logger level: %q", level)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}
