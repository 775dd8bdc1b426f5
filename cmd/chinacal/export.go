package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradecal/chinacal/internal/store/sqlite"
	"go.uber.org/zap"
)

func exportCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active dataset to a JSON or sqlite file",
		Long:  "Export writes the dataset the service would serve (embedded or configured) to a standalone file, usable later via the 'dataset' config key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cfg)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			ds := table.Export()

			switch format {
			case "json":
				b, err := table.ExportJSON()
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
			case "sqlite":
				db, err := sqlite.Open(out)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := sqlite.Migrate(db); err != nil {
					return err
				}
				if err := sqlite.WriteDataset(db, ds); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (json or sqlite)", format)
			}

			logger.Info("dataset exported",
				zap.String("format", format),
				zap.String("out", out),
				zap.Int("days", len(ds.Days)),
				zap.Int("min_year", ds.MinYear),
				zap.Int("max_year", ds.MaxYear))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or sqlite")
	cmd.Flags().StringVar(&out, "out", "calendar.json", "Output file path")

	return cmd
}
