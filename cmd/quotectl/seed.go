package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serigraph/quotebot/database"
	"github.com/serigraph/quotebot/internal/config"
	"github.com/serigraph/quotebot/internal/storage"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := storage.LoadSeed(file)
			if err != nil {
				return err
			}

			config.LoadEnvFiles()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			if err := seed.Apply(cmd.Context(), storage.NewDatabaseStore(db)); err != nil {
				return fmt.Errorf("apply seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Seeded %d products, %d dimensions, %d materials, %d charges\n",
				len(seed.Products), len(seed.Dimensions), len(seed.Materials), len(seed.Charges))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "catalog.yaml", "YAML catalog file")
	return cmd
}
