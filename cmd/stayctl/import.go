package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/logger"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

func init() {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk-import properties from a JSON array file",
		Long: `Import reads a JSON array of property objects and stores each one.
Records are not geocoded during import; run "stayctl geocode" afterwards to
backfill coordinates at a polite rate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("stayctl")
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var records []model.Property
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			st, _, err := openStore(ctx, log)
			if err != nil {
				return err
			}
			svc := services.NewPropertyService(st, nil, nil)
			for i := range records {
				records[i].ID = 0
				if _, err := svc.CreateProperty(ctx, &records[i]); err != nil {
					return fmt.Errorf("record %d (%s): %w", i, records[i].Location, err)
				}
			}
			fmt.Fprintf(os.Stdout, "imported %d properties\n", len(records))
			return nil
		},
	}
	rootCmd.AddCommand(importCmd)
}
