package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/factory"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/logger"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
)

func init() {
	var delay time.Duration

	geocodeCmd := &cobra.Command{
		Use:   "geocode",
		Short: "Backfill coordinates for properties that lack them",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("stayctl")
			ctx := cmd.Context()

			st, cfg, err := openStore(ctx, log)
			if err != nil {
				return err
			}
			resolver := factory.NewResolver(cfg, log)
			svc := services.NewPropertyService(st, nil, resolver)

			n, err := svc.BackfillCoordinates(ctx, delay)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "updated %d properties\n", n)
			return nil
		},
	}
	geocodeCmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between geocoding requests")
	rootCmd.AddCommand(geocodeCmd)
}
