package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/factory"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/logger"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

func init() {
	var generate bool
	var request string

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("stayctl")
			ctx := cmd.Context()

			st, cfg, err := openStore(ctx, log)
			if err != nil {
				return err
			}
			n, err := store.SeedIfEmpty(ctx, st)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "seeded %d properties\n", n)

			if generate {
				gen := factory.NewGenerator(cfg, log)
				resolver := factory.NewResolver(cfg, log)
				props := services.NewPropertyService(st, nil, resolver)
				created, fromFallback, err := services.NewPropertyGenService(gen, props, cfg.ChatModel).Generate(ctx, request)
				if err != nil {
					return err
				}
				src := "generated"
				if fromFallback {
					src = "template"
				}
				fmt.Fprintf(os.Stdout, "added %d %s properties\n", len(created), src)
			}
			return nil
		},
	}
	seedCmd.Flags().BoolVar(&generate, "generate", false, "Also add AI-generated properties (falls back to templates)")
	seedCmd.Flags().StringVar(&request, "request", "a few distinctive Canadian vacation rentals", "Generation request text")
	rootCmd.AddCommand(seedCmd)
}
