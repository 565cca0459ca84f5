package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/stayservice"
)

func main() {
	if err := stayservice.Run(); err != nil {
		log.Error().Err(err).Msg("stay-service exited with error")
		os.Exit(1)
	}
}
