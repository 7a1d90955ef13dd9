package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/GooseZen/spring-6-resttemplate/cmd/beerctl/commands"
)

var version = "dev"

func main() {
	// A missing .env file is fine; the environment may already be configured.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := commands.Execute(ctx, os.Args, os.Stdout, version); err != nil {
		log.Error().Err(err).Msg("beerctl failed")
		stop()
		os.Exit(1)
	}
}
