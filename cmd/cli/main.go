package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/s3share/internal/cli"
	"github.com/dmitrijs2005/s3share/internal/config"
	"github.com/dmitrijs2005/s3share/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewProduction("error")
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cfg, logger, os.Stdout)
	err = app.Run(ctx, os.Args[1:])
	_ = logger.Sync()

	if err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			log.Printf("%v", err)
		}
		os.Exit(1)
	}

}
