package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/syncbox/internal/app"
	"github.com/dmitrijs2005/syncbox/internal/buildinfo"
	"github.com/dmitrijs2005/syncbox/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	a.Run(ctx)
}
