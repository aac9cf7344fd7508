package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/supreassistant/internal/server"
	"github.com/dmitrijs2005/supreassistant/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
