package main

import (
	"context"
	"log"

	"github.com/dgitonga/qrollcall/internal/server"
	"github.com/dgitonga/qrollcall/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
