package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/go-mclib/hud/pkg/helpers"
)

func main() {
	var f helpers.Flags
	helpers.RegisterFlags(&f)
	flag.Parse()
	helpers.ApplyEnv(&f)

	if f.Schema {
		if err := helpers.PrintSchema(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := helpers.Run(ctx, f); err != nil {
		log.Fatalf("inventory-hud: %v", err)
	}
}
