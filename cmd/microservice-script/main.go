package main

import (
	"context"
	_ "embed"
	"os"
	"os/signal"

	"github.com/goaux/headline"

	"github.com/OniCoders/microservice-script-ts/generator"
)

//go:embed usage.md
var usage string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	generator.Main(ctx, generator.Config{
		Use:     "microservice-script",
		Short:   headline.Get(usage),
		Long:    usage,
		Version: "v0.1.0",
	})
}
