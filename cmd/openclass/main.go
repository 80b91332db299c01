// Package main is the entry point for the openclass CLI
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/classowl/go-openclass/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
