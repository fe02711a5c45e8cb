package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/kailas-cloud/pagehighlight/internal/version"
)

func main() {
	// .env is optional for the CLI.
	_ = godotenv.Load()

	root := newRootCmd(&app{out: os.Stdout})
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version.Version)); err != nil {
		os.Exit(1)
	}
}
