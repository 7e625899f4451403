package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mmynk/settleup/internal/cli"
)

var version = "dev"

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
