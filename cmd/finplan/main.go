package main

import (
	"github.com/joho/godotenv"

	"finplan/internal/cli"
)

func main() {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	cli.Execute()
}
