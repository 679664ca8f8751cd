package main

import (
	"github.com/joho/godotenv"

	"github.com/OntriDS/thegame-sub002/internal/cli"
	"github.com/OntriDS/thegame-sub002/pkg/logging"
)

func main() {
	// A missing .env file is fine; flags and the environment still apply
	_ = godotenv.Load()

	logging.Setup()
	cli.Execute()
}
