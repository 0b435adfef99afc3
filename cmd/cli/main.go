package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/cmd/cli/commands"
)

func main() {
	// Credentials may live in a .env during development
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
