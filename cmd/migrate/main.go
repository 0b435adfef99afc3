// Applies the database schema.
// How to run:
// go run cmd/migrate/main.go
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/config"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	database, err := db.New(db.Options{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}
