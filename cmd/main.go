package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/config"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/api/v1/handlers"
	v1 "github.com/SunbirdAI/sunbird-ai-api-sub001/internal/api/v1/routes"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/cache"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/db/repos"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/logger"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/runpod"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/services"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}
	logger.Initialize()

	cfg := config.Load()

	database, err := db.New(db.Options{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	runRepo := repos.NewInferenceRunRepository(database)

	results := cache.NewResultCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = results.Close() }()

	audio, err := storage.NewAudioStore(cfg.AudioStorageType, cfg.AudioStoragePath)
	if err != nil {
		logger.Fatalf("Failed to initialize audio storage: %v", err)
	}

	opts := runpod.DefaultOptions()
	opts.BaseURL = cfg.RunpodBaseURL
	opts.EndpointID = cfg.RunpodEndpointID
	opts.APIKey = cfg.RunpodAPIKey
	opts.RunTimeout = cfg.RunpodTimeout
	client, err := runpod.NewClient(opts)
	if err != nil {
		logger.Fatalf("Failed to create serverless client: %v", err)
	}

	inferenceService := services.NewInferenceService(client, runRepo, results, audio, cfg.RunpodTimeout)
	inferenceHandler := handlers.NewInferenceHandler(inferenceService)

	app := fiber.New(fiber.Config{
		AppName:      "Sunbird AI API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	v1.Register(app, inferenceHandler)

	logger.Infof("Server starting on port %s", cfg.ServerPort)
	logger.Fatal(app.Listen(":" + cfg.ServerPort))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
