// Package routes wires the v1 API surface.
package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/api/v1/handlers"
	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/api/v1/middleware"
)

// SetupRoutes configures all the v1 routes
func SetupRoutes(router fiber.Router, inference *handlers.InferenceHandler) {
	tasks := router.Group("/tasks")
	tasks.Post("/translate", inference.Translate)
	tasks.Post("/stt", inference.Transcribe)
	tasks.Post("/tts", inference.Synthesize)
	tasks.Get("/:request_id", inference.GetRun)
}

// Register registers the v1 routes
func Register(app *fiber.App, inference *handlers.InferenceHandler) {
	v1Group := app.Group("/api/v1", middleware.Logger())
	SetupRoutes(v1Group, inference)
}
