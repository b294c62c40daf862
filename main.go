package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"videoforge/composer-api/composer"
	"videoforge/composer-api/config"
	"videoforge/composer-api/handlers"
	"videoforge/composer-api/internal/genclient"
	"videoforge/composer-api/internal/renderclient"
	"videoforge/composer-api/internal/worker"
	"videoforge/composer-api/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.InitLogger()
	log := config.Log

	if err := config.InitSupabase(); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	genService := genclient.NewClient(envOr("GENERATION_SERVICE_URL", "http://localhost:50051"), log)
	renderService := renderclient.NewClient(envOr("RENDER_SERVICE_URL", "http://localhost:50052"), log)

	sessions := composer.NewStore()

	dispatcher := worker.NewDispatcher(5, 100, log)
	dispatcher.Run()

	h := handlers.NewApplicationHandler(log, config.SupabaseClient, sessions, genService, renderService, dispatcher)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Composer API is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Project rows
	apiV1.Post("/projects", h.CreateProject)
	apiV1.Get("/projects", h.ListProjects)
	apiV1.Get("/projects/:projectId", h.GetProject)
	apiV1.Patch("/projects/:projectId", h.UpdateProject)
	apiV1.Delete("/projects/:projectId", h.DeleteProject)

	// Editing session lifecycle
	project := apiV1.Group("/projects/:projectId")
	project.Post("/intake", h.IntakeProject)
	project.Get("/timeline", h.GetTimeline)
	project.Post("/save", h.SaveSession)
	project.Post("/load", h.LoadSession)
	project.Put("/view", h.SetView)

	// Timeline clips
	project.Post("/clips", h.AddClip)
	project.Post("/clips/reorder", h.ReorderClips)
	project.Patch("/clips/:clipId", h.UpdateClip)
	project.Delete("/clips/:clipId", h.DeleteClip)
	project.Post("/clips/:clipId/replace", h.ReplaceClip)
	project.Post("/clips/:clipId/select", h.SelectClip)
	project.Post("/clips/:clipId/generate", h.GenerateClipVariant)

	// Transitions
	project.Put("/transitions", h.SetTransition)
	project.Delete("/transitions/:transitionId", h.DeleteTransition)

	// Audio tracks
	project.Post("/audio", h.AddAudioClip)
	project.Patch("/audio/:audioId", h.UpdateAudioClip)
	project.Delete("/audio/:audioId", h.DeleteAudioClip)
	project.Post("/audio/music", h.GenerateMusic)
	project.Post("/scenes/:sceneNumber/voiceover", h.GenerateVoiceover)

	// Captions
	project.Post("/captions/auto", h.AutoGenerateCaptions)
	project.Post("/captions", h.AddCaption)
	project.Patch("/captions/:captionId", h.UpdateCaption)
	project.Delete("/captions/:captionId", h.DeleteCaption)
	project.Put("/captions/style", h.SetCaptionStyle)

	// Playback
	project.Post("/playback/play", h.Play)
	project.Post("/playback/pause", h.Pause)
	project.Post("/playback/stop", h.StopPlayback)
	project.Post("/playback/seek", h.SeekPlayback)
	project.Get("/playback", h.GetPlayback)

	// Export
	project.Put("/export/settings", h.UpdateExportSettings)
	project.Get("/export/settings", h.GetExportSettings)
	project.Post("/export/render", h.StartRender)
	apiV1.Get("/render-jobs/:jobId", h.GetRenderJob)
	apiV1.Post("/render-jobs/:jobId/refresh", h.RefreshRenderJob)

	// Media upload proxy
	project.Post("/media/:mediaId/upload", h.UploadMedia)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		dispatcher.Stop()
		if err := app.Shutdown(); err != nil {
			log.Errorf("Shutdown error: %v", err)
		}
	}()

	port := envOr("PORT", "8080")
	log.Infof("Starting Composer API on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
