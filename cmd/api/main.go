package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"deckgen/internal/content"
	"deckgen/internal/http/handlers"
	"deckgen/internal/http/httpapi"
	"deckgen/internal/infra"
	"deckgen/internal/jobs"
	"deckgen/internal/providers/genai"
	"deckgen/internal/providers/imagen"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	textModel := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	imageModel := imagen.NewClient(imagen.Options{
		APIKey:  cfg.ImagenAPIKey,
		Model:   cfg.ImagenModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if !textModel.Configured() {
		logger.Info().Msg("GEMINI_API_KEY not set, serving mock presentations")
	}

	generator := content.NewGenerator(textModel, imageModel, logger)
	store := jobs.NewMemoryStore()
	runner := jobs.NewRunner(store, cfg.MaxConcurrentJobs, cfg.GenerationTimeout, logger)

	app := handlers.NewApp(store, runner, generator, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	logger.Info().Msg("waiting for in-flight jobs")
	runner.Wait()
	logger.Info().Msg("server stopped")
}
