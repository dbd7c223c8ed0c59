package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"github.com/eleven-am/aeye/internal/assist"
	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/interaction"
	"github.com/eleven-am/aeye/internal/memory"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type noopEmbeddingService struct{}

func (n *noopEmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 384), nil
}

func ProvideEmbeddingService() memory.EmbeddingService {
	return &noopEmbeddingService{}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideAssistHandler(
	loop *assist.Loop,
	display *assist.DisplayState,
	output *speech.Output,
	svc perception.Service,
	source capture.Source,
	feed *assist.Feed,
	logger *slog.Logger,
) *assist.Handler {
	return assist.NewHandler(loop, display, output, svc, source, feed, logger)
}

func ProvideInteractionHandler(session *interaction.Session, logger *slog.Logger) *interaction.Handler {
	return interaction.NewHandler(session, logger)
}

func ProvideMemoryHandler(
	store *memory.Store,
	sessions *memory.SessionStore,
	embeddings memory.EmbeddingService,
	cfg *Config,
	logger *slog.Logger,
) *memory.Handler {
	return memory.NewHandler(store, sessions, embeddings, cfg.DataDir, logger)
}

type HandlerParams struct {
	fx.In

	AssistHandler      *assist.Handler
	InteractionHandler *interaction.Handler
	MemoryHandler      *memory.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/api")
	ws := e.Group("/ws")

	params.AssistHandler.RegisterRoutes(api, ws)
	params.InteractionHandler.RegisterRoutes(api)
	params.MemoryHandler.RegisterRoutes(api)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideEmbeddingService,
		ProvideAssistHandler,
		ProvideInteractionHandler,
		ProvideMemoryHandler,
	),
	fx.Invoke(RegisterRoutes),
)
