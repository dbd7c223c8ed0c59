package bootstrap

import (
	"github.com/eleven-am/aeye/internal/assist"
	"github.com/eleven-am/aeye/internal/health"
	"github.com/eleven-am/aeye/internal/interaction"
	"github.com/eleven-am/aeye/internal/memory"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
	"github.com/labstack/echo/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type HealthParams struct {
	fx.In

	DB         *gorm.DB
	Redis      *redis.Client
	Qdrant     *qdrant.Client
	Perception perception.Service
	TTS        speech.TextToSpeech
	STT        speech.SpeechToText
	Loop       *assist.Loop
	Display    *assist.DisplayState
	Output     *speech.Output
	Feed       *assist.Feed
	Session    *interaction.Session
	Sessions   *memory.SessionStore
	Config     *Config
}

func ProvideHealthHandler(params HealthParams) *health.Handler {
	return health.NewHandler(
		params.DB,
		params.Redis,
		params.Qdrant,
		params.Perception,
		params.TTS,
		params.STT,
		params.Loop,
		params.Display,
		params.Output,
		params.Feed,
		params.Session,
		params.Sessions,
		params.Config.Version,
	)
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			h.IncrementConnections()
			defer h.DecrementConnections()
			return next(c)
		}
	}
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(metricsMiddleware(h))
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
