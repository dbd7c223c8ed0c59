package health

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eleven-am/aeye/internal/assist"
	"github.com/eleven-am/aeye/internal/interaction"
	"github.com/eleven-am/aeye/internal/memory"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
	"github.com/labstack/echo/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type ComponentStatus struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type RuntimeStats struct {
	Goroutines         int    `json:"goroutines"`
	MemoryAllocMB      uint64 `json:"memory_alloc_mb"`
	MemoryTotalAllocMB uint64 `json:"memory_total_alloc_mb"`
	MemorySysMB        uint64 `json:"memory_sys_mb"`
	NumGC              uint32 `json:"num_gc"`
}

type AssistStats struct {
	Running         bool   `json:"running"`
	State           string `json:"state"`
	Muted           bool   `json:"muted"`
	FeedSubscribers int    `json:"feed_subscribers"`
}

type InteractionStats struct {
	Status            string `json:"status"`
	ActiveSessions    int    `json:"active_sessions"`
	SessionsToday     int64  `json:"sessions_today"`
	InteractionsToday int64  `json:"interactions_today"`
}

type RequestStats struct {
	TotalRequests     uint64 `json:"total_requests"`
	ActiveConnections int64  `json:"active_connections"`
}

type Stats struct {
	Assist      AssistStats      `json:"assist"`
	Interaction InteractionStats `json:"interaction"`
	Requests    RequestStats     `json:"requests"`
	Runtime     RuntimeStats     `json:"runtime"`
}

type HealthResponse struct {
	Status        Status                     `json:"status"`
	Timestamp     time.Time                  `json:"timestamp"`
	Version       string                     `json:"version"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Stats         Stats                      `json:"stats"`
	Components    map[string]ComponentStatus `json:"components"`
}

type Handler struct {
	db         *gorm.DB
	redis      *redis.Client
	qdrant     *qdrant.Client
	perception perception.Service
	tts        speech.TextToSpeech
	stt        speech.SpeechToText
	loop       *assist.Loop
	display    *assist.DisplayState
	output     *speech.Output
	feed       *assist.Feed
	session    *interaction.Session
	sessions   *memory.SessionStore
	version    string
	startTime  time.Time

	totalRequests     uint64
	activeConnections int64
}

func NewHandler(
	db *gorm.DB,
	redis *redis.Client,
	qdrant *qdrant.Client,
	perceptionSvc perception.Service,
	tts speech.TextToSpeech,
	stt speech.SpeechToText,
	loop *assist.Loop,
	display *assist.DisplayState,
	output *speech.Output,
	feed *assist.Feed,
	session *interaction.Session,
	sessions *memory.SessionStore,
	version string,
) *Handler {
	return &Handler{
		db:         db,
		redis:      redis,
		qdrant:     qdrant,
		perception: perceptionSvc,
		tts:        tts,
		stt:        stt,
		loop:       loop,
		display:    display,
		output:     output,
		feed:       feed,
		session:    session,
		sessions:   sessions,
		version:    version,
		startTime:  time.Now(),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Liveness)
	e.GET("/health/ready", h.Readiness)
}

func (h *Handler) IncrementRequests() {
	atomic.AddUint64(&h.totalRequests, 1)
}

func (h *Handler) IncrementConnections() {
	atomic.AddInt64(&h.activeConnections, 1)
}

func (h *Handler) DecrementConnections() {
	atomic.AddInt64(&h.activeConnections, -1)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	components := make(map[string]ComponentStatus)
	var mu sync.Mutex
	var wg sync.WaitGroup

	checks := []struct {
		name  string
		check func(context.Context) ComponentStatus
	}{
		{"database", h.checkDatabase},
		{"redis", h.checkRedis},
		{"qdrant", h.checkQdrant},
		{"perception", h.checkPerception},
		{"tts", h.checkTTS},
		{"stt", h.checkSTT},
	}

	wg.Add(len(checks))
	for _, check := range checks {
		go func(name string, fn func(context.Context) ComponentStatus) {
			defer wg.Done()
			status := fn(ctx)
			mu.Lock()
			components[name] = status
			mu.Unlock()
		}(check.name, check.check)
	}
	wg.Wait()

	overallStatus := h.computeOverallStatus(components)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	resp := HealthResponse{
		Status:        overallStatus,
		Timestamp:     time.Now().UTC(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Stats: Stats{
			Assist:      h.assistStats(),
			Interaction: h.interactionStats(ctx),
			Requests: RequestStats{
				TotalRequests:     atomic.LoadUint64(&h.totalRequests),
				ActiveConnections: atomic.LoadInt64(&h.activeConnections),
			},
			Runtime: RuntimeStats{
				Goroutines:         runtime.NumGoroutine(),
				MemoryAllocMB:      memStats.Alloc / 1024 / 1024,
				MemoryTotalAllocMB: memStats.TotalAlloc / 1024 / 1024,
				MemorySysMB:        memStats.Sys / 1024 / 1024,
				NumGC:              memStats.NumGC,
			},
		},
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, resp)
}

func (h *Handler) assistStats() AssistStats {
	stats := AssistStats{}
	if h.loop != nil {
		stats.Running = h.loop.Running()
	}
	if h.display != nil {
		stats.State = string(h.display.State())
	}
	if h.output != nil {
		stats.Muted = h.output.Muted()
	}
	if h.feed != nil {
		stats.FeedSubscribers = h.feed.SubscriberCount()
	}
	return stats
}

func (h *Handler) interactionStats(ctx context.Context) InteractionStats {
	stats := InteractionStats{}
	if h.session != nil {
		stats.Status = string(h.session.Snapshot().Status)
	}
	if h.sessions != nil {
		if count, err := h.sessions.ActiveCount(ctx); err == nil {
			stats.ActiveSessions = count
		}
		if usage, err := h.sessions.TodayUsage(ctx); err == nil {
			stats.SessionsToday = usage.Sessions
			stats.InteractionsToday = usage.Interactions
		}
	}
	return stats
}

func (h *Handler) checkDatabase(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.db == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "database not configured",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "failed to get underlying db",
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "ping failed",
		}
	}

	stats := sqlDB.Stats()
	status := h.evaluateDBStats(stats)

	return ComponentStatus{
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) evaluateDBStats(stats sql.DBStats) Status {
	if stats.OpenConnections >= stats.MaxOpenConnections && stats.MaxOpenConnections > 0 {
		return StatusDegraded
	}
	return StatusHealthy
}

func (h *Handler) checkRedis(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.redis == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "redis not configured",
		}
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "ping failed",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

// checkQdrant reports a missing client as degraded. Transcript search
// still works through the lexical fallback without it.
func (h *Handler) checkQdrant(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.qdrant == nil {
		return ComponentStatus{
			Status:    StatusDegraded,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "qdrant not configured",
		}
	}

	_, err := h.qdrant.ListCollections(ctx)
	if err != nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "list collections failed",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) checkPerception(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.perception == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "perception not configured",
		}
	}

	if !h.perception.IsAvailable(ctx) {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "health probe failed",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) checkTTS(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.tts == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "tts not configured",
		}
	}

	if !h.tts.IsAvailable(ctx) {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "health probe failed",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) checkSTT(ctx context.Context) ComponentStatus {
	start := time.Now()
	if h.stt == nil {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "stt not configured",
		}
	}

	if !h.stt.IsAvailable(ctx) {
		return ComponentStatus{
			Status:    StatusUnhealthy,
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     "health probe failed",
		}
	}

	return ComponentStatus{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (h *Handler) computeOverallStatus(components map[string]ComponentStatus) Status {
	criticalComponents := []string{"database", "redis"}

	for _, name := range criticalComponents {
		if status, ok := components[name]; ok && status.Status == StatusUnhealthy {
			return StatusUnhealthy
		}
	}

	hasUnhealthy := false
	hasDegraded := false
	for _, status := range components {
		if status.Status == StatusUnhealthy {
			hasUnhealthy = true
		}
		if status.Status == StatusDegraded {
			hasDegraded = true
		}
	}

	if hasUnhealthy || hasDegraded {
		return StatusDegraded
	}

	return StatusHealthy
}
