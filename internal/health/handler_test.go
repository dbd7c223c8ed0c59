package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBareHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "test")
}

func TestHandler_RegisterRoutes(t *testing.T) {
	e := echo.New()
	newBareHandler().RegisterRoutes(e)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Path] = true
	}
	for _, path := range []string{"/health", "/health/ready"} {
		if !routePaths[path] {
			t.Errorf("expected route %s to be registered", path)
		}
	}
}

func TestHandler_Liveness(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := newBareHandler().Liveness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Liveness failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("expected ok, got %q", body["status"])
	}
}

func TestHandler_Readiness_CriticalDown(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	if err := newBareHandler().Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Readiness failed: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without database, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
	if resp.Components["database"].Status != StatusUnhealthy {
		t.Errorf("expected unhealthy database component, got %+v", resp.Components["database"])
	}
}

func TestHandler_Readiness_DegradedWithInfraUp(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	h := NewHandler(db, redisClient, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "test")
	h.IncrementRequests()
	h.IncrementRequests()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Readiness failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 when critical components are up, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if resp.Components["database"].Status != StatusHealthy {
		t.Errorf("expected healthy database, got %+v", resp.Components["database"])
	}
	if resp.Components["redis"].Status != StatusHealthy {
		t.Errorf("expected healthy redis, got %+v", resp.Components["redis"])
	}
	if resp.Components["qdrant"].Status != StatusDegraded {
		t.Errorf("expected degraded qdrant when unconfigured, got %+v", resp.Components["qdrant"])
	}
	if resp.Version != "test" {
		t.Errorf("expected version test, got %q", resp.Version)
	}
	if resp.Stats.Requests.TotalRequests != 2 {
		t.Errorf("expected 2 requests counted, got %d", resp.Stats.Requests.TotalRequests)
	}
	if resp.Stats.Runtime.Goroutines <= 0 {
		t.Error("expected goroutine count in runtime stats")
	}
}

func TestComputeOverallStatus(t *testing.T) {
	h := newBareHandler()

	tests := []struct {
		name       string
		components map[string]ComponentStatus
		want       Status
	}{
		{
			name: "all healthy",
			components: map[string]ComponentStatus{
				"database": {Status: StatusHealthy},
				"redis":    {Status: StatusHealthy},
				"tts":      {Status: StatusHealthy},
			},
			want: StatusHealthy,
		},
		{
			name: "critical component down",
			components: map[string]ComponentStatus{
				"database": {Status: StatusUnhealthy},
				"redis":    {Status: StatusHealthy},
			},
			want: StatusUnhealthy,
		},
		{
			name: "non-critical component down",
			components: map[string]ComponentStatus{
				"database": {Status: StatusHealthy},
				"redis":    {Status: StatusHealthy},
				"tts":      {Status: StatusUnhealthy},
			},
			want: StatusDegraded,
		},
		{
			name: "degraded component",
			components: map[string]ComponentStatus{
				"database": {Status: StatusHealthy},
				"redis":    {Status: StatusHealthy},
				"qdrant":   {Status: StatusDegraded},
			},
			want: StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.computeOverallStatus(tt.components); got != tt.want {
				t.Errorf("computeOverallStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHandler_ConnectionCounters(t *testing.T) {
	h := newBareHandler()

	h.IncrementConnections()
	h.IncrementConnections()
	h.DecrementConnections()

	if got := h.activeConnections; got != 1 {
		t.Errorf("expected 1 active connection, got %d", got)
	}
}
