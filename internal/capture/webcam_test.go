package capture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWebcamSource_StartProbesCamera(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL + "/shot.jpg"}, nil)
	if source.Active() {
		t.Error("source should not be active before Start")
	}

	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !source.Active() {
		t.Error("source should be active after Start")
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 probe request, got %d", hits.Load())
	}
}

func TestWebcamSource_StartIdempotent(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL}, nil)
	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 probe for repeated Start, got %d", hits.Load())
	}
}

func TestWebcamSource_StartCameraUnreachable(t *testing.T) {
	source := NewWebcamSource(WebcamConfig{URL: "http://127.0.0.1:1/shot.jpg"}, nil)
	if err := source.Start(context.Background()); err == nil {
		t.Fatal("expected error for unreachable camera")
	}
	if source.Active() {
		t.Error("source must not be active after failed Start")
	}
}

func TestWebcamSource_StartCameraError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL}, nil)
	if err := source.Start(context.Background()); err == nil {
		t.Fatal("expected error for camera error status")
	}
}

func TestWebcamSource_Capture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\xff\xd8jpeg bytes"))
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL}, nil)
	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	frame, err := source.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len(frame.Data) == 0 {
		t.Error("expected frame data")
	}
	if frame.Timestamp.IsZero() {
		t.Error("expected a capture timestamp")
	}
	if !strings.HasPrefix(frame.DataURL(), "data:image/jpeg;base64,") {
		t.Errorf("unexpected data URL prefix: %s", frame.DataURL()[:30])
	}
}

func TestWebcamSource_CaptureRequiresActive(t *testing.T) {
	source := NewWebcamSource(WebcamConfig{URL: "http://127.0.0.1:1"}, nil)
	if _, err := source.Capture(context.Background()); err == nil {
		t.Error("expected error capturing from inactive source")
	}
}

func TestWebcamSource_CaptureEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL}, nil)
	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := source.Capture(context.Background()); err == nil {
		t.Error("expected error for empty snapshot body")
	}
}

func TestWebcamSource_StopDeactivates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	source := NewWebcamSource(WebcamConfig{URL: server.URL}, nil)
	if err := source.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := source.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if source.Active() {
		t.Error("source should not be active after Stop")
	}
	if _, err := source.Capture(context.Background()); err == nil {
		t.Error("expected error capturing after Stop")
	}
}
