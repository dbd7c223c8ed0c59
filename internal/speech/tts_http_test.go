package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestHTTPSynthesizer_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/tts" {
			t.Errorf("expected /tts, got %s", r.URL.Path)
		}
		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Text != "hello" {
			t.Errorf("expected text 'hello', got %s", req.Text)
		}
		if req.Voice != "nova" {
			t.Errorf("expected voice 'nova', got %s", req.Voice)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	synth := NewHTTPSynthesizer(TTSConfig{URL: server.URL + "/tts"}, nil)

	var mu sync.Mutex
	doneCalls, errCalls := 0, 0
	cb := SynthCallbacks{
		OnDone: func() {
			mu.Lock()
			doneCalls++
			mu.Unlock()
		},
		OnError: func(err error) {
			mu.Lock()
			errCalls++
			mu.Unlock()
		},
	}

	if err := synth.Synthesize(context.Background(), Utterance{Text: "hello", Voice: "nova"}, cb); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if doneCalls != 1 {
		t.Errorf("expected 1 OnDone call, got %d", doneCalls)
	}
	if errCalls != 0 {
		t.Errorf("expected no OnError calls, got %d", errCalls)
	}
}

func TestHTTPSynthesizer_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	synth := NewHTTPSynthesizer(TTSConfig{URL: server.URL}, nil)

	var mu sync.Mutex
	doneCalls, errCalls := 0, 0
	cb := SynthCallbacks{
		OnDone:  func() { mu.Lock(); doneCalls++; mu.Unlock() },
		OnError: func(err error) { mu.Lock(); errCalls++; mu.Unlock() },
	}

	if err := synth.Synthesize(context.Background(), Utterance{Text: "x"}, cb); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if errCalls != 1 {
		t.Errorf("expected 1 OnError call, got %d", errCalls)
	}
	if doneCalls != 0 {
		t.Errorf("expected no OnDone calls, got %d", doneCalls)
	}
}

func TestHTTPSynthesizer_CancelAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	synth := NewHTTPSynthesizer(TTSConfig{URL: server.URL}, nil)

	cancel := make(chan struct{})
	result := make(chan struct{})
	var errCalled bool
	cb := SynthCallbacks{
		OnError: func(err error) { errCalled = true },
	}

	go func() {
		synth.Synthesize(context.Background(), Utterance{Text: "x", Cancel: cancel}, cb)
		close(result)
	}()

	time.Sleep(20 * time.Millisecond)
	close(cancel)

	select {
	case <-result:
	case <-time.After(2 * time.Second):
		t.Fatal("Synthesize did not abort on cancel")
	}
	if !errCalled {
		t.Error("expected OnError after cancellation")
	}
}

func TestHTTPSynthesizer_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health probe, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	synth := NewHTTPSynthesizer(TTSConfig{URL: server.URL + "/api/tts"}, nil)
	if !synth.IsAvailable(context.Background()) {
		t.Error("expected IsAvailable true")
	}

	down := NewHTTPSynthesizer(TTSConfig{URL: "http://127.0.0.1:1/api/tts"}, nil)
	if down.IsAvailable(context.Background()) {
		t.Error("expected IsAvailable false for unreachable daemon")
	}
}
