package interaction

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPBackend_StartSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/memory/interaction/start" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"session_id": "sess-abc",
			"started_at": "2026-02-11T09:30:00Z",
		})
	}))
	defer server.Close()

	backend := NewHTTPBackend(server.URL, 5*time.Second, testLogger())
	ticket, err := backend.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if ticket.SessionID != "sess-abc" {
		t.Errorf("unexpected session id: %s", ticket.SessionID)
	}
	want := time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)
	if !ticket.StartedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, ticket.StartedAt)
	}
}

func TestHTTPBackend_StopSessionSendsMultipart(t *testing.T) {
	var gotForm map[string]string
	var gotAudio []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/memory/interaction/stop" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotForm = map[string]string{
			"session_id": r.FormValue("session_id"),
			"save_audio": r.FormValue("save_audio"),
			"transcript": r.FormValue("transcript"),
			"face_image": r.FormValue("face_image"),
		}
		if file, _, err := r.FormFile("audio"); err == nil {
			gotAudio, _ = io.ReadAll(file)
			file.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"interaction_id": "int-1",
			"person_id":      "per-1",
			"person_name":    "Unknown",
			"is_new_person":  true,
			"summary":        map[string]any{"summary": "Brief interaction recorded. No speech detected."},
		})
	}))
	defer server.Close()

	backend := NewHTTPBackend(server.URL, 5*time.Second, testLogger())
	result, err := backend.StopSession(context.Background(), StopParams{
		SessionID:  "sess-abc",
		Audio:      []byte("RIFFdata"),
		FaceImage:  "data:image/jpeg;base64,Zm9v",
		SaveAudio:  true,
		Transcript: "Hello there friend",
	})
	if err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}

	if gotForm["session_id"] != "sess-abc" || gotForm["save_audio"] != "true" {
		t.Errorf("unexpected form fields: %v", gotForm)
	}
	if gotForm["transcript"] != "Hello there friend" {
		t.Errorf("transcript not forwarded: %v", gotForm)
	}
	if gotForm["face_image"] == "" {
		t.Error("face image not forwarded")
	}
	if string(gotAudio) != "RIFFdata" {
		t.Errorf("audio blob not forwarded, got %q", gotAudio)
	}

	if result.InteractionID != "int-1" || result.Summary == nil {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestHTTPBackend_StopSessionOmitsEmptyParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if _, ok := r.MultipartForm.Value["face_image"]; ok {
			t.Error("empty face image should be omitted")
		}
		if _, _, err := r.FormFile("audio"); err == nil {
			t.Error("empty audio should be omitted")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"interaction_id": "int-1",
			"person_id":      "per-1",
			"person_name":    "Unknown",
			"is_new_person":  true,
		})
	}))
	defer server.Close()

	backend := NewHTTPBackend(server.URL, 5*time.Second, testLogger())
	if _, err := backend.StopSession(context.Background(), StopParams{SessionID: "sess-abc"}); err != nil {
		t.Fatalf("StopSession failed: %v", err)
	}
}

func TestHTTPBackend_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadRequest)
	}))
	defer server.Close()

	backend := NewHTTPBackend(server.URL, 5*time.Second, testLogger())
	if _, err := backend.StartSession(context.Background()); err == nil {
		t.Error("expected error from start")
	}
	if _, err := backend.StopSession(context.Background(), StopParams{SessionID: "x"}); err == nil {
		t.Error("expected error from stop")
	}
}
