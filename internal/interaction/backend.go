package interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eleven-am/aeye/internal/dto"
)

// Ticket identifies one backend recording session.
type Ticket struct {
	SessionID string
	StartedAt time.Time
}

type StopParams struct {
	SessionID string
	// Audio is the assembled WAV blob, nil when nothing was recorded.
	Audio      []byte
	FaceImage  string
	SaveAudio  bool
	Transcript string
}

// Backend turns finished recording sessions into stored interactions.
type Backend interface {
	StartSession(ctx context.Context) (*Ticket, error)
	StopSession(ctx context.Context, params StopParams) (*dto.InteractionResultResponse, error)
}

// HTTPBackend talks to the interaction-memory service over HTTP. The
// stop call is a multipart form so the audio blob travels as a file
// part next to the metadata fields.
type HTTPBackend struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewHTTPBackend(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPBackend {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPBackend{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("component", "interaction-backend"),
	}
}

func (b *HTTPBackend) StartSession(ctx context.Context) (*Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/api/memory/interaction/start", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var payload dto.SessionStartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339, payload.StartedAt)
	if err != nil {
		startedAt = time.Now().UTC()
	}
	return &Ticket{SessionID: payload.SessionID, StartedAt: startedAt}, nil
}

func (b *HTTPBackend) StopSession(ctx context.Context, params StopParams) (*dto.InteractionResultResponse, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("session_id", params.SessionID); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := form.WriteField("save_audio", strconv.FormatBool(params.SaveAudio)); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if params.Transcript != "" {
		if err := form.WriteField("transcript", params.Transcript); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if params.FaceImage != "" {
		if err := form.WriteField("face_image", params.FaceImage); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if len(params.Audio) > 0 {
		part, err := form.CreateFormFile("audio", "interaction.wav")
		if err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
		if _, err := part.Write(params.Audio); err != nil {
			return nil, fmt.Errorf("build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/api/memory/interaction/stop", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var payload dto.InteractionResultResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}
