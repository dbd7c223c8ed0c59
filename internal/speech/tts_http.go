package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

type TTSConfig struct {
	URL     string
	Timeout time.Duration
}

// HTTPSynthesizer drives a speech daemon that plays audio on the
// device; the HTTP response returns once playback finishes, so
// response completion is utterance completion.
type HTTPSynthesizer struct {
	httpClient *http.Client
	url        string
	healthURL  string
	logger     *slog.Logger
}

func NewHTTPSynthesizer(cfg TTSConfig, logger *slog.Logger) *HTTPSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPSynthesizer{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		healthURL:  deriveHealthURL(cfg.URL),
		logger:     logger.With("component", "tts"),
	}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, utt Utterance, cb SynthCallbacks) error {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if utt.Cancel != nil {
		go func() {
			select {
			case <-utt.Cancel:
				cancel()
			case <-reqCtx.Done():
			}
		}()
	}

	body, err := json.Marshal(synthesizeRequest{Text: utt.Text, Voice: utt.Voice})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, "POST", s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if cb.OnError != nil {
			cb.OnError(fmt.Errorf("tts request: %w", err))
		}
		return nil
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		if cb.OnError != nil {
			cb.OnError(fmt.Errorf("tts returned status %d", resp.StatusCode))
		}
		return nil
	}

	if cb.OnDone != nil {
		cb.OnDone()
	}
	return nil
}

func (s *HTTPSynthesizer) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", s.healthURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func deriveHealthURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Path = "/health"
	u.RawQuery = ""
	return u.String()
}
