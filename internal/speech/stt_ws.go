package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

const (
	sttEventPartial = "partial"
	sttEventFinal   = "final"
	sttEventError   = "error"
)

type STTConfig struct {
	// URL of the streaming recognizer, ws:// or wss://.
	URL        string
	Language   string
	SampleRate int
}

// WSRecognizer streams 16-bit LE PCM up a WebSocket and receives JSON
// transcript events down. One session per Start; the server closing
// the stream ends the session and fires OnEnd.
type WSRecognizer struct {
	cfg    STTConfig
	dialer *websocket.Dialer
	logger *slog.Logger

	mu      sync.Mutex
	writeMu sync.Mutex
	conn    *websocket.Conn
	started bool
}

func NewWSRecognizer(cfg STTConfig, logger *slog.Logger) *WSRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &WSRecognizer{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		logger: logger.With("component", "stt"),
	}
}

type sttEvent struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (r *WSRecognizer) Start(ctx context.Context, cb RecognizerCallbacks) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return fmt.Errorf("recognizer already started")
	}
	r.mu.Unlock()

	endpoint, err := r.sessionURL()
	if err != nil {
		return fmt.Errorf("parse stt url: %w", err)
	}

	conn, _, err := r.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("dial stt: %w", err)
	}

	r.mu.Lock()
	r.conn = conn
	r.started = true
	r.mu.Unlock()

	done := make(chan struct{})
	go r.pingLoop(conn, done)
	go r.readLoop(conn, done, cb)

	return nil
}

func (r *WSRecognizer) sessionURL() (string, error) {
	u, err := url.Parse(r.cfg.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if r.cfg.Language != "" {
		q.Set("language", r.cfg.Language)
	}
	q.Set("sample_rate", strconv.Itoa(r.cfg.SampleRate))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (r *WSRecognizer) readLoop(conn *websocket.Conn, done chan struct{}, cb RecognizerCallbacks) {
	var endErr error
	defer func() {
		conn.Close()
		r.mu.Lock()
		if r.conn == conn {
			r.conn = nil
			r.started = false
		}
		r.mu.Unlock()
		close(done)
		if cb.OnEnd != nil {
			cb.OnEnd(endErr)
		}
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				endErr = err
			}
			return
		}

		var event sttEvent
		if err := json.Unmarshal(message, &event); err != nil {
			r.logger.Error("failed to unmarshal stt event", "error", err)
			continue
		}

		switch event.Type {
		case sttEventPartial:
			if cb.OnTranscript != nil {
				cb.OnTranscript(TranscriptEvent{Text: event.Text, IsPartial: true})
			}
		case sttEventFinal:
			if cb.OnTranscript != nil {
				cb.OnTranscript(TranscriptEvent{Text: event.Text, IsPartial: false})
			}
		case sttEventError:
			r.logger.Warn("stt engine error", "error", event.Error)
		default:
			r.logger.Debug("ignoring stt event", "type", event.Type)
		}
	}
}

func (r *WSRecognizer) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (r *WSRecognizer) SendAudio(pcm []byte) error {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("recognizer not connected")
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.BinaryMessage, pcm)
}

func (r *WSRecognizer) Stop() error {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()
	if conn == nil {
		return nil
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return conn.Close()
}

func (r *WSRecognizer) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	endpoint, err := r.sessionURL()
	if err != nil {
		return false
	}
	conn, _, err := r.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return false
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	conn.Close()
	return true
}
