package assist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/dto"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/shared"
	"github.com/eleven-am/aeye/internal/speech"
	"github.com/labstack/echo/v4"
)

const noTextFallback = "No text detected."

type Handler struct {
	loop       *Loop
	display    *DisplayState
	output     *speech.Output
	perception perception.Service
	source     capture.Source
	feed       *Feed
	logger     *slog.Logger
}

func NewHandler(loop *Loop, display *DisplayState, output *speech.Output, svc perception.Service, source capture.Source, feed *Feed, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		loop:       loop,
		display:    display,
		output:     output,
		perception: svc,
		source:     source,
		feed:       feed,
		logger:     logger.With("handler", "assist"),
	}

	output.SetCallbacks(func(entry speech.LogEntry) {
		feed.Publish(Event{Type: EventSpeech, Payload: SpeechPayload{Entry: entry}})
	}, nil)

	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group, ws *echo.Group) {
	g := api.Group("/assist")
	g.POST("/start", h.HandleStart)
	g.POST("/stop", h.HandleStop)
	g.GET("/status", h.HandleStatus)
	g.POST("/mute", h.HandleMute)
	g.POST("/unmute", h.HandleUnmute)
	g.GET("/overlay", h.HandleOverlay)
	g.GET("/speechlog", h.HandleSpeechLog)
	g.POST("/describe", h.HandleDescribe)
	g.POST("/read", h.HandleRead)

	ws.GET("/assist", h.HandleFeed)
}

func (h *Handler) status() dto.AssistStatusResponse {
	_, latency := h.display.Overlay()
	return dto.AssistStatusResponse{
		Running:   h.loop.Running(),
		State:     string(h.display.State()),
		Muted:     h.output.Muted(),
		Speaking:  h.output.IsSpeaking(),
		LatencyMs: latency,
	}
}

// HandleStart starts the live assist loop
// @Summary      Start live assist
// @Description  Starts the continuous capture, narrate, speak cycle. Starting an already running loop is a no-op.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.AssistStatusResponse "Current assist status"
// @Failure      503 {object} shared.APIError "Camera unreachable"
// @Router       /assist/start [post]
func (h *Handler) HandleStart(c echo.Context) error {
	if err := h.loop.Start(c.Request().Context()); err != nil {
		h.logger.Error("failed to start live assist", "error", err)
		return shared.ServiceUnavailable("camera_unavailable", "Camera is not reachable")
	}
	return c.JSON(http.StatusOK, h.status())
}

// HandleStop stops the live assist loop
// @Summary      Stop live assist
// @Description  Stops the loop and halts any in-progress speech immediately.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.AssistStatusResponse "Current assist status"
// @Router       /assist/stop [post]
func (h *Handler) HandleStop(c echo.Context) error {
	h.loop.Stop()
	return c.JSON(http.StatusOK, h.status())
}

// HandleStatus reports the live assist status
// @Summary      Assist status
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.AssistStatusResponse "Current assist status"
// @Router       /assist/status [get]
func (h *Handler) HandleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status())
}

// HandleMute mutes speech output
// @Summary      Mute speech
// @Description  Silences future narration and halts the current utterance. The loop keeps running.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.AssistStatusResponse "Current assist status"
// @Router       /assist/mute [post]
func (h *Handler) HandleMute(c echo.Context) error {
	h.output.Mute()
	return c.JSON(http.StatusOK, h.status())
}

// HandleUnmute unmutes speech output
// @Summary      Unmute speech
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.AssistStatusResponse "Current assist status"
// @Router       /assist/unmute [post]
func (h *Handler) HandleUnmute(c echo.Context) error {
	h.output.Unmute()
	return c.JSON(http.StatusOK, h.status())
}

// HandleOverlay returns the current detection overlay
// @Summary      Detection overlay
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.OverlayResponse "Current detections and latency"
// @Router       /assist/overlay [get]
func (h *Handler) HandleOverlay(c echo.Context) error {
	detections, latency := h.display.Overlay()
	return c.JSON(http.StatusOK, dto.OverlayResponse{
		Detections: detections,
		LatencyMs:  latency,
	})
}

// HandleSpeechLog returns the rolling speech log
// @Summary      Speech log
// @Description  The most recent spoken utterances, newest last, bounded to 50 entries.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.SpeechLogResponse "Speech log entries"
// @Router       /assist/speechlog [get]
func (h *Handler) HandleSpeechLog(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.SpeechLogResponse{Entries: h.output.Log().Entries()})
}

// HandleDescribe speaks a detailed description of the current scene
// @Summary      Describe scene
// @Description  One-shot capture and detailed description, spoken aloud and returned. Usable while the loop is idle.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.DescribeResponse "Scene description"
// @Failure      503 {object} shared.APIError "Camera or perception unavailable"
// @Router       /assist/describe [post]
func (h *Handler) HandleDescribe(c echo.Context) error {
	ctx := c.Request().Context()

	frame, err := h.captureFrame(ctx)
	if err != nil {
		h.logger.Error("describe capture failed", "error", err)
		return shared.ServiceUnavailable("camera_unavailable", "Could not capture a frame")
	}

	result, err := h.perception.DescribeDetailed(ctx, frame.DataURL())
	if err != nil {
		h.logger.Error("describe failed", "error", err)
		return shared.ServiceUnavailable("perception_unavailable", "Scene description is unavailable right now")
	}

	h.output.Speak(result.Description)

	return c.JSON(http.StatusOK, dto.DescribeResponse{
		Description: result.Description,
		OCRText:     result.OCRText,
		Detections:  result.Detections,
		LatencyMs:   result.TimingMs,
	})
}

// HandleRead speaks any text visible in the current scene
// @Summary      Read text
// @Description  One-shot capture and OCR, spoken aloud and returned. Falls back to a fixed phrase when no text is found.
// @Tags         assist
// @Produce      json
// @Success      200 {object} dto.ReadResponse "Recognized text"
// @Failure      503 {object} shared.APIError "Camera unavailable"
// @Router       /assist/read [post]
func (h *Handler) HandleRead(c echo.Context) error {
	ctx := c.Request().Context()

	frame, err := h.captureFrame(ctx)
	if err != nil {
		h.logger.Error("read capture failed", "error", err)
		return shared.ServiceUnavailable("camera_unavailable", "Could not capture a frame")
	}

	text, err := h.perception.OCR(ctx, frame.DataURL())
	if err != nil {
		h.logger.Warn("ocr failed", "error", err)
		text = ""
	}
	if text == "" {
		text = noTextFallback
	}

	h.output.Speak(text)

	return c.JSON(http.StatusOK, dto.ReadResponse{Text: text})
}

func (h *Handler) captureFrame(ctx context.Context) (*capture.Frame, error) {
	if !h.source.Active() {
		if err := h.source.Start(ctx); err != nil {
			return nil, err
		}
	}
	return h.source.Capture(ctx)
}
