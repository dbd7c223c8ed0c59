package interaction

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eleven-am/aeye/internal/dto"
	"github.com/eleven-am/aeye/internal/shared"
)

type Handler struct {
	session *Session
	logger  *slog.Logger
}

func NewHandler(session *Session, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		session: session,
		logger:  logger.With("handler", "interaction"),
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("/interaction")
	group.POST("/start", h.HandleStart)
	group.POST("/stop", h.HandleStop)
	group.POST("/cancel", h.HandleCancel)
	group.GET("/status", h.HandleStatus)
}

func (h *Handler) snapshot() dto.InteractionStatusResponse {
	snap := h.session.Snapshot()
	return dto.InteractionStatusResponse{
		Status:          string(snap.Status),
		SessionID:       snap.SessionID,
		Transcript:      snap.Transcript,
		DurationSeconds: snap.Duration.Seconds(),
		Listening:       snap.Listening,
	}
}

// HandleStart begins a recording session
// @Summary      Start recording
// @Description  Opens the microphone, starts live transcription, and registers a session. Only one recording may be active at a time.
// @Tags         interaction
// @Produce      json
// @Success      200 {object} dto.SessionStartResponse "Session id and start time"
// @Failure      409 {object} shared.APIError "A recording is already active"
// @Failure      503 {object} shared.APIError "Microphone or recognizer unavailable"
// @Router       /interaction/start [post]
func (h *Handler) HandleStart(c echo.Context) error {
	ticket, err := h.session.Start(c.Request().Context())
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return shared.Conflict("recording_active", "A recording session is already active")
		}
		h.logger.Error("failed to start recording", "error", err)
		return shared.ServiceUnavailable("recording_unavailable", "Could not start recording")
	}

	return c.JSON(http.StatusOK, dto.SessionStartResponse{
		SessionID: ticket.SessionID,
		StartedAt: ticket.StartedAt.UTC().Format(time.RFC3339),
	})
}

// HandleStop finalizes the recording session
// @Summary      Stop recording
// @Description  Stops transcription and capture, then submits the transcript and audio for storage. Returns the finalized interaction.
// @Tags         interaction
// @Accept       json
// @Produce      json
// @Param        request body dto.InteractionStopRequest false "Optional face image and audio retention flag"
// @Success      200 {object} dto.InteractionResultResponse "Finalized interaction"
// @Failure      409 {object} shared.APIError "No active recording"
// @Failure      500 {object} shared.APIError "Finalization failed"
// @Router       /interaction/stop [post]
func (h *Handler) HandleStop(c echo.Context) error {
	var req dto.InteractionStopRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}

	result, err := h.session.Stop(c.Request().Context(), req.FaceImage, req.SaveAudio)
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return shared.Conflict("no_active_recording", "No recording session is active")
		}
		h.logger.Error("failed to stop recording", "error", err)
		return shared.InternalError("interaction_failed", "Could not finalize the interaction")
	}

	return c.JSON(http.StatusOK, result)
}

// HandleCancel discards the recording session
// @Summary      Cancel recording
// @Description  Tears down the microphone and recognizer without storing anything. Always succeeds.
// @Tags         interaction
// @Produce      json
// @Success      200 {object} dto.InteractionStatusResponse "Session status"
// @Router       /interaction/cancel [post]
func (h *Handler) HandleCancel(c echo.Context) error {
	h.session.Cancel()
	return c.JSON(http.StatusOK, h.snapshot())
}

// HandleStatus reports the recording session status
// @Summary      Recording status
// @Description  Session phase plus the live transcript assembled from final and interim recognizer fragments.
// @Tags         interaction
// @Produce      json
// @Success      200 {object} dto.InteractionStatusResponse "Session status"
// @Router       /interaction/status [get]
func (h *Handler) HandleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}
