package memory

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/eleven-am/aeye/internal/dto"
	"github.com/eleven-am/aeye/internal/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EmbeddingService interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

const (
	// unknownPersonName is the placeholder until resolve assigns a
	// real name.
	unknownPersonName = "Unknown"

	// defaultSummaryText stands in when a session ends without any
	// recognized speech.
	defaultSummaryText = "Brief interaction recorded. No speech detected."

	defaultSearchLimit = 10
	maxSearchLimit     = 50
	defaultUsageDays   = 7
	maxUsageDays       = 30
)

// Handler owns the interaction-memory surface: recording sessions,
// stored interactions, the people roster, and the files under the
// data directory.
type Handler struct {
	store      *Store
	sessions   *SessionStore
	embeddings EmbeddingService
	dataDir    string
	logger     *slog.Logger
}

func NewHandler(store *Store, sessions *SessionStore, embeddings EmbeddingService, dataDir string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:      store,
		sessions:   sessions,
		embeddings: embeddings,
		dataDir:    dataDir,
		logger:     logger.With("handler", "memory"),
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("/memory")
	group.POST("/interaction/start", h.StartRecording)
	group.POST("/interaction/stop", h.StopRecording)
	group.GET("/people", h.ListPeople)
	group.POST("/people/resolve", h.ResolvePerson)
	group.GET("/people/:id", h.GetPerson)
	group.DELETE("/people/:id", h.DeletePerson)
	group.GET("/people/:id/interactions", h.PersonInteractions)
	group.POST("/people/:id/rename", h.RenamePerson)
	group.GET("/people/:id/photo", h.GetPersonPhoto)
	group.GET("/interactions/search", h.SearchInteractions)
	group.GET("/interactions/:id", h.GetInteraction)
	group.GET("/interactions/:id/audio", h.GetInteractionAudio)
	group.GET("/usage", h.Usage)
}

func (h *Handler) audioFilePath(interactionID string) string {
	return filepath.Join(h.dataDir, "audio", interactionID+".wav")
}

func (h *Handler) photoFilePath(personID string) string {
	return filepath.Join(h.dataDir, "faces", personID+".jpg")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// decodeImageDataURL accepts either a bare base64 string or a full
// data URL with a media-type prefix.
func decodeImageDataURL(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx != -1 && strings.Contains(s[:idx], "base64") {
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}

func hashTranscript(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func summaryToDTO(s Summary) *dto.Summary {
	if s.IsZero() {
		return nil
	}
	return &dto.Summary{
		Summary:     s.Summary,
		KeyPoints:   s.KeyPoints,
		ActionItems: s.ActionItems,
		Entities:    s.Entities,
	}
}

func personToResponse(p *Person, interactionCount int64) dto.PersonResponse {
	return dto.PersonResponse{
		ID:               p.ID,
		Name:             p.Name,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		LastSeenAt:       p.LastSeenAt.Format(time.RFC3339),
		HasFace:          p.HasFace(),
		Notes:            p.Notes,
		InteractionCount: interactionCount,
	}
}

func interactionToResponse(i *Interaction, personName string) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:              i.ID,
		PersonID:        i.PersonID,
		PersonName:      personName,
		StartedAt:       i.StartedAt.Format(time.RFC3339),
		EndedAt:         i.EndedAt.Format(time.RFC3339),
		DurationSeconds: i.DurationSeconds,
		Transcript:      i.Transcript,
		Summary:         summaryToDTO(i.Summary),
		AudioSaved:      i.AudioSaved,
	}
}

// @Summary      Start a recording session
// @Description  Registers a new session and returns its id. The session expires on its own if never stopped.
// @Tags         memory
// @Produce      json
// @Success      200  {object}  dto.SessionStartResponse
// @Failure      503  {object}  shared.APIError
// @Router       /memory/interaction/start [post]
func (h *Handler) StartRecording(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := h.sessions.Create(ctx)
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		return shared.ServiceUnavailable("session_store_unavailable", "session store unavailable")
	}

	if err := h.sessions.IncrementSessions(ctx); err != nil {
		h.logger.Warn("failed to count session", "error", err)
	}

	return c.JSON(http.StatusOK, dto.SessionStartResponse{
		SessionID: sess.ID,
		StartedAt: sess.StartedAt.Format(time.RFC3339),
	})
}

// @Summary      Stop a recording session
// @Description  Finalizes a session into a stored interaction. Multipart form with fields session_id, save_audio, transcript, face_image and an optional audio file part.
// @Tags         memory
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id  formData  string  true   "Session id from start"
// @Param        save_audio  formData  boolean false  "Keep the audio recording"
// @Param        transcript  formData  string  false  "Live transcript of the session"
// @Param        face_image  formData  string  false  "Base64 face snapshot"
// @Param        audio       formData  file    false  "WAV recording"
// @Success      200  {object}  dto.InteractionResultResponse
// @Failure      400  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /memory/interaction/stop [post]
func (h *Handler) StopRecording(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := strings.TrimSpace(c.FormValue("session_id"))
	if sessionID == "" {
		return shared.BadRequest("missing_session_id", "session_id is required")
	}

	sess, err := h.sessions.Pop(ctx, sessionID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("session_not_found", "no active session with that id")
	}
	if err != nil {
		h.logger.Error("failed to claim session", "error", err, "session_id", sessionID)
		return shared.ServiceUnavailable("session_store_unavailable", "session store unavailable")
	}

	saveAudio, _ := strconv.ParseBool(c.FormValue("save_audio"))
	transcript := strings.TrimSpace(c.FormValue("transcript"))
	faceImage := c.FormValue("face_image")

	var audio []byte
	if fh, err := c.FormFile("audio"); err == nil {
		audio, err = readFormFile(fh)
		if err != nil {
			return shared.BadRequest("invalid_audio", "could not read audio upload")
		}
	}

	endedAt := time.Now().UTC()
	duration := endedAt.Sub(sess.StartedAt).Seconds()
	if duration < 0 {
		duration = 0
	}

	person, err := h.createPerson(ctx, faceImage, endedAt)
	if err != nil {
		h.logger.Error("failed to create person", "error", err)
		return shared.InternalError("person_create_failed", "could not record the interaction")
	}

	interaction := &Interaction{
		ID:              uuid.NewString(),
		PersonID:        person.ID,
		StartedAt:       sess.StartedAt,
		EndedAt:         endedAt,
		DurationSeconds: duration,
		Transcript:      transcript,
	}
	if transcript != "" {
		interaction.TranscriptHash = hashTranscript(transcript)
	} else {
		interaction.Summary = Summary{Summary: defaultSummaryText}
	}

	if saveAudio && len(audio) > 0 {
		path := h.audioFilePath(interaction.ID)
		if err := writeFile(path, audio); err != nil {
			h.logger.Warn("failed to save audio", "error", err, "interaction_id", interaction.ID)
		} else {
			interaction.AudioPath = path
			interaction.AudioSaved = true
		}
	}

	if err := h.store.CreateInteraction(ctx, interaction); err != nil {
		h.logger.Error("failed to store interaction", "error", err)
		return shared.InternalError("interaction_create_failed", "could not record the interaction")
	}

	if err := h.sessions.IncrementInteractions(ctx); err != nil {
		h.logger.Warn("failed to count interaction", "error", err)
	}
	if interaction.AudioSaved {
		if err := h.sessions.IncrementAudioSaved(ctx); err != nil {
			h.logger.Warn("failed to count saved audio", "error", err)
		}
	}

	h.indexTranscript(ctx, interaction)

	h.logger.Info("interaction recorded",
		"interaction_id", interaction.ID,
		"person_id", person.ID,
		"duration_seconds", interaction.DurationSeconds,
		"audio_saved", interaction.AudioSaved)

	return c.JSON(http.StatusOK, dto.InteractionResultResponse{
		InteractionID:   interaction.ID,
		PersonID:        person.ID,
		PersonName:      person.Name,
		IsNewPerson:     true,
		Summary:         summaryToDTO(interaction.Summary),
		Transcript:      interaction.Transcript,
		DurationSeconds: interaction.DurationSeconds,
	})
}

// createPerson records a fresh "Unknown" person for the interaction,
// keeping the face snapshot on disk when one was sent along.
func (h *Handler) createPerson(ctx context.Context, faceImage string, seenAt time.Time) (*Person, error) {
	person := &Person{
		ID:         uuid.NewString(),
		Name:       unknownPersonName,
		CreatedAt:  seenAt,
		LastSeenAt: seenAt,
	}

	if faceImage != "" {
		data, err := decodeImageDataURL(faceImage)
		if err != nil {
			h.logger.Warn("could not decode face image", "error", err)
		} else if err := writeFile(h.photoFilePath(person.ID), data); err != nil {
			h.logger.Warn("failed to save face photo", "error", err)
		} else {
			person.PhotoPath = h.photoFilePath(person.ID)
		}
	}

	if err := h.store.CreatePerson(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// indexTranscript is best effort. Search degrades to the lexical path
// when the vector side is missing or down.
func (h *Handler) indexTranscript(ctx context.Context, i *Interaction) {
	if h.embeddings == nil || i.Transcript == "" {
		return
	}

	embedding, err := h.embeddings.Generate(ctx, i.Transcript)
	if err != nil {
		h.logger.Warn("failed to embed transcript", "error", err, "interaction_id", i.ID)
		return
	}
	if err := h.store.UpsertEmbedding(ctx, i.ID, embedding); err != nil {
		h.logger.Warn("failed to index transcript", "error", err, "interaction_id", i.ID)
	}
}

// @Summary      List people
// @Description  Returns everyone on record, most recently seen first, with interaction counts.
// @Tags         memory
// @Produce      json
// @Success      200  {object}  dto.PeopleResponse
// @Failure      500  {object}  shared.APIError
// @Router       /memory/people [get]
func (h *Handler) ListPeople(c echo.Context) error {
	ctx := c.Request().Context()

	people, err := h.store.ListPeople(ctx)
	if err != nil {
		h.logger.Error("failed to list people", "error", err)
		return shared.InternalError("people_list_failed", "could not list people")
	}

	counts, err := h.store.InteractionCounts(ctx)
	if err != nil {
		h.logger.Warn("failed to count interactions", "error", err)
		counts = map[string]int64{}
	}

	resp := dto.PeopleResponse{People: make([]dto.PersonResponse, 0, len(people))}
	for _, p := range people {
		resp.People = append(resp.People, personToResponse(p, counts[p.ID]))
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Get a person
// @Tags         memory
// @Produce      json
// @Param        id   path      string  true  "Person id"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  shared.APIError
// @Router       /memory/people/{id} [get]
func (h *Handler) GetPerson(c echo.Context) error {
	ctx := c.Request().Context()

	person, err := h.store.GetPerson(ctx, c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	count, err := h.store.CountInteractions(ctx, person.ID)
	if err != nil {
		h.logger.Warn("failed to count interactions", "error", err, "person_id", person.ID)
	}
	return c.JSON(http.StatusOK, personToResponse(person, count))
}

// @Summary      List a person's interactions
// @Tags         memory
// @Produce      json
// @Param        id   path      string  true  "Person id"
// @Success      200  {object}  dto.PersonInteractionsResponse
// @Failure      404  {object}  shared.APIError
// @Router       /memory/people/{id}/interactions [get]
func (h *Handler) PersonInteractions(c echo.Context) error {
	ctx := c.Request().Context()

	person, err := h.store.GetPerson(ctx, c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	interactions, err := h.store.ListInteractions(ctx, person.ID)
	if err != nil {
		h.logger.Error("failed to list interactions", "error", err, "person_id", person.ID)
		return shared.InternalError("interaction_list_failed", "could not list interactions")
	}

	resp := dto.PersonInteractionsResponse{
		Person:       personToResponse(person, int64(len(interactions))),
		Interactions: make([]dto.InteractionResponse, 0, len(interactions)),
	}
	for _, i := range interactions {
		resp.Interactions = append(resp.Interactions, interactionToResponse(i, person.Name))
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      Rename a person
// @Tags         memory
// @Accept       json
// @Produce      json
// @Param        id      path      string                   true  "Person id"
// @Param        request body      dto.RenamePersonRequest  true  "New name"
// @Success      200     {object}  dto.PersonResponse
// @Failure      400     {object}  shared.APIError
// @Failure      404     {object}  shared.APIError
// @Router       /memory/people/{id}/rename [post]
func (h *Handler) RenamePerson(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RenamePersonRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return shared.BadRequest("missing_name", "name is required")
	}

	person, err := h.store.GetPerson(ctx, c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	person.Name = name
	if err := h.store.UpdatePerson(ctx, person); err != nil {
		h.logger.Error("failed to rename person", "error", err, "person_id", person.ID)
		return shared.InternalError("person_update_failed", "could not rename person")
	}

	count, _ := h.store.CountInteractions(ctx, person.ID)
	return c.JSON(http.StatusOK, personToResponse(person, count))
}

// @Summary      Resolve an unknown person
// @Description  Gives an unknown person a real name, or merges their interactions into an existing person and removes the duplicate.
// @Tags         memory
// @Accept       json
// @Produce      json
// @Param        request body      dto.ResolvePersonRequest  true  "Resolution"
// @Success      200     {object}  dto.PersonResponse
// @Failure      400     {object}  shared.APIError
// @Failure      404     {object}  shared.APIError
// @Router       /memory/people/resolve [post]
func (h *Handler) ResolvePerson(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResolvePersonRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.UnknownPersonID == "" {
		return shared.BadRequest("missing_person_id", "unknown_person_id is required")
	}

	unknown, err := h.store.GetPerson(ctx, req.UnknownPersonID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	if req.MergeWithPersonID != "" {
		return h.mergePeople(c, unknown, req.MergeWithPersonID)
	}

	name := strings.TrimSpace(req.NewName)
	if name == "" {
		return shared.BadRequest("missing_name", "new_name is required when not merging")
	}

	unknown.Name = name
	if err := h.store.UpdatePerson(ctx, unknown); err != nil {
		h.logger.Error("failed to resolve person", "error", err, "person_id", unknown.ID)
		return shared.InternalError("person_update_failed", "could not resolve person")
	}

	count, _ := h.store.CountInteractions(ctx, unknown.ID)
	return c.JSON(http.StatusOK, personToResponse(unknown, count))
}

func (h *Handler) mergePeople(c echo.Context, unknown *Person, targetID string) error {
	ctx := c.Request().Context()

	if targetID == unknown.ID {
		return shared.BadRequest("invalid_merge", "cannot merge a person into themselves")
	}

	target, err := h.store.GetPerson(ctx, targetID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("merge_target_not_found", "merge target not found")
	}
	if err != nil {
		h.logger.Error("failed to get merge target", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	if err := h.store.MoveInteractions(ctx, unknown.ID, target.ID); err != nil {
		h.logger.Error("failed to move interactions", "error", err)
		return shared.InternalError("merge_failed", "could not merge people")
	}

	changed := false
	if unknown.HasFace() && !target.HasFace() {
		photoPath := h.photoFilePath(target.ID)
		if err := os.Rename(unknown.PhotoPath, photoPath); err != nil {
			h.logger.Warn("failed to move face photo", "error", err)
		} else {
			target.PhotoPath = photoPath
			unknown.PhotoPath = ""
			changed = true
		}
	}
	if unknown.LastSeenAt.After(target.LastSeenAt) {
		target.LastSeenAt = unknown.LastSeenAt
		changed = true
	}
	if changed {
		if err := h.store.UpdatePerson(ctx, target); err != nil {
			h.logger.Warn("failed to update merge target", "error", err, "person_id", target.ID)
		}
	}

	if unknown.HasFace() {
		if err := os.Remove(unknown.PhotoPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("failed to remove face photo", "error", err)
		}
	}
	if err := h.store.DeletePerson(ctx, unknown.ID); err != nil {
		h.logger.Error("failed to delete merged person", "error", err, "person_id", unknown.ID)
		return shared.InternalError("merge_failed", "could not merge people")
	}

	h.logger.Info("people merged", "from", unknown.ID, "into", target.ID)

	count, _ := h.store.CountInteractions(ctx, target.ID)
	return c.JSON(http.StatusOK, personToResponse(target, count))
}

// @Summary      Delete a person
// @Description  Removes the person, their interactions, and any stored audio or photo files.
// @Tags         memory
// @Produce      json
// @Param        id   path      string  true  "Person id"
// @Success      200  {object}  dto.DeletePersonResponse
// @Failure      404  {object}  shared.APIError
// @Router       /memory/people/{id} [delete]
func (h *Handler) DeletePerson(c echo.Context) error {
	ctx := c.Request().Context()

	person, err := h.store.GetPerson(ctx, c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}

	interactions, err := h.store.ListInteractions(ctx, person.ID)
	if err != nil {
		h.logger.Error("failed to list interactions", "error", err, "person_id", person.ID)
		return shared.InternalError("person_delete_failed", "could not delete person")
	}

	if err := h.store.DeletePerson(ctx, person.ID); err != nil {
		h.logger.Error("failed to delete person", "error", err, "person_id", person.ID)
		return shared.InternalError("person_delete_failed", "could not delete person")
	}

	for _, i := range interactions {
		if i.AudioPath != "" {
			if err := os.Remove(i.AudioPath); err != nil && !os.IsNotExist(err) {
				h.logger.Warn("failed to remove audio file", "error", err, "interaction_id", i.ID)
			}
		}
		if err := h.store.DeleteEmbedding(ctx, i.ID); err != nil {
			h.logger.Debug("failed to remove embedding", "error", err, "interaction_id", i.ID)
		}
	}
	if person.HasFace() {
		if err := os.Remove(person.PhotoPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("failed to remove face photo", "error", err, "person_id", person.ID)
		}
	}

	h.logger.Info("person deleted", "person_id", person.ID, "interactions", len(interactions))

	return c.JSON(http.StatusOK, dto.DeletePersonResponse{
		Status:   "deleted",
		PersonID: person.ID,
	})
}

// @Summary      Get a person's photo
// @Tags         memory
// @Produce      image/jpeg
// @Param        id   path      string  true  "Person id"
// @Success      200  {file}    binary
// @Failure      404  {object}  shared.APIError
// @Router       /memory/people/{id}/photo [get]
func (h *Handler) GetPersonPhoto(c echo.Context) error {
	person, err := h.store.GetPerson(c.Request().Context(), c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("person_not_found", "person not found")
	}
	if err != nil {
		h.logger.Error("failed to get person", "error", err)
		return shared.InternalError("person_get_failed", "could not load person")
	}
	if !person.HasFace() {
		return shared.NotFound("photo_not_found", "no photo on record")
	}
	return c.File(person.PhotoPath)
}

// @Summary      Search interactions
// @Description  Searches transcripts by meaning when embeddings are available, falling back to plain text matching.
// @Tags         memory
// @Produce      json
// @Param        q      query     string  true   "Search query"
// @Param        limit  query     int     false  "Max results (default 10)"
// @Success      200    {object}  dto.InteractionSearchResponse
// @Failure      400    {object}  shared.APIError
// @Router       /memory/interactions/search [get]
func (h *Handler) SearchInteractions(c echo.Context) error {
	ctx := c.Request().Context()

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return shared.BadRequest("missing_query", "q is required")
	}

	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results := h.searchByMeaning(ctx, query, limit)
	if results == nil {
		var err error
		results, err = h.store.SearchTranscripts(ctx, query, limit)
		if err != nil {
			h.logger.Error("failed to search transcripts", "error", err)
			return shared.InternalError("search_failed", "could not search interactions")
		}
	}

	names := h.personNames(ctx)
	resp := dto.InteractionSearchResponse{
		Query:   query,
		Results: make([]dto.InteractionResponse, 0, len(results)),
	}
	for _, i := range results {
		resp.Results = append(resp.Results, interactionToResponse(i, names[i.PersonID]))
	}
	return c.JSON(http.StatusOK, resp)
}

// searchByMeaning returns nil when the vector path cannot serve the
// query, which sends the caller down the lexical fallback.
func (h *Handler) searchByMeaning(ctx context.Context, query string, limit int) []*Interaction {
	if h.embeddings == nil {
		return nil
	}

	embedding, err := h.embeddings.Generate(ctx, query)
	if err != nil {
		h.logger.Debug("failed to embed query", "error", err)
		return nil
	}
	results, err := h.store.SearchByEmbedding(ctx, embedding, limit)
	if err != nil {
		h.logger.Debug("vector search failed", "error", err)
		return nil
	}
	return results
}

func (h *Handler) personNames(ctx context.Context) map[string]string {
	people, err := h.store.ListPeople(ctx)
	if err != nil {
		h.logger.Warn("failed to load person names", "error", err)
		return map[string]string{}
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}
	return names
}

// @Summary      Get an interaction
// @Tags         memory
// @Produce      json
// @Param        id   path      string  true  "Interaction id"
// @Success      200  {object}  dto.InteractionResponse
// @Failure      404  {object}  shared.APIError
// @Router       /memory/interactions/{id} [get]
func (h *Handler) GetInteraction(c echo.Context) error {
	ctx := c.Request().Context()

	interaction, err := h.store.GetInteraction(ctx, c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("interaction_not_found", "interaction not found")
	}
	if err != nil {
		h.logger.Error("failed to get interaction", "error", err)
		return shared.InternalError("interaction_get_failed", "could not load interaction")
	}

	name := ""
	if person, err := h.store.GetPerson(ctx, interaction.PersonID); err == nil {
		name = person.Name
	}
	return c.JSON(http.StatusOK, interactionToResponse(interaction, name))
}

// @Summary      Get an interaction's audio
// @Tags         memory
// @Produce      audio/wav
// @Param        id   path      string  true  "Interaction id"
// @Success      200  {file}    binary
// @Failure      404  {object}  shared.APIError
// @Router       /memory/interactions/{id}/audio [get]
func (h *Handler) GetInteractionAudio(c echo.Context) error {
	interaction, err := h.store.GetInteraction(c.Request().Context(), c.Param("id"))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("interaction_not_found", "interaction not found")
	}
	if err != nil {
		h.logger.Error("failed to get interaction", "error", err)
		return shared.InternalError("interaction_get_failed", "could not load interaction")
	}
	if !interaction.AudioSaved || interaction.AudioPath == "" {
		return shared.NotFound("audio_not_found", "no audio on record")
	}
	return c.File(interaction.AudioPath)
}

// @Summary      Usage metrics
// @Description  Per-day counters for sessions, stored interactions, and saved audio.
// @Tags         memory
// @Produce      json
// @Param        days  query     int  false  "Days to include (default 7, max 30)"
// @Success      200   {object}  dto.UsageResponse
// @Failure      500   {object}  shared.APIError
// @Router       /memory/usage [get]
func (h *Handler) Usage(c echo.Context) error {
	days := defaultUsageDays
	if raw := c.QueryParam("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}
	if days > maxUsageDays {
		days = maxUsageDays
	}

	stats, err := h.sessions.GetUsage(c.Request().Context(), days)
	if err != nil {
		h.logger.Error("failed to load usage", "error", err)
		return shared.InternalError("usage_failed", "could not load usage metrics")
	}

	resp := dto.UsageResponse{Days: days, Usage: make([]dto.UsageStatsResponse, 0, len(stats))}
	for _, s := range stats {
		resp.Usage = append(resp.Usage, dto.UsageStatsResponse{
			Date:         s.Date,
			Sessions:     s.Sessions,
			Interactions: s.Interactions,
			AudioSaved:   s.AudioSaved,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
