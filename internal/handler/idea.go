package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/ideadrop/api/internal/domain"
	"github.com/ideadrop/api/internal/service"
)

// IdeaHandler handles idea-related HTTP requests.
type IdeaHandler struct {
	ideas *service.IdeaService
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideas *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

// ideaRequest is the JSON body for create and update.
type ideaRequest struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	Tags        TagList `json:"tags"`
}

// HandleList returns all ideas, newest first.
// GET /api/ideas?_limit=N
// A non-numeric or non-positive _limit is silently ignored.
func (h *IdeaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("_limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ideas, err := h.ideas.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, "list ideas", err)
		return
	}

	writeJSON(w, http.StatusOK, toIdeaDTOs(ideas))
}

// HandleGet returns a single idea.
// GET /api/ideas/{id}
// A malformed ID is indistinguishable from a missing record: both are 404.
func (h *IdeaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Idea not found.")
		return
	}

	idea, err := h.ideas.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "get idea", err)
		return
	}

	writeJSON(w, http.StatusOK, toIdeaDTO(idea))
}

// HandleCreate creates an idea owned by the authenticated user.
// POST /api/ideas
func (h *IdeaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized.")
		return
	}

	var req ideaRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	idea := &domain.Idea{
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if err := h.ideas.Create(r.Context(), user.ID, idea); err != nil {
		writeDomainError(w, "create idea", err)
		return
	}

	writeJSON(w, http.StatusCreated, toIdeaDTO(idea))
}

// HandleUpdate replaces all mutable fields of an idea. Owner only.
// PUT /api/ideas/{id}
func (h *IdeaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized.")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Idea not found.")
		return
	}

	var req ideaRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	idea := &domain.Idea{
		ID:          id,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Tags:        req.Tags,
	}

	if err := h.ideas.Update(r.Context(), user.ID, idea); err != nil {
		writeDomainError(w, "update idea", err)
		return
	}

	writeJSON(w, http.StatusOK, toIdeaDTO(idea))
}

// HandleDelete removes an idea. Owner only.
// DELETE /api/ideas/{id}
func (h *IdeaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authorized.")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Idea not found.")
		return
	}

	if err := h.ideas.Delete(r.Context(), user.ID, id); err != nil {
		writeDomainError(w, "delete idea", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Idea deleted."})
}
