package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"minishort/internal/domain"
	"minishort/internal/service"
	"minishort/pkg/logger"
	"minishort/pkg/validator"

	"github.com/go-chi/chi/v5"
)

// EntryService interface defines the service methods needed by the handler
// Using an interface instead of concrete type allows for easy mocking in tests
type EntryService interface {
	CreateEntry(ctx context.Context, rawURL string) (*service.CreateResult, error)
	ResolveEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context) ([]*domain.Entry, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	entryService EntryService
	logger       *logger.Logger
	now          func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(entryService EntryService, log *logger.Logger) *Handler {
	return &Handler{
		entryService: entryService,
		logger:       log,
		now:          time.Now,
	}
}

// AddURLRequest is the body of POST /api/addURL.
// Unknown fields are ignored.
type AddURLRequest struct {
	URL string `json:"url"`
}

// AddURL handles POST /api/addURL
func (h *Handler) AddURL(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithContext(r.Context())

	var req AddURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	result, err := h.entryService.CreateEntry(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, validator.ErrEmptyURL):
			respondText(w, http.StatusBadRequest, validator.ErrEmptyURL.Error())
		case errors.Is(err, validator.ErrInvalidURL):
			respondText(w, http.StatusBadRequest, validator.ErrInvalidURL.Error())
		case errors.Is(err, service.ErrIDGeneration):
			log.Error("Failed to generate short ID", "error", err)
			respondText(w, http.StatusInternalServerError, service.ErrIDGeneration.Error())
		default:
			log.Error("Failed to create entry", "error", err)
			respondText(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if !result.Created {
		log.Debug("Duplicate submission", "short_id", result.Entry.ID, "url", result.Entry.URL)
		respondJSON(w, http.StatusOK, result.Entry)
		return
	}

	log.Info("Entry created", "short_id", result.Entry.ID, "url", result.Entry.URL)
	respondJSON(w, http.StatusCreated, result.Entry)
}

// GetURLs handles GET /api/getURLs
func (h *Handler) GetURLs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryService.ListEntries(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to list entries", "error", err)
		respondText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// RedirectEntry handles GET /{id}
func (h *Handler) RedirectEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := h.logger.WithContext(r.Context())

	log.Info(fmt.Sprintf("URL: %s %s", h.now().UTC().Format(time.RFC3339Nano), id), "short_id", id)

	entry, err := h.entryService.ResolveEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondEmpty(w, http.StatusNotFound)
			return
		}
		log.Error("Failed to resolve entry", "short_id", id, "error", err)
		respondText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info(fmt.Sprintf("%s - %s", id, entry.URL), "short_id", id, "url", entry.URL)

	// Temporary redirect (302), with no body.
	// http.Redirect would write a small HTML body for GET requests.
	w.Header().Set("Location", entry.URL)
	respondEmpty(w, http.StatusFound)
}

// HealthCheck handles GET /api/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   h.now().Format(time.RFC3339),
	})
}
