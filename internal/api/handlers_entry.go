package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/moodgarden/moodgarden/internal/api/respond"
	"github.com/moodgarden/moodgarden/internal/model"
	"github.com/moodgarden/moodgarden/internal/services"
)

// EntryHandler handles entry-related HTTP requests (thin transport layer).
type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler {
	return &EntryHandler{svc: svc}
}

type entryBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood"`
}

// CreateEntry handles POST /entries.
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	entry, err := h.svc.CreateEntry(r.Context(), services.CreateEntryRequest{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			respond.WriteBadRequest(w, err.Error())
		} else {
			respond.WriteInternalError(w, err.Error())
		}
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     entry.ID,
		"status": entry.Status,
	})
}

// ListEntries handles GET /entries.
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListEntries(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, entries)
}

// GetFlowerStatus handles GET /entries/{id}/flower-status.
func (h *EntryHandler) GetFlowerStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "Entry not found")
		} else {
			respond.WriteInternalError(w, err.Error())
		}
		return
	}
	respond.WriteJSON(w, http.StatusOK, entry)
}

// UpdateEntry handles PUT /entries/{id}.
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req entryBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	err := h.svc.UpdateEntry(r.Context(), id, services.UpdateEntryRequest{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "Entry not found")
		} else {
			respond.WriteInternalError(w, "Failed to update entry")
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Entry updated successfully",
	})
}

// DeleteEntry handles DELETE /entries/{id}.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "Entry not found")
		} else {
			respond.WriteInternalError(w, "Failed to delete entry")
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Entry deleted successfully",
	})
}
