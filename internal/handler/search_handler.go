package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/pkg/apierror"
)

type SearchHandler struct {
	service *service.SearchService
}

func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Start(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Start(r.Context(), payload.Path, payload.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusAccepted, result)
}

func (h *SearchHandler) Poll(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "session id is required", "id", http.StatusBadRequest))
		return
	}

	result, err := h.service.Poll(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *SearchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "session id is required", "id", http.StatusBadRequest))
		return
	}

	if err := h.service.Cancel(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"cancelled": true})
}
