package handler

import (
	"net/http"

	"go-file-manager/internal/service"
)

type DirectoryHandler struct {
	service *service.DirectoryService
}

func NewDirectoryHandler(service *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// List serves GET /files?path=/some/dir; a missing path lists the root.
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
