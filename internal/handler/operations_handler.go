package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/pkg/apierror"
)

type OperationsHandler struct {
	service *service.OperationsService
}

func NewOperationsHandler(service *service.OperationsService) *OperationsHandler {
	return &OperationsHandler{service: service}
}

func (h *OperationsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Path) == "" || strings.TrimSpace(payload.NewName) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "path and new_name are required", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Rename(r.Context(), payload.Path, payload.NewName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) Move(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Move(r.Context(), payload.Sources, payload.Destination)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) Copy(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Copy(r.Context(), payload.Sources, payload.Destination)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Delete(r.Context(), payload.Paths)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) Mkdir(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Mkdir(r.Context(), payload.Path, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result)
}

func (h *OperationsHandler) Touch(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Touch(r.Context(), payload.Path, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result)
}

func (h *OperationsHandler) Undo(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Undo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) GetClipboard(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.ClipboardState(r.Context()))
}

func (h *OperationsHandler) SetClipboard(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ClipboardRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.SetClipboard(r.Context(), payload.Paths, payload.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *OperationsHandler) ClearClipboard(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.ClearClipboard(r.Context()))
}

func (h *OperationsHandler) Paste(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PasteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	result, err := h.service.Paste(r.Context(), payload.Destination)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
