package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go-file-manager/internal/model"
	"go-file-manager/internal/service"
	"go-file-manager/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Password) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "password is required", "password", http.StatusBadRequest))
		return
	}

	token, err := h.service.Login(payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, token)
}
