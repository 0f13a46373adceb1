package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"go-file-manager/internal/model"
	"go-file-manager/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, os.ErrPermission) {
		status = http.StatusForbidden
		body.Code = "PERMISSION_DENIED"
		body.Message = "Permission denied on the filesystem"
		body.Details = err.Error()
	} else if errors.Is(err, os.ErrNotExist) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Path not found"
		body.Details = err.Error()
	} else if errors.Is(err, os.ErrExist) {
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Path already exists"
		body.Details = err.Error()
	} else {
		// Log unclassified errors so they are visible in the daemon logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
