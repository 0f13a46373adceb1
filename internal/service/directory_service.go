package service

import (
	"context"
	"errors"
	"net/http"
	"path"
	"sort"
	"strings"

	"go-file-manager/internal/model"
	"go-file-manager/internal/storage"
	"go-file-manager/pkg/apierror"
)

// DirectoryService provides the read-side view of the storage tree.
type DirectoryService struct {
	store *storage.Storage
}

func NewDirectoryService(store *storage.Storage) *DirectoryService {
	return &DirectoryService{store: store}
}

// List returns the entries of one directory, directories first, each group
// sorted by name case-insensitively.
func (s *DirectoryService) List(_ context.Context, clientPath string) (model.DirectoryListData, error) {
	clientPath = normalizeAPIPath(clientPath)

	info, err := s.store.Stat(clientPath)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) {
			return model.DirectoryListData{}, apiErr
		}
		return model.DirectoryListData{}, apierror.New("NOT_FOUND", "directory not found", clientPath, http.StatusNotFound)
	}
	if !info.IsDir() {
		return model.DirectoryListData{}, apierror.New("BAD_REQUEST", "path is not a directory", clientPath, http.StatusBadRequest)
	}

	entries, err := s.store.ReadDir(clientPath)
	if err != nil {
		return model.DirectoryListData{}, err
	}

	items := make([]model.FileItem, 0, len(entries))
	for _, entry := range entries {
		entryInfo, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info; skip it.
			continue
		}

		item := model.FileItem{
			Name:        entry.Name(),
			Path:        path.Join(clientPath, entry.Name()),
			Type:        "file",
			Size:        entryInfo.Size(),
			ModifiedAt:  entryInfo.ModTime(),
			Permissions: entryInfo.Mode().Perm().String(),
		}
		if entry.IsDir() {
			item.Type = "directory"
			item.Size = 0
		} else {
			item.Extension = strings.TrimPrefix(path.Ext(entry.Name()), ".")
		}

		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type == "directory"
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	return model.DirectoryListData{Path: clientPath, Items: items}, nil
}
