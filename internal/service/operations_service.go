package service

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-file-manager/internal/clipboard"
	"go-file-manager/internal/event"
	"go-file-manager/internal/fsops"
	"go-file-manager/internal/history"
	"go-file-manager/internal/model"
	"go-file-manager/internal/storage"
	"go-file-manager/internal/util"
	"go-file-manager/pkg/apierror"
)

// OperationsService orchestrates the mutation engine: it resolves client
// paths, executes operations, pushes each successful record into the undo
// log, and publishes a matching event.
type OperationsService struct {
	store  *storage.Storage
	engine *fsops.Engine
	undo   *history.UndoLog
	board  *clipboard.Clipboard
	bus    event.Bus
}

func NewOperationsService(store *storage.Storage, engine *fsops.Engine, undo *history.UndoLog, board *clipboard.Clipboard, bus event.Bus) *OperationsService {
	return &OperationsService{store: store, engine: engine, undo: undo, board: board, bus: bus}
}

func (s *OperationsService) Rename(_ context.Context, clientPath string, newName string) (model.OperationData, error) {
	if strings.TrimSpace(clientPath) == "" {
		return model.OperationData{}, apierror.New("BAD_REQUEST", "path is required", "path", http.StatusBadRequest)
	}

	safeName, err := util.SanitizeName(newName)
	if err != nil {
		return model.OperationData{}, err
	}

	resolved, err := s.resolveExisting(clientPath)
	if err != nil {
		return model.OperationData{}, err
	}

	record, err := s.engine.Rename(resolved, safeName)
	if err != nil {
		return model.OperationData{}, err
	}

	s.commit(record, event.TypeFileRenamed)
	return s.operationData(record), nil
}

func (s *OperationsService) Move(_ context.Context, sources []string, destination string) (model.TransferResponse, error) {
	return s.transfer(sources, destination, false)
}

func (s *OperationsService) Copy(_ context.Context, sources []string, destination string) (model.TransferResponse, error) {
	return s.transfer(sources, destination, true)
}

func (s *OperationsService) transfer(sources []string, destination string, duplicate bool) (model.TransferResponse, error) {
	if len(sources) == 0 {
		return model.TransferResponse{}, apierror.New("BAD_REQUEST", "sources are required", "sources", http.StatusBadRequest)
	}

	resolvedDest, err := s.prepareDestination(destination)
	if err != nil {
		return model.TransferResponse{}, err
	}

	result := model.TransferResponse{Completed: []model.PathPair{}, Failed: []model.OperationFailure{}}

	for _, source := range sources {
		source = normalizeAPIPath(source)

		resolvedSource, err := s.resolveExisting(source)
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: source, Reason: err.Error()})
			continue
		}

		if reason := transferGuard(resolvedSource, resolvedDest, s.store.RootAbs()); reason != "" {
			result.Failed = append(result.Failed, model.OperationFailure{Path: source, Reason: reason})
			continue
		}

		var record fsops.Record
		if duplicate {
			record, err = s.engine.Copy(resolvedSource, resolvedDest)
		} else {
			record, err = s.engine.Move(resolvedSource, resolvedDest)
		}
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: source, Reason: err.Error()})
			continue
		}

		if duplicate {
			s.commit(record, event.TypeFileCopied)
		} else {
			s.commit(record, event.TypeFileMoved)
		}
		result.Completed = append(result.Completed, model.PathPair{From: source, To: s.clientPath(record.To)})
	}

	return result, nil
}

func (s *OperationsService) Delete(_ context.Context, paths []string) (model.DeleteResponse, error) {
	if len(paths) == 0 {
		return model.DeleteResponse{}, apierror.New("BAD_REQUEST", "paths are required", "paths", http.StatusBadRequest)
	}

	result := model.DeleteResponse{Deleted: []string{}, Failed: []model.OperationFailure{}}

	for _, clientPath := range paths {
		clientPath = normalizeAPIPath(clientPath)
		if clientPath == "/" {
			result.Failed = append(result.Failed, model.OperationFailure{Path: clientPath, Reason: "root path cannot be deleted"})
			continue
		}

		resolved, err := s.resolveExisting(clientPath)
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: clientPath, Reason: err.Error()})
			continue
		}

		record, err := s.engine.DeleteToTrash(resolved)
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: clientPath, Reason: err.Error()})
			continue
		}

		s.commit(record, event.TypeFileDeleted)
		result.Deleted = append(result.Deleted, clientPath)
	}

	return result, nil
}

func (s *OperationsService) Mkdir(_ context.Context, clientPath string, name string) (model.OperationData, error) {
	return s.create(clientPath, name, true)
}

func (s *OperationsService) Touch(_ context.Context, clientPath string, name string) (model.OperationData, error) {
	return s.create(clientPath, name, false)
}

func (s *OperationsService) create(clientPath string, name string, directory bool) (model.OperationData, error) {
	safeName, err := util.SanitizeName(name)
	if err != nil {
		return model.OperationData{}, err
	}

	resolved, err := s.store.Resolve(clientPath)
	if err != nil {
		return model.OperationData{}, err
	}

	var record fsops.Record
	if directory {
		record, err = s.engine.Mkdir(resolved, safeName)
	} else {
		record, err = s.engine.Touch(resolved, safeName)
	}
	if err != nil {
		return model.OperationData{}, err
	}

	if directory {
		s.commit(record, event.TypeDirCreated)
	} else {
		s.commit(record, event.TypeFileCreated)
	}
	return s.operationData(record), nil
}

// Undo pops the most recent record and applies its inverse. The pop is
// one-shot: a failed inverse does not re-insert the record, and the
// filesystem stays in whatever state the partial inverse produced.
func (s *OperationsService) Undo(_ context.Context) (model.OperationData, error) {
	record, ok := s.undo.PopMostRecent()
	if !ok {
		return model.OperationData{}, apierror.New("NOT_FOUND", "nothing to undo", "", http.StatusNotFound)
	}

	if err := s.engine.Undo(record); err != nil {
		slog.Warn("undo failed", "kind", record.Kind, "from", record.From, "to", record.To, "error", err)
		return model.OperationData{}, err
	}

	slog.Info("operation undone", "kind", record.Kind, "from", record.From, "to", record.To)
	s.publish(event.TypeOpUndone, s.operationData(record))
	return s.operationData(record), nil
}

func (s *OperationsService) SetClipboard(_ context.Context, paths []string, mode string) (model.ClipboardData, error) {
	parsedMode, err := parseClipboardMode(mode)
	if err != nil {
		return model.ClipboardData{}, err
	}

	if len(paths) == 0 {
		return model.ClipboardData{}, apierror.New("BAD_REQUEST", "paths are required", "paths", http.StatusBadRequest)
	}

	normalized := make([]string, 0, len(paths))
	for _, clientPath := range paths {
		clientPath = normalizeAPIPath(clientPath)
		if _, err := s.resolveExisting(clientPath); err != nil {
			return model.ClipboardData{}, err
		}
		normalized = append(normalized, clientPath)
	}

	s.board.Set(normalized, parsedMode)
	return s.clipboardData(), nil
}

func (s *OperationsService) ClearClipboard(_ context.Context) model.ClipboardData {
	s.board.Clear()
	return s.clipboardData()
}

func (s *OperationsService) ClipboardState(_ context.Context) model.ClipboardData {
	return s.clipboardData()
}

// Paste executes the pending clipboard intent into destination. Every pasted
// item is an independently undoable operation. A cut clipboard clears itself
// only when every item pasted cleanly; a copy clipboard persists for
// repeatable pastes.
func (s *OperationsService) Paste(_ context.Context, destination string) (model.PasteResponse, error) {
	if !s.board.HasItems() {
		return model.PasteResponse{}, apierror.New("CONFLICT", "clipboard is empty", "", http.StatusConflict)
	}

	mode := s.board.Mode()
	items := s.board.Items()

	resolvedDest, err := s.prepareDestination(destination)
	if err != nil {
		return model.PasteResponse{}, err
	}

	result := model.PasteResponse{Mode: string(mode), Pasted: []model.PathPair{}, Failed: []model.OperationFailure{}}
	targets := make([]clipboard.PasteTarget, 0, len(items))

	for _, item := range items {
		resolvedSource, err := s.resolveExisting(item)
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: item, Reason: err.Error()})
			continue
		}

		if reason := transferGuard(resolvedSource, resolvedDest, s.store.RootAbs()); reason != "" {
			result.Failed = append(result.Failed, model.OperationFailure{Path: item, Reason: reason})
			continue
		}

		var record fsops.Record
		if mode == clipboard.ModeCut {
			record, err = s.engine.Move(resolvedSource, resolvedDest)
		} else {
			record, err = s.engine.Copy(resolvedSource, resolvedDest)
		}
		if err != nil {
			result.Failed = append(result.Failed, model.OperationFailure{Path: item, Reason: err.Error()})
			continue
		}

		if mode == clipboard.ModeCut {
			s.commit(record, event.TypeFileMoved)
		} else {
			s.commit(record, event.TypeFileCopied)
		}
		to := s.clientPath(record.To)
		result.Pasted = append(result.Pasted, model.PathPair{From: item, To: to})
		targets = append(targets, clipboard.PasteTarget{Source: item, Destination: to})
	}

	if mode == clipboard.ModeCut && len(result.Failed) == 0 {
		s.board.Clear()
		result.Cleared = true
	} else {
		s.board.RecordPaste(targets)
	}

	s.publish(event.TypeClipboardPasted, result)
	return result, nil
}

func (s *OperationsService) prepareDestination(destination string) (string, error) {
	destination = normalizeAPIPath(destination)
	resolved, err := s.store.Resolve(destination)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return "", err
	}

	return resolved, nil
}

func (s *OperationsService) resolveExisting(clientPath string) (string, error) {
	resolved, err := s.store.Resolve(clientPath)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", apierror.New("NOT_FOUND", "path not found", clientPath, http.StatusNotFound)
		}
		return "", err
	}

	return resolved, nil
}

// commit records a successful mutation: undo log first, then the event feed
// and the operation log line.
func (s *OperationsService) commit(record fsops.Record, eventType event.Type) {
	s.undo.Push(record)
	slog.Info("operation executed", "kind", record.Kind, "from", record.From, "to", record.To)
	s.publish(eventType, s.operationData(record))
}

func (s *OperationsService) publish(eventType event.Type, payload any) {
	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *OperationsService) operationData(record fsops.Record) model.OperationData {
	return model.OperationData{
		Kind: string(record.Kind),
		From: s.clientPath(record.From),
		To:   s.clientPath(record.To),
	}
}

// clientPath maps an absolute path back to its client form; paths outside
// the storage root (trash locations) stay absolute.
func (s *OperationsService) clientPath(abs string) string {
	if abs == "" {
		return ""
	}

	if rel, err := s.store.Relativize(abs); err == nil {
		return rel
	}
	return abs
}

func (s *OperationsService) clipboardData() model.ClipboardData {
	targets := s.board.LastPasteTargets()
	lastPaste := make([]model.PasteTarget, 0, len(targets))
	for _, target := range targets {
		lastPaste = append(lastPaste, model.PasteTarget{Source: target.Source, Destination: target.Destination})
	}

	return model.ClipboardData{
		Items:     s.board.Items(),
		Mode:      string(s.board.Mode()),
		HasItems:  s.board.HasItems(),
		LastPaste: lastPaste,
	}
}

func parseClipboardMode(raw string) (clipboard.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "copy":
		return clipboard.ModeCopy, nil
	case "cut":
		return clipboard.ModeCut, nil
	default:
		return "", apierror.New("BAD_REQUEST", "mode must be copy or cut", raw, http.StatusBadRequest)
	}
}

// transferGuard rejects transfers that would recurse into themselves or
// uproot the storage root.
func transferGuard(resolvedSource string, resolvedDest string, rootAbs string) string {
	if resolvedSource == rootAbs {
		return "root path cannot be moved or copied"
	}

	if resolvedDest == resolvedSource || strings.HasPrefix(resolvedDest+string(filepath.Separator), resolvedSource+string(filepath.Separator)) {
		return "destination is inside the source"
	}

	return ""
}

func normalizeAPIPath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "/"
	}

	cleaned := path.Clean("/" + strings.TrimPrefix(strings.ReplaceAll(trimmed, "\\", "/"), "/"))
	if cleaned == "." {
		return "/"
	}

	return cleaned
}
