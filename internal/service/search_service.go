package service

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-file-manager/internal/event"
	"go-file-manager/internal/model"
	"go-file-manager/internal/search"
	"go-file-manager/internal/storage"
	"go-file-manager/pkg/apierror"
)

// SearchService exposes the scan coordinator over a poll-based surface:
// Start launches a background session, Poll drains whatever it has produced
// since the last call, Cancel flags it and forgets it.
type SearchService struct {
	store *storage.Storage
	coord *search.Coordinator
	bus   event.Bus
}

func NewSearchService(store *storage.Storage, coord *search.Coordinator, bus event.Bus) *SearchService {
	return &SearchService{store: store, coord: coord, bus: bus}
}

func (s *SearchService) Start(_ context.Context, clientPath string, query string) (model.SearchStartData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.SearchStartData{}, apierror.New("BAD_REQUEST", "query is required", "query", http.StatusBadRequest)
	}

	clientPath = normalizeAPIPath(clientPath)
	resolved, err := s.store.Resolve(clientPath)
	if err != nil {
		return model.SearchStartData{}, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return model.SearchStartData{}, apierror.New("NOT_FOUND", "search root not found", clientPath, http.StatusNotFound)
	}
	if !info.IsDir() {
		return model.SearchStartData{}, apierror.New("BAD_REQUEST", "search root is not a directory", clientPath, http.StatusBadRequest)
	}

	session := s.coord.Start(resolved, query)
	slog.Info("search started", "session_id", session.ID, "path", clientPath, "query", query)

	data := model.SearchStartData{SessionID: session.ID, Path: clientPath, Query: query}
	s.publish(event.TypeSearchStarted, data)
	return data, nil
}

// Poll drains the session's buffered results without blocking and pairs them
// with a live counter snapshot. Counters come from the snapshot rather than
// the progress stream, so a slow poller still sees accurate totals.
func (s *SearchService) Poll(_ context.Context, sessionID string) (model.SearchPollData, error) {
	session, ok := s.coord.Get(sessionID)
	if !ok {
		return model.SearchPollData{}, apierror.New("NOT_FOUND", "search session not found", sessionID, http.StatusNotFound)
	}

	results := []string{}

drain:
	for {
		select {
		case result, open := <-session.Results():
			if !open {
				break drain
			}
			results = append(results, s.clientPath(result.Path))
		default:
			break drain
		}
	}

	// The progress stream feeds push consumers; a poller only needs it
	// emptied so the buffer cannot silently fill.
	for {
		select {
		case _, open := <-session.ProgressUpdates():
			if !open {
				return s.pollData(session, results), nil
			}
		default:
			return s.pollData(session, results), nil
		}
	}
}

func (s *SearchService) Cancel(_ context.Context, sessionID string) error {
	session, ok := s.coord.Get(sessionID)
	if !ok {
		return apierror.New("NOT_FOUND", "search session not found", sessionID, http.StatusNotFound)
	}

	session.Cancel()
	s.coord.Remove(sessionID)
	slog.Info("search cancelled", "session_id", sessionID)
	s.publish(event.TypeSearchCancelled, map[string]string{"session_id": sessionID})
	return nil
}

func (s *SearchService) pollData(session *search.Session, results []string) model.SearchPollData {
	snapshot := session.Snapshot()
	if snapshot.Done {
		// Every send happens before Done flips, so one more non-blocking
		// sweep picks up anything buffered between the first drain and the
		// snapshot.
	sweep:
		for {
			select {
			case result, open := <-session.Results():
				if !open {
					break sweep
				}
				results = append(results, s.clientPath(result.Path))
			default:
				break sweep
			}
		}
		s.coord.Remove(session.ID)
	}

	return model.SearchPollData{
		SessionID:    session.ID,
		Results:      results,
		ScannedFiles: snapshot.ScannedFiles,
		ScannedDirs:  snapshot.ScannedDirs,
		Done:         snapshot.Done,
	}
}

func (s *SearchService) clientPath(abs string) string {
	if rel, err := s.store.Relativize(abs); err == nil {
		return rel
	}
	return abs
}

func (s *SearchService) publish(eventType event.Type, payload any) {
	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
