package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-file-manager/internal/event"
	"go-file-manager/internal/model"
	"go-file-manager/internal/search"
	"go-file-manager/internal/storage"
	"go-file-manager/pkg/apierror"
)

func newSearchEnv(t *testing.T) (*SearchService, string) {
	t.Helper()

	root := t.TempDir()
	store, err := storage.New(root)
	require.NoError(t, err)

	svc := NewSearchService(store, search.NewCoordinator(search.DefaultBuffer), event.NewBus())
	return svc, store.RootAbs()
}

func pollUntilDone(t *testing.T, svc *SearchService, sessionID string) model.SearchPollData {
	t.Helper()

	ctx := context.Background()
	deadline := time.Now().Add(5 * time.Second)
	var results []string

	for time.Now().Before(deadline) {
		data, err := svc.Poll(ctx, sessionID)
		require.NoError(t, err)
		results = append(results, data.Results...)
		if data.Done {
			data.Results = results
			return data
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("search did not finish in time")
	return model.SearchPollData{}
}

func TestSearchStartAndPoll(t *testing.T) {
	svc, root := newSearchEnv(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs/deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs/report.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs/deep/REPORT.old"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), nil, 0o644))

	start, err := svc.Start(ctx, "/", "report")
	require.NoError(t, err)
	assert.NotEmpty(t, start.SessionID)
	assert.Equal(t, "/", start.Path)

	data := pollUntilDone(t, svc, start.SessionID)
	assert.ElementsMatch(t, []string{"/docs/report.txt", "/docs/deep/REPORT.old"}, data.Results)
	assert.Equal(t, uint64(3), data.ScannedFiles)
	assert.Equal(t, uint64(3), data.ScannedDirs)

	// A finished session is removed on the poll that observed completion.
	_, err = svc.Poll(ctx, start.SessionID)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestSearchValidation(t *testing.T) {
	svc, _ := newSearchEnv(t)
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		_, err := svc.Start(ctx, "/", "   ")
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := svc.Start(ctx, "/nope", "x")
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "NOT_FOUND", apiErr.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Poll(ctx, "no-such-session")
		require.Error(t, err)

		err = svc.Cancel(ctx, "no-such-session")
		require.Error(t, err)
	})
}

func TestSearchCancel(t *testing.T) {
	svc, root := newSearchEnv(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), nil, 0o644))

	start, err := svc.Start(ctx, "/", "file")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, start.SessionID))

	// Cancel forgets the session regardless of how far the scan got.
	_, err = svc.Poll(ctx, start.SessionID)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestSearchPollAfterCompletion(t *testing.T) {
	root := t.TempDir()
	store, err := storage.New(root)
	require.NoError(t, err)

	coord := search.NewCoordinator(search.DefaultBuffer)
	svc := NewSearchService(store, coord, event.NewBus())
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(store.RootAbs(), "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.RootAbs(), "docs/match-a.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.RootAbs(), "match-b.txt"), nil, 0o644))

	start, err := svc.Start(ctx, "/", "match")
	require.NoError(t, err)

	session, ok := coord.Get(start.SessionID)
	require.True(t, ok)

	deadline := time.Now().Add(5 * time.Second)
	for !session.Done() {
		require.True(t, time.Now().Before(deadline), "scan did not finish in time")
		time.Sleep(time.Millisecond)
	}

	// One poll against the finished session must drain everything buffered
	// and report completion without blocking.
	data, err := svc.Poll(ctx, start.SessionID)
	require.NoError(t, err)
	assert.True(t, data.Done)
	assert.ElementsMatch(t, []string{"/docs/match-a.txt", "/match-b.txt"}, data.Results)
	assert.Equal(t, uint64(2), data.ScannedFiles)
	assert.Equal(t, uint64(2), data.ScannedDirs)
}

func TestSearchSessionsAreIndependent(t *testing.T) {
	svc, root := newSearchEnv(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta.txt"), nil, 0o644))

	first, err := svc.Start(ctx, "/", "alpha")
	require.NoError(t, err)
	second, err := svc.Start(ctx, "/", "beta")
	require.NoError(t, err)

	firstData := pollUntilDone(t, svc, first.SessionID)
	secondData := pollUntilDone(t, svc, second.SessionID)

	assert.Equal(t, []string{"/alpha.txt"}, firstData.Results)
	assert.Equal(t, []string{"/beta.txt"}, secondData.Results)
}
