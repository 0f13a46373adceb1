package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"go-file-manager/pkg/apierror"
)

// PathValidator rejects client paths that contain traversal segments or
// control characters and anchors the rest under a fixed absolute root.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &PathValidator{rootAbs: rootAbs}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

func (v *PathValidator) ResolvePath(clientPath string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(clientPath), `\`, "/")
	if normalized == "" || normalized == "/" {
		return v.rootAbs, nil
	}

	if strings.Contains(normalized, "\x00") || containsControlRunes(normalized) {
		return "", apierror.New("INVALID_PATH", "path contains invalid characters", clientPath, http.StatusBadRequest)
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", apierror.New("PATH_TRAVERSAL", "path traversal attempt detected", clientPath, http.StatusForbidden)
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	if cleanRel == "." {
		return v.rootAbs, nil
	}

	resolved, err := filepath.Abs(filepath.Join(v.rootAbs, cleanRel))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolved) {
		return "", apierror.New("PATH_TRAVERSAL", "resolved path is outside storage root", clientPath, http.StatusForbidden)
	}

	return resolved, nil
}

func containsControlRunes(value string) bool {
	for _, r := range value {
		if unicode.IsControl(r) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	return strings.HasPrefix(candidateAbs, rootAbs+string(filepath.Separator))
}
