package marketplace

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
)

// PresignedUpload is a short-lived URL the owner PUTs a project file to.
type PresignedUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type FileStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (PresignedUpload, error)
}

func WithFileStore(files FileStore) Option {
	return func(c *core) { c.files = files }
}

// PresignUpload issues an upload URL under projects/<projectId>/. The caller
// records the returned key on the project with a sparse update of files.
func (m *LifecycleManager) PresignUpload(ctx context.Context, projectID uuid.UUID, principal Principal, fileName, contentType string) (PresignedUpload, error) {
	if m.files == nil {
		return PresignedUpload{}, errs.NewServiceUnavailableError("file storage", nil)
	}
	if _, err := m.ownedProject(ctx, projectID, principal, "Only the project owner can upload files"); err != nil {
		return PresignedUpload{}, err
	}

	name := sanitizeFileName(fileName)
	if name == "" {
		return PresignedUpload{}, errs.NewMissingRequiredFieldError("fileName")
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("projects/%s/%s-%s", projectID, uuid.New(), name)
	return m.files.PresignUpload(ctx, key, contentType)
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, name)
}
