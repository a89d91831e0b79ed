// Package export writes captured item photos out of the session as JPEG
// files, so a photo can outlive the inventory it came from.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

// PhotoExporter writes item photos into a single directory.
type PhotoExporter struct {
	dir string
}

func NewPhotoExporter(dir string) (*PhotoExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &PhotoExporter{dir: dir}, nil
}

// Export writes the item's photo to "item_<id>_<slug>.jpg" and returns the
// full path. An existing file for the same item is overwritten.
func (e *PhotoExporter) Export(item domain.Item) (string, error) {
	if len(item.Photo) == 0 {
		return "", fmt.Errorf("item %d has no photo", item.ID)
	}

	filename := fmt.Sprintf("item_%d_%s.jpg", item.ID, slug(item.Name))
	path := filepath.Join(e.dir, filename)

	if err := os.WriteFile(path, item.Photo, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return path, nil
}

// slug reduces an item name to a safe filename fragment.
func slug(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "item"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
