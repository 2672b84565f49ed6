package storage

import (
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// objectName returns a collision-free object key under folder, keeping the
// extension implied by the content type or, failing that, the file name.
func objectName(folder, filename, contentType string) string {
	ext := ""
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
		if contentType == "image/jpeg" {
			ext = ".jpg"
		}
	}
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	return path.Join(strings.Trim(folder, "/"), uuid.NewString()+ext)
}
