package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateStoredFilename returns a collision-free name for an uploaded file
// while keeping the original extension.
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
