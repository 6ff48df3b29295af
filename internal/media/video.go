package media

import (
	"path/filepath"
	"strings"
)

// VideoExtensions lists the containers the pipeline accepts as lectures.
var VideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

// IsVideoFile checks if the file has a supported video extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range VideoExtensions {
		if ext == format {
			return true
		}
	}
	return false
}
