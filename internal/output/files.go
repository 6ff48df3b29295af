package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// WriteText replaces path with content, creating parent directories.
func WriteText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperr.Filesystem("create dir for "+filepath.Base(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return apperr.Filesystem("write "+filepath.Base(path), err)
	}
	return nil
}

// WriteJSON replaces path with the indented JSON encoding of v.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return WriteText(path, string(data)+"\n")
}

// WriteSegments writes pieces as <dir>/<name>_<i>.txt and removes numbered
// files left over from an earlier run that produced more pieces.
func WriteSegments(dir, name string, pieces []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperr.Filesystem("create split text dir", err)
	}
	if err := removeSegments(dir, name); err != nil {
		return nil, err
	}

	paths := make([]string, len(pieces))
	for i, p := range pieces {
		paths[i] = SegmentPath(dir, name, i)
		if err := os.WriteFile(paths[i], []byte(p), 0644); err != nil {
			return nil, apperr.Filesystem("write text segment", err)
		}
	}
	return paths, nil
}

// SegmentPath is the file name used for text segment i of name.
func SegmentPath(dir, name string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%d.txt", name, i))
}

func removeSegments(dir, name string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return apperr.Filesystem("list split text dir", err)
	}

	prefix := name + "_"
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, prefix) || !strings.HasSuffix(n, ".txt") {
			continue
		}
		idx := strings.TrimSuffix(strings.TrimPrefix(n, prefix), ".txt")
		if _, err := strconv.Atoi(idx); err != nil {
			continue
		}
		if err := os.Remove(filepath.Join(dir, n)); err != nil {
			return apperr.Filesystem("remove stale segment", err)
		}
	}
	return nil
}
