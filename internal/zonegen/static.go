package zonegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StaticFiles returns the ".static" zone inputs under root, sorted by
// name. A missing root yields no files rather than an error.
func StaticFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("zonegen: scan %s: %w", root, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".static") {
			continue
		}
		files = append(files, filepath.Join(root, entry.Name()))
	}
	return files, nil
}
