package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into outputDir, creating it if
// needed, and returns the written paths. Each file is written under a
// temporary name and renamed into place.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(files))

	for _, file := range files {
		target := filepath.Join(outputDir, file.Filename)
		tmp := target + ".tmp"

		if err := os.WriteFile(tmp, file.Content, filePerm); err != nil {
			return paths, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if err := os.Rename(tmp, target); err != nil {
			_ = os.Remove(tmp)
			return paths, fmt.Errorf("replacing file %s: %w", file.Filename, err)
		}

		paths = append(paths, target)
	}

	return paths, nil
}
