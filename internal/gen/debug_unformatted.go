package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes source that failed to format to a sidecar
// file, so the broken output can be inspected.
func writeDebugUnformatted(outDir, filename string, content []byte) (string, error) {
	if outDir == "" || filename == "" {
		return "", nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", err
	}

	p := filepath.Join(outDir, strings.TrimSuffix(filename, ".go")+".unformatted.go")

	return p, os.WriteFile(p, content, filePerm)
}
