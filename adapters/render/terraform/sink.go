package terraform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaegashi/tgwops/domain/model"
)

// DefaultOutputPath is used when no output path is configured.
const DefaultOutputPath = "main.tf"

// FileSink writes documents to Path, replacing any existing content.
type FileSink struct {
	Path string
}

var _ model.DocumentSink = (*FileSink)(nil)

// Write stores data and returns the path written.
func (s *FileSink) Write(_ context.Context, data []byte) (string, error) {
	path := s.Path
	if path == "" {
		path = DefaultOutputPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %q: %w", path, err)
	}
	return path, nil
}
