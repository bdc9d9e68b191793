package out

import (
	"context"
	"fmt"
	"os"

	"niamverse/internal/modules/catalog/domain"
	catalogout "niamverse/internal/modules/catalog/port/out"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

var _ catalogout.Source = (*FileSource)(nil)

func (s *FileSource) Location() string { return s.path }

func (s *FileSource) Fetch(_ context.Context) (domain.RawDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("read catalog: %w", err)
	}
	return domain.RawDocument{Location: s.path, Format: domain.FormatFor(s.path), Data: data}, nil
}
