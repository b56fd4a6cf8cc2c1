package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource loads dataset records from a JSON file on disk. The file holds
// a single object with "codes", "ranges", and "categories" keys matching the
// Records shape.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Load reads and decodes the dataset file. The context is honored between
// the read and the decode; the read itself is a bounded local file read.
func (s *FileSource) Load(ctx context.Context) (*Records, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, NewLoadError(s.Name(), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, NewLoadError(s.Name(), err)
	}

	var records Records
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, NewLoadError(s.Name(), err)
	}

	return &records, nil
}
