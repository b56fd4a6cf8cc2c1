package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
)

//go:embed data/mcc_dataset.json
var embeddedDataset []byte

// EmbeddedSource serves the dataset compiled into the binary, so the service
// runs with no external data files. The embedded dataset aggregates the
// ISO 18245 ranges with per-source descriptions for the commonly used codes.
type EmbeddedSource struct{}

// NewEmbeddedSource creates a source backed by the compiled-in dataset.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Name() string {
	return "embedded"
}

func (s *EmbeddedSource) Load(_ context.Context) (*Records, error) {
	var records Records
	if err := json.Unmarshal(embeddedDataset, &records); err != nil {
		return nil, NewLoadError(s.Name(), err)
	}
	return &records, nil
}
