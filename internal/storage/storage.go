package storage

import (
	"jsplit/internal/config"
	"jsplit/internal/domain"
)

// Storage persists and loads the last split plan (e.g. for the show command).
type Storage interface {
	Save(plan *domain.Plan) error
	Load() (*domain.Plan, error)
}

// JSONStorage stores plans in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
