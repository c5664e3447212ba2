package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localfinds/discovery-engine/internal/domain"
)

// LoadCandidatesFromFile reads a candidate pool from a JSON file. Records
// missing an id or name are rejected here so the engine never sees them.
func LoadCandidatesFromFile(path string) ([]domain.BusinessCandidate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates file: %w", err)
	}

	var candidates []domain.BusinessCandidate
	if err := json.Unmarshal(b, &candidates); err != nil {
		return nil, fmt.Errorf("unmarshal candidates: %w", err)
	}

	for i, c := range candidates {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("candidate %d: id and name are required", i)
		}
	}
	return candidates, nil
}
