package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileStore reads the client list from a flat JSON file on every call. The
// file is maintained by hand (CRM exports), so a missing file is treated as
// an empty list rather than an error.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]Client, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Client{}, nil
		}
		return nil, fmt.Errorf("read clients file %s: %w", s.path, err)
	}

	var list []Client
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse clients file %s: %w", s.path, err)
	}

	return list, nil
}
