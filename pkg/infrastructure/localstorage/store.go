package localstorage

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/model"
)

type snapshotJSON struct {
	Items []model.LineItem `json:"items"`
}

// Store keeps the serialized cart under a single file, the durable
// local-storage slot of this app. Every save overwrites the whole snapshot.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(items []model.LineItem) error {
	data, err := json.MarshalIndent(snapshotJSON{Items: items}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal cart snapshot")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0666), "write cart snapshot")
}

// Load reads the snapshot once at startup. A missing file means a fresh
// session and returns an empty cart; unreadable content returns an error the
// caller is expected to discard, not die on.
func (s *Store) Load() ([]model.LineItem, error) {
	file, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read cart snapshot")
	}

	var data snapshotJSON
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrap(err, "decode cart snapshot")
	}
	return data.Items, nil
}
