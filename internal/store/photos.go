package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/erazemk/omara/internal/model"
)

// Photo is an encoded image stored for a clothing item.
type Photo struct {
	Data []byte `json:"data"`
	MIME string `json:"mime"`
}

func photoKey(collection, id string) string {
	return "@omara/images/" + collection + "/" + id
}

// SetPhoto stores the photo for the item with the given id. The item must
// exist in the collection.
func (s *Store) SetPhoto(ctx context.Context, c Collection[model.ClothingItem], id string, photo Photo) error {
	if !c.Photos {
		return fmt.Errorf("%s does not store photos", c.Name)
	}

	// Hold the collection lock so a concurrent Remove cannot orphan the photo.
	unlock := s.lock(c.Key)
	defer unlock()

	if _, err := Get(ctx, s, c, id); err != nil {
		return err
	}

	data, err := json.Marshal(photo)
	if err != nil {
		return fmt.Errorf("encoding photo: %w", err)
	}
	if err := s.kv.Put(ctx, photoKey(c.Name, id), data); err != nil {
		return fmt.Errorf("storing photo: %w", err)
	}
	return nil
}

// GetPhoto returns the photo for the item with the given id, or
// ErrNotFound when none was uploaded.
func (s *Store) GetPhoto(ctx context.Context, c Collection[model.ClothingItem], id string) (*Photo, error) {
	data, err := s.kv.Get(ctx, photoKey(c.Name, id))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("photo for %s %s: %w", c.Name, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting photo: %w", err)
	}

	var photo Photo
	if err := json.Unmarshal(data, &photo); err != nil {
		return nil, fmt.Errorf("decoding photo: %w: %v", ErrCorrupt, err)
	}
	return &photo, nil
}

func (s *Store) movePhoto(ctx context.Context, from, to, id string) error {
	data, err := s.kv.Get(ctx, photoKey(from, id))
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, photoKey(to, id), data); err != nil {
		return err
	}
	return s.kv.Delete(ctx, photoKey(from, id))
}
