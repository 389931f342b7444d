package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/erazemk/omara/internal/model"
)

var (
	// ErrCorrupt is returned when a stored collection cannot be decoded.
	// The blob is left untouched so it can be inspected or repaired.
	ErrCorrupt = errors.New("collection data is corrupt")

	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when adding a record whose id is taken.
	ErrDuplicateID = errors.New("duplicate record id")
)

// Record is a value stored in a collection.
type Record[T any] interface {
	RecordID() string
	Stamped(id string, at time.Time) T
}

// Collection names one persisted record set and the key it lives under.
type Collection[T Record[T]] struct {
	Name   string
	Key    string
	Photos bool // records may have a photo stored alongside them
}

// The three persisted collections.
var (
	Wardrobe     = Collection[model.ClothingItem]{Name: "wardrobe", Key: "@omara/wardrobe", Photos: true}
	Wishlist     = Collection[model.ClothingItem]{Name: "wishlist", Key: "@omara/wishlist", Photos: true}
	SavedOutfits = Collection[model.Outfit]{Name: "outfits", Key: "@omara/outfits"}
)

// ItemCollections are the collections holding clothing items.
var ItemCollections = []Collection[model.ClothingItem]{Wardrobe, Wishlist}

// Store maps collections onto a KV. Every read-modify-write holds a
// per-collection lock, so concurrent callers in one process do not lose
// updates. Separate processes sharing a file get no such guarantee.
type Store struct {
	kv    KV
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the generator for ids of records added without one.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns a Store over kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: model.NewID,
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KV returns the underlying key-value store.
func (s *Store) KV() KV {
	return s.kv
}

func (s *Store) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// GetAll returns every record in the collection, in stored order. A missing
// collection is empty.
func GetAll[T Record[T]](ctx context.Context, s *Store, c Collection[T]) ([]T, error) {
	return load(ctx, s, c)
}

// Get returns the record with the given id.
func Get[T Record[T]](ctx context.Context, s *Store, c Collection[T], id string) (T, error) {
	var zero T
	records, err := load(ctx, s, c)
	if err != nil {
		return zero, err
	}
	for _, r := range records {
		if r.RecordID() == id {
			return r, nil
		}
	}
	return zero, fmt.Errorf("%s %s: %w", c.Name, id, ErrNotFound)
}

// SaveAll replaces the whole collection with records in a single write.
func SaveAll[T Record[T]](ctx context.Context, s *Store, c Collection[T], records []T) error {
	unlock := s.lock(c.Key)
	defer unlock()

	return save(ctx, s, c, records)
}

// Add appends record to the collection, assigning an id and creation time
// when unset, and returns the stored record.
func Add[T Record[T]](ctx context.Context, s *Store, c Collection[T], record T) (T, error) {
	unlock := s.lock(c.Key)
	defer unlock()

	var zero T
	records, err := load(ctx, s, c)
	if err != nil {
		return zero, err
	}

	record = record.Stamped(s.newID(), s.now())
	for _, r := range records {
		if r.RecordID() == record.RecordID() {
			return zero, fmt.Errorf("adding to %s: %s: %w", c.Name, record.RecordID(), ErrDuplicateID)
		}
	}

	if err := save(ctx, s, c, append(records, record)); err != nil {
		return zero, err
	}
	return record, nil
}

// Remove deletes the record with the given id, keeping the order of the
// others. Removing an id that is not present is a no-op.
func Remove[T Record[T]](ctx context.Context, s *Store, c Collection[T], id string) error {
	unlock := s.lock(c.Key)
	defer unlock()

	records, err := load(ctx, s, c)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(records))
	for _, r := range records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	if err := save(ctx, s, c, kept); err != nil {
		return err
	}

	if c.Photos {
		if err := s.kv.Delete(ctx, photoKey(c.Name, id)); err != nil {
			slog.Warn("failed to delete photo", "collection", c.Name, "id", id, "error", err)
		}
	}
	return nil
}

// Move transfers the record with the given id from one collection to another.
// The record keeps its id and creation time.
func Move[T Record[T]](ctx context.Context, s *Store, from, to Collection[T], id string) (T, error) {
	var zero T
	if from.Key == to.Key {
		return zero, fmt.Errorf("moving %s: source and destination are the same", id)
	}

	// Lock in key order so two opposite moves cannot deadlock.
	first, second := from.Key, to.Key
	if second < first {
		first, second = second, first
	}
	unlockFirst := s.lock(first)
	defer unlockFirst()
	unlockSecond := s.lock(second)
	defer unlockSecond()

	src, err := load(ctx, s, from)
	if err != nil {
		return zero, err
	}
	dst, err := load(ctx, s, to)
	if err != nil {
		return zero, err
	}

	idx := -1
	for i, r := range src {
		if r.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, fmt.Errorf("%s %s: %w", from.Name, id, ErrNotFound)
	}
	for _, r := range dst {
		if r.RecordID() == id {
			return zero, fmt.Errorf("moving to %s: %s: %w", to.Name, id, ErrDuplicateID)
		}
	}

	record := src[idx]
	// Write the destination first: a failure between the two writes leaves a
	// duplicate rather than losing the record.
	if err := save(ctx, s, to, append(dst, record)); err != nil {
		return zero, err
	}
	if err := save(ctx, s, from, append(src[:idx:idx], src[idx+1:]...)); err != nil {
		return zero, err
	}

	if from.Photos && to.Photos {
		if err := s.movePhoto(ctx, from.Name, to.Name, id); err != nil {
			slog.Warn("failed to move photo", "from", from.Name, "to", to.Name, "id", id, "error", err)
		}
	}
	return record, nil
}

func load[T Record[T]](ctx context.Context, s *Store, c Collection[T]) ([]T, error) {
	data, err := s.kv.Get(ctx, c.Key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.Name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", c.Name, ErrCorrupt, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func save[T Record[T]](ctx context.Context, s *Store, c Collection[T], records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.Name, err)
	}
	if err := s.kv.Put(ctx, c.Key, data); err != nil {
		return fmt.Errorf("writing %s: %w", c.Name, err)
	}
	return nil
}
