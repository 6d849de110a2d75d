package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/01moynul/foodie-cart/internal/models"
	"github.com/01moynul/foodie-cart/internal/storage"
)

// Option configures a Cart or Favorites container.
type Option func(*options)

type options struct {
	prefix      *string
	log         *slog.Logger
	readThrough bool
}

// WithKeyPrefix overrides the storage key prefix placed before the owner id.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.prefix = &prefix }
}

// WithLogger sets the logger used for skipped and failed operations.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithReadThrough makes every call re-read the owner's snapshot from the
// store instead of reusing the one loaded on first access. Use it when more
// than one process writes to the same store.
func WithReadThrough() Option {
	return func(o *options) { o.readThrough = true }
}

// snapshot is one owner's cached records. Its lock is held across store
// calls so operations on the same owner run one at a time.
type snapshot[T any] struct {
	mu     sync.Mutex
	items  []T
	loaded bool
}

// collection is an owner-scoped list of records persisted as one JSON array
// per owner under prefix+owner. Snapshots are loaded lazily per owner.
type collection[T any] struct {
	store       storage.Store
	prefix      string
	log         *slog.Logger
	readThrough bool

	idOf  func(T) models.ItemID
	clone func(T) T
	valid func(T) bool

	mu     sync.Mutex
	owners map[string]*snapshot[T]
}

func newCollection[T any](store storage.Store, defaultPrefix string, opts []Option, idOf func(T) models.ItemID, clone func(T) T, valid func(T) bool) *collection[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	prefix := defaultPrefix
	if o.prefix != nil {
		prefix = *o.prefix
	}
	log := o.log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &collection[T]{
		store:       store,
		prefix:      prefix,
		log:         log,
		readThrough: o.readThrough,
		idOf:        idOf,
		clone:       clone,
		valid:       valid,
		owners:      make(map[string]*snapshot[T]),
	}
}

// Key returns the storage key for owner.
func (c *collection[T]) Key(owner string) string {
	return c.prefix + owner
}

// snapshotFor returns owner's snapshot, creating it on first use.
func (c *collection[T]) snapshotFor(owner string) *snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.owners[owner]
	if !ok {
		s = &snapshot[T]{}
		c.owners[owner] = s
	}
	return s
}

// current returns the owner's records, reading them from the store the first
// time. Callers hold s.mu.
func (c *collection[T]) current(ctx context.Context, owner string, s *snapshot[T]) ([]T, error) {
	if s.loaded && !c.readThrough {
		return s.items, nil
	}

	raw, found, err := c.store.Get(ctx, c.Key(owner))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.Key(owner), err)
	}

	items := []T{}
	if found {
		var decoded []T
		if err := json.Unmarshal(raw, &decoded); err != nil {
			c.log.Warn("discarding unreadable snapshot",
				slog.String("key", c.Key(owner)), slog.Any("err", err))
		} else {
			items = c.normalize(decoded)
		}
	}
	s.items, s.loaded = items, true
	return items, nil
}

// normalize drops records that break the collection invariants: duplicate
// ids (first one wins) and records the type rejects.
func (c *collection[T]) normalize(items []T) []T {
	seen := make(map[models.ItemID]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		id := c.idOf(it)
		if _, dup := seen[id]; dup || !c.valid(it) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	return out
}

func (c *collection[T]) copyOf(items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = c.clone(it)
	}
	return out
}

func (c *collection[T]) indexOf(items []T, id models.ItemID) int {
	for i, it := range items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

// list returns a copy of the owner's snapshot.
func (c *collection[T]) list(ctx context.Context, owner string) ([]T, error) {
	if owner == "" {
		return []T{}, nil
	}
	s := c.snapshotFor(owner)
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := c.current(ctx, owner, s)
	if err != nil {
		return []T{}, err
	}
	return c.copyOf(items), nil
}

// mutate applies fn to a copy of the owner's snapshot. When fn reports a
// change the full result is written back and becomes the new snapshot. With
// no owner, or when fn reports no change, nothing is written.
func (c *collection[T]) mutate(ctx context.Context, owner, op string, fn func(items []T) ([]T, bool)) ([]T, error) {
	return c.apply(ctx, owner, op, false, fn)
}

// prune is mutate for removals: a result with no records removes the key
// instead of writing an empty array.
func (c *collection[T]) prune(ctx context.Context, owner, op string, fn func(items []T) ([]T, bool)) ([]T, error) {
	return c.apply(ctx, owner, op, true, fn)
}

func (c *collection[T]) apply(ctx context.Context, owner, op string, removeEmpty bool, fn func(items []T) ([]T, bool)) ([]T, error) {
	if owner == "" {
		c.log.Debug("skipped: no owner", slog.String("op", op))
		return []T{}, nil
	}
	s := c.snapshotFor(owner)
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := c.current(ctx, owner, s)
	if err != nil {
		return []T{}, err
	}

	next, changed := fn(c.copyOf(items))
	if !changed {
		return c.copyOf(items), nil
	}

	if removeEmpty && len(next) == 0 {
		if err := c.store.Remove(ctx, c.Key(owner)); err != nil {
			c.log.Error("clear failed", slog.String("op", op),
				slog.String("key", c.Key(owner)), slog.Any("err", err))
			return c.copyOf(items), fmt.Errorf("clear %s: %w", c.Key(owner), err)
		}
		s.items, s.loaded = []T{}, true
		return []T{}, nil
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return c.copyOf(items), fmt.Errorf("encode %s: %w", c.Key(owner), err)
	}
	if err := c.store.Set(ctx, c.Key(owner), raw); err != nil {
		c.log.Error("persist failed", slog.String("op", op),
			slog.String("key", c.Key(owner)), slog.Any("err", err))
		return c.copyOf(items), fmt.Errorf("persist %s: %w", c.Key(owner), err)
	}

	s.items, s.loaded = next, true
	return c.copyOf(next), nil
}

// clear removes the owner's key and empties the snapshot.
func (c *collection[T]) clear(ctx context.Context, owner string) ([]T, error) {
	if owner == "" {
		return []T{}, nil
	}
	s := c.snapshotFor(owner)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := c.store.Remove(ctx, c.Key(owner)); err != nil {
		c.log.Error("clear failed", slog.String("key", c.Key(owner)), slog.Any("err", err))
		return c.copyOf(s.items), fmt.Errorf("clear %s: %w", c.Key(owner), err)
	}
	s.items, s.loaded = []T{}, true
	return []T{}, nil
}

// forget drops the cached snapshot so the next access reads the store.
func (c *collection[T]) forget(owner string) {
	s := c.snapshotFor(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items, s.loaded = nil, false
}
