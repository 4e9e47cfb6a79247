package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vistago/vistago-api/internal/catalog"
	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
	"github.com/vistago/vistago-api/internal/repository/ports"
)

// favoritesKey is the general-store key holding the JSON-encoded id list.
const favoritesKey = "@vistago_favorites"

// FavoriteService owns the set of favorited destination ids. The persisted
// form is a JSON array in insertion order; in memory an index map backs O(1)
// membership tests. The in-memory set and the persisted list never diverge:
// every mutation persists the candidate list first and only then updates
// memory.
type FavoriteService struct {
	store ports.KVStore
	log   logger.Logger

	// mu serializes mutations across their whole read-modify-write. The
	// persisted form is a full-list rewrite, so two interleaved mutations on
	// different ids would otherwise silently drop one.
	mu    sync.Mutex
	order []string
	index map[string]struct{}
}

// NewFavoriteService loads the persisted set before returning, so dependents
// never observe a half-initialized store. Read failures and malformed JSON
// fall back to an empty set and are only logged.
func NewFavoriteService(ctx context.Context, store ports.KVStore, log logger.Logger) *FavoriteService {
	s := &FavoriteService{
		store: store,
		log:   log,
		order: []string{},
		index: map[string]struct{}{},
	}

	raw, err := store.Get(ctx, favoritesKey)
	switch {
	case err == nil:
		var ids []string
		if jsonErr := json.Unmarshal([]byte(raw), &ids); jsonErr != nil {
			log.Warn("favorites: malformed persisted list, starting empty", logger.Error(jsonErr))
			return s
		}
		for _, id := range ids {
			if _, dup := s.index[id]; dup {
				continue
			}
			s.order = append(s.order, id)
			s.index[id] = struct{}{}
		}
	case err == ports.ErrKeyNotFound:
		// First run.
	default:
		log.Warn("favorites: load failed, starting empty", logger.Error(err))
	}
	return s
}

// IsFavorite reports membership. Pure read, never touches storage.
func (s *FavoriteService) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// List returns the favorited ids in insertion order.
func (s *FavoriteService) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ListDestinations resolves the favorited ids against the catalog. Ids that
// no longer resolve (catalog content changed between releases) are skipped.
func (s *FavoriteService) ListDestinations() []domain.Destination {
	ids := s.List()
	out := make([]domain.Destination, 0, len(ids))
	for _, id := range ids {
		if d, ok := catalog.Get(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Add appends id to the set. Adding a present id is a no-op that succeeds.
func (s *FavoriteService) Add(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(ctx, id)
}

// Remove drops id from the set. Removing an absent id is a no-op that
// succeeds.
func (s *FavoriteService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

// Toggle flips membership for id. The membership test and the mutation happen
// under one lock acquisition, so concurrent toggles cannot both observe the
// pre-toggle state.
func (s *FavoriteService) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		return s.removeLocked(ctx, id)
	}
	return s.addLocked(ctx, id)
}

func (s *FavoriteService) addLocked(ctx context.Context, id string) error {
	if _, ok := s.index[id]; ok {
		return nil
	}

	candidate := make([]string, len(s.order), len(s.order)+1)
	copy(candidate, s.order)
	candidate = append(candidate, id)

	if err := s.persistLocked(ctx, candidate); err != nil {
		return err
	}
	s.order = candidate
	s.index[id] = struct{}{}
	return nil
}

func (s *FavoriteService) removeLocked(ctx context.Context, id string) error {
	if _, ok := s.index[id]; !ok {
		return nil
	}

	candidate := make([]string, 0, len(s.order)-1)
	for _, existing := range s.order {
		if existing != id {
			candidate = append(candidate, existing)
		}
	}

	if err := s.persistLocked(ctx, candidate); err != nil {
		return err
	}
	s.order = candidate
	delete(s.index, id)
	return nil
}

// persistLocked writes the candidate list. On failure the caller leaves the
// in-memory state untouched.
func (s *FavoriteService) persistLocked(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favorites: encode list: %w", err)
	}
	if err := s.store.Set(ctx, favoritesKey, string(raw)); err != nil {
		return fmt.Errorf("favorites: persist list: %w", err)
	}
	return nil
}
