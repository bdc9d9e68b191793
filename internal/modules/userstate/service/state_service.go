package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"niamverse/internal/modules/userstate/domain"
	userstateout "niamverse/internal/modules/userstate/port/out"
	apperrors "niamverse/internal/platform/errors"
)

// StateService owns the in-memory user state and writes every mutation through
// to the KV store. Storage failures are logged and otherwise ignored: the state
// stays correct for this run and simply does not survive a restart.
type StateService struct {
	mu     sync.Mutex
	store  userstateout.KVStore
	logger *zap.Logger
	state  domain.State
	loaded bool
}

func NewStateService(store userstateout.KVStore, logger *zap.Logger) *StateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateService{store: store, logger: logger, state: domain.New()}
}

func (s *StateService) Snapshot(ctx context.Context) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return clone(s.state)
}

func (s *StateService) ToggleFavorite(ctx context.Context, gameID int) (bool, domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	favorite := s.state.ToggleFavorite(gameID)
	s.persistIDs(ctx, domain.KeyFavorites, s.state.Favorites)
	return favorite, clone(s.state)
}

func (s *StateService) RecordRecent(ctx context.Context, gameID int) (bool, domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	added := s.state.RecordRecent(gameID)
	if added {
		s.persistIDs(ctx, domain.KeyRecents, s.state.Recents)
	}
	return added, clone(s.state)
}

func (s *StateService) SetTheme(ctx context.Context, name string) (domain.State, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateTheme(name); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", apperrors.ErrUnknownTheme, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	s.state.Theme = name
	if err := s.store.Set(ctx, domain.KeyTheme, name); err != nil {
		s.logger.Warn("persist theme failed", zap.String("theme", name), zap.Error(err))
	}
	return clone(s.state), nil
}

func (s *StateService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	loaded := domain.New()
	loaded.Favorites = s.readIDs(ctx, domain.KeyFavorites)
	loaded.Recents = s.readIDs(ctx, domain.KeyRecents)
	theme, ok, err := s.store.Get(ctx, domain.KeyTheme)
	switch {
	case err != nil:
		s.logger.Warn("read theme failed", zap.Error(err))
	case ok:
		loaded.Theme = theme
	}
	s.state = loaded.Normalize()
	s.logger.Debug("user state loaded",
		zap.Int("favorites", len(s.state.Favorites)),
		zap.Int("recents", len(s.state.Recents)),
		zap.String("theme", s.state.Theme))
}

func (s *StateService) readIDs(ctx context.Context, key string) []int {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read user state failed", zap.String("key", key), zap.Error(err))
		return []int{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []int{}
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("decode user state failed", zap.String("key", key), zap.Error(err))
		return []int{}
	}
	return ids
}

func (s *StateService) persistIDs(ctx context.Context, key string, ids []int) {
	payload, err := json.Marshal(ids)
	if err != nil {
		s.logger.Warn("encode user state failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		s.logger.Warn("persist user state failed", zap.String("key", key), zap.Error(err))
	}
}

func clone(s domain.State) domain.State {
	return domain.State{
		Favorites: append([]int{}, s.Favorites...),
		Recents:   append([]int{}, s.Recents...),
		Theme:     s.Theme,
	}
}
