package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"niamverse/internal/modules/session/domain"
	sessionout "niamverse/internal/modules/session/port/out"
	"niamverse/internal/platform/clock"
	"niamverse/internal/platform/id"
)

type SessionService struct {
	clock    clock.Clock
	idGen    id.Generator
	sink     sessionout.RatingSink
	launcher sessionout.Launcher
	logger   *zap.Logger

	mu      sync.Mutex
	session domain.Session
	cloak   domain.Cloak
}

func NewSessionService(clock clock.Clock, idGen id.Generator, sink sessionout.RatingSink, launcher sessionout.Launcher, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		clock:    clock,
		idGen:    idGen,
		sink:     sink,
		launcher: launcher,
		logger:   logger,
		cloak:    domain.NewCloak("", ""),
	}
}

// Open makes entry the current one. When launch is set the entry's link is handed
// to the launcher; a launch failure leaves the entry open and is only logged.
func (s *SessionService) Open(ctx context.Context, entry domain.Entry, launch bool) bool {
	s.mu.Lock()
	s.session.Open(entry)
	s.mu.Unlock()

	if !launch || entry.Link == "" || s.launcher == nil {
		return false
	}
	if err := s.launcher.Open(ctx, entry.Link); err != nil {
		s.logger.Warn("launch game failed", zap.Int("game_id", entry.GameID), zap.String("link", entry.Link), zap.Error(err))
		return false
	}
	return true
}

func (s *SessionService) Close(ctx context.Context) (domain.Entry, bool) {
	s.mu.Lock()
	prev, ok := s.session.Close()
	s.mu.Unlock()

	if ok && s.launcher != nil {
		if err := s.launcher.Stop(ctx); err != nil {
			s.logger.Warn("stop launcher failed", zap.Error(err))
		}
	}
	return prev, ok
}

func (s *SessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *SessionService) SetRating(stars int) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SetRating(stars); err != nil {
		return s.session, err
	}
	return s.session, nil
}

func (s *SessionService) SetNotes(notes string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SetNotes(notes); err != nil {
		return s.session, err
	}
	return s.session, nil
}

// Submit records notes into the draft, then stamps the rating and emits it. A
// rejected submit leaves the session exactly as it was. Sink failures are
// logged; the draft is reset either way.
func (s *SessionService) Submit(ctx context.Context, notes string) (domain.Rating, error) {
	s.mu.Lock()
	draft := s.session
	if err := draft.SetNotes(notes); err != nil {
		s.mu.Unlock()
		return domain.Rating{}, err
	}
	rating, err := draft.Submit()
	if err == nil {
		s.session = draft
	}
	s.mu.Unlock()
	if err != nil {
		return domain.Rating{}, err
	}

	rating.ID = s.idGen.New()
	rating.SubmittedAt = s.clock.Now()
	if s.sink != nil {
		if err := s.sink.Emit(ctx, rating); err != nil {
			s.logger.Warn("emit rating failed", zap.String("rating_id", rating.ID), zap.Error(err))
		}
	}
	return rating, nil
}

func (s *SessionService) Cloak() domain.Cloak {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloak
}

func (s *SessionService) ApplyCloak(title, icon string) domain.Cloak {
	cloak := domain.NewCloak(title, icon)
	s.mu.Lock()
	s.cloak = cloak
	s.mu.Unlock()
	s.logger.Info("cloak applied", zap.String("title", cloak.Title), zap.String("icon", cloak.Icon))
	return cloak
}

func (s *SessionService) Embed(ctx context.Context, raw string) (string, bool, error) {
	target, err := domain.ValidateEmbedURL(raw)
	if err != nil {
		return "", false, err
	}
	if s.launcher == nil {
		return target, false, nil
	}
	if err := s.launcher.Open(ctx, target); err != nil {
		return target, false, fmt.Errorf("embed %s: %w", target, err)
	}
	return target, true, nil
}
