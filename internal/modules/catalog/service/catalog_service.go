package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"niamverse/internal/modules/catalog/domain"
	catalogout "niamverse/internal/modules/catalog/port/out"
	apperrors "niamverse/internal/platform/errors"
)

// CatalogService holds the catalog currently in effect. A failed load never
// surfaces as an error: the empty catalog is installed and the report says why.
type CatalogService struct {
	source  catalogout.Source
	decoder catalogout.DocumentDecoder
	logger  *zap.Logger

	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewCatalogService(source catalogout.Source, decoder catalogout.DocumentDecoder, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	empty, _ := domain.NewCatalog(nil)
	return &CatalogService{source: source, decoder: decoder, logger: logger, catalog: empty}
}

func (s *CatalogService) Load(ctx context.Context) domain.LoadReport {
	location := s.source.Location()
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return s.fallback(location, fmt.Errorf("fetch catalog: %w", err))
	}
	doc, err := s.decoder.Decode(raw)
	if err != nil {
		return s.fallback(location, fmt.Errorf("decode catalog: %w", err))
	}
	catalog, dropped := domain.NewCatalog(doc.Games)
	if len(dropped) > 0 {
		s.logger.Warn("duplicate game ids dropped", zap.String("location", location), zap.Ints("ids", dropped))
	}
	s.install(catalog)
	s.logger.Info("catalog loaded", zap.String("location", location), zap.Int("games", catalog.Len()))
	return domain.LoadReport{Location: location, Games: catalog.Len(), Dropped: dropped}
}

func (s *CatalogService) Catalog() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *CatalogService) Get(id int) (domain.Game, error) {
	game, ok := s.Catalog().Find(id)
	if !ok {
		return domain.Game{}, fmt.Errorf("game %d: %w", id, apperrors.ErrNotFound)
	}
	return game, nil
}

func (s *CatalogService) Select(query domain.Query, favorites, recents []int) domain.Selection {
	return domain.Select(s.Catalog(), query, favorites, recents)
}

func (s *CatalogService) install(catalog domain.Catalog) {
	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
}

func (s *CatalogService) fallback(location string, err error) domain.LoadReport {
	empty, _ := domain.NewCatalog(nil)
	s.install(empty)
	s.logger.Warn("catalog unavailable, using empty catalog", zap.String("location", location), zap.Error(err))
	return domain.LoadReport{Location: location, Fallback: true, Reason: err.Error()}
}
