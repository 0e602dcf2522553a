package health

import (
	"context"

	"rai-review-backend/internal/catalog"
)

// CatalogSource returns the published catalog snapshot.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// Status is the health payload.
type Status struct {
	OK             bool   `json:"ok"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	CacheBackend   string `json:"cache_backend,omitempty"`
	Generation     string `json:"generation,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Catalog      CatalogSource
	CacheBackend string
	Provider     string
}

// NewService constructs a new health service.
func NewService(cat CatalogSource, cacheBackend, provider string) *Service {
	return &Service{Catalog: cat, CacheBackend: cacheBackend, Provider: provider}
}

// Status reports readiness. The service is healthy once a catalog is loaded;
// cache and generation are informational because reviews degrade without them.
func (s *Service) Status(_ context.Context) Status {
	st := Status{CacheBackend: s.CacheBackend, Generation: s.Provider}
	if s.Catalog == nil {
		return st
	}
	if cat := s.Catalog.Current(); cat != nil {
		st.OK = true
		st.CatalogVersion = cat.Version
	}
	return st
}
