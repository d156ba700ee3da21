package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/staffdir/internal/config"
	"github.com/google/uuid"
)

// Service is the entry point for queries and exports over the record store.
// It holds no per-request state; every call recomputes its view.
type Service struct {
	store        *Store
	exports      *ExportLimiter
	defaultLimit int
}

// NewService creates a Service over store using the API and export settings in cfg.
func NewService(store *Store, cfg *config.Config) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("new service: nil store")
	}
	limit := cfg.API.DefaultLimit
	if limit < 1 {
		limit = DefaultPageSize
	}
	return &Service{
		store:        store,
		exports:      NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWaitTime),
		defaultLimit: limit,
	}, nil
}

// Store returns the underlying record store.
func (s *Service) Store() *Store {
	return s.store
}

// DefaultLimit is the page size used when a request omits one.
func (s *Service) DefaultLimit() int {
	return s.defaultLimit
}

// View returns the filtered view for criteria.
func (s *Service) View(criteria Criteria) View {
	return Filter(s.store.Records(), criteria)
}

// Query filters the store and returns the requested page.
func (s *Service) Query(criteria Criteria, page, limit int) Page {
	return Paginate(s.View(criteria), page, limit)
}

// Export is a granted export slot. Call Done exactly once when rendering ends.
type Export struct {
	ID        string
	StartedAt time.Time

	release func()
}

// Done releases the export slot.
func (e *Export) Done() {
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

// BeginExport reserves an export slot, waiting for one if all are busy.
// Returns ErrTooManyExports when the wait times out.
func (s *Service) BeginExport(ctx context.Context) (*Export, error) {
	if err := s.exports.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("begin export: %w", err)
	}
	return &Export{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		release:   s.exports.Release,
	}, nil
}

// ExportStatus reports export slot usage.
func (s *Service) ExportStatus() ExportLimiterStatus {
	return s.exports.Status()
}

// WaitForExports blocks until in-flight exports finish or ctx ends.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.exports.WaitForDrain(ctx)
}

// Stats summarizes the loaded dataset.
type Stats struct {
	Records  int       `json:"records"`
	Columns  []string  `json:"columns"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Stats returns a summary of the store.
func (s *Service) Stats() Stats {
	return Stats{
		Records:  s.store.Len(),
		Columns:  s.store.Columns(),
		Source:   s.store.Source(),
		LoadedAt: s.store.LoadedAt(),
	}
}
