package application

import (
	"context"
	"sync"

	"go-shop/internal/shop/domain"
	"go-shop/internal/shop/ports"
	"go-shop/pkg/errors"
)

// SiteSettings is the explicitly injected holder for the site-wide settings
// row. It is loaded once at startup and reloaded on demand; readers never
// touch the database.
type SiteSettings struct {
	store ports.Store

	mu      sync.RWMutex
	current *domain.Settings
}

// NewSiteSettings creates the settings holder with defaults in place until
// Load succeeds.
func NewSiteSettings(store ports.Store) *SiteSettings {
	return &SiteSettings{
		store:   store,
		current: domain.DefaultSettings(),
	}
}

// Load reads the settings row. A missing row keeps the defaults.
func (s *SiteSettings) Load(ctx context.Context) error {
	settings, err := s.store.Settings().Get(ctx)
	if errors.Is(err, errors.CodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return nil
}

// Reload re-reads the settings row after an operator change.
func (s *SiteSettings) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Current returns a copy of the current settings.
func (s *SiteSettings) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current
}
