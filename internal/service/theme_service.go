package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
	"github.com/vistago/vistago-api/internal/repository/ports"
)

// themeKey is the general-store key holding the mode as a plain string.
const themeKey = "@vistago_theme"

// ThemeService owns the display-mode preference. Exactly one mode is active
// at a time; "system" is resolved through the scheme provider on every read,
// never cached.
type ThemeService struct {
	store  ports.KVStore
	scheme ports.SchemeProvider
	log    logger.Logger

	mu   sync.RWMutex
	mode domain.ThemeMode
}

// NewThemeService loads the persisted preference before returning. Absence,
// read failure, or an unknown value default to system-follow.
func NewThemeService(ctx context.Context, store ports.KVStore, scheme ports.SchemeProvider, log logger.Logger) *ThemeService {
	s := &ThemeService{
		store:  store,
		scheme: scheme,
		log:    log,
		mode:   domain.ThemeSystem,
	}

	raw, err := store.Get(ctx, themeKey)
	switch {
	case err == nil:
		if mode := domain.ThemeMode(raw); mode.Valid() {
			s.mode = mode
		} else {
			log.Warn("theme: unknown persisted mode, defaulting to system", logger.String("mode", raw))
		}
	case err == ports.ErrKeyNotFound:
		// First run.
	default:
		log.Warn("theme: load failed, defaulting to system", logger.Error(err))
	}
	return s
}

func (s *ThemeService) Mode() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode persists the new mode, then updates memory. On persistence failure
// the prior mode stays active and the error propagates.
func (s *ThemeService) SetMode(ctx context.Context, mode domain.ThemeMode) error {
	if !mode.Valid() {
		return ErrInvalidThemeMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, themeKey, string(mode)); err != nil {
		return fmt.Errorf("theme: persist mode: %w", err)
	}
	s.mode = mode
	return nil
}

// EffectiveScheme resolves the active mode to light or dark. The system mode
// consults the provider live on every call.
func (s *ThemeService) EffectiveScheme() domain.ColorScheme {
	switch s.Mode() {
	case domain.ThemeLight:
		return domain.SchemeLight
	case domain.ThemeDark:
		return domain.SchemeDark
	default:
		return s.scheme.ColorScheme()
	}
}

func (s *ThemeService) IsDark() bool {
	return s.EffectiveScheme() == domain.SchemeDark
}

// StaticSchemeProvider reports a fixed scheme, configured from the
// environment. It stands in for an OS scheme query on a headless host.
type StaticSchemeProvider struct {
	Scheme domain.ColorScheme
}

func (p StaticSchemeProvider) ColorScheme() domain.ColorScheme {
	if p.Scheme == domain.SchemeDark {
		return domain.SchemeDark
	}
	return domain.SchemeLight
}

var _ ports.SchemeProvider = StaticSchemeProvider{}
