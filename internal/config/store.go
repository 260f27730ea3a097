package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// Manager owns the live configuration. Readers get immutable snapshots;
// writers go through Update, which validates and persists before swapping
// the snapshot in. The relay engine reads one snapshot per task, so a
// concurrent settings change never tears a task's view of the config.
type Manager struct {
	mu   sync.RWMutex
	path string
	cfg  *Config
}

// NewManager wraps an already-loaded config. path is where updates are
// persisted; empty disables persistence (tests).
func NewManager(path string, cfg *Config) *Manager {
	return &Manager{path: path, cfg: cfg}
}

// Current returns the active config snapshot. Callers must not mutate it.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Update applies fn to a copy of the current config, validates the result,
// persists it, and swaps it in. The copy is discarded on any failure.
func (m *Manager) Update(fn func(*Config) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.cfg.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if errs := next.Validate(); len(errs) > 0 {
		return &ValidationError{Path: m.path, Errors: errs}
	}
	if m.path != "" {
		if err := next.Write(m.path); err != nil {
			return fmt.Errorf("persist config: %w", err)
		}
	}
	m.cfg = next
	return nil
}

// EnsureWebhookToken generates and persists a webhook token when none is
// configured. Returns the active token.
func (m *Manager) EnsureWebhookToken() (string, error) {
	if tok := m.Current().Webhook.Token; tok != "" {
		return tok, nil
	}
	tok, err := generateToken()
	if err != nil {
		return "", err
	}
	err = m.Update(func(c *Config) error {
		if c.Webhook.Token == "" {
			c.Webhook.Token = tok
		}
		tok = c.Webhook.Token
		return nil
	})
	if err != nil {
		return "", err
	}
	return tok, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate webhook token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
