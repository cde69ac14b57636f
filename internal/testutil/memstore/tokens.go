package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clicksoft-api/internal/domain"
)

// Tokens is an in-memory domain.TokenStore.
type Tokens struct {
	mu     sync.Mutex
	tokens map[string]domain.AccessToken
}

func NewTokens() *Tokens { return &Tokens{tokens: map[string]domain.AccessToken{}} }

func (t *Tokens) Save(_ context.Context, at *domain.AccessToken) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[at.ID] = *at
	return nil
}

func (t *Tokens) Get(_ context.Context, id string) (*domain.AccessToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.tokens[id]
	if !ok {
		return nil, fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	return &at, nil
}

func (t *Tokens) Touch(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.tokens[id]
	if !ok {
		return fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	now := time.Now()
	at.LastUsedAt = &now
	t.tokens[id] = at
	return nil
}

func (t *Tokens) Delete(_ context.Context, userID uint, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.tokens[id]
	if !ok || at.UserID != userID {
		return fmt.Errorf("access token: %w", domain.ErrNotFound)
	}
	delete(t.tokens, id)
	return nil
}

func (t *Tokens) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tokens)
}
