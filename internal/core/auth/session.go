package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clicksoft-api/internal/domain"
)

// Sessions issues bearer tokens and keeps them revocable: every token's jti
// must exist in the token store for the token to authenticate.
type Sessions struct {
	jwt   *JWTer
	store domain.TokenStore
	log   *zap.Logger
}

func NewSessions(j *JWTer, store domain.TokenStore, l *zap.Logger) *Sessions {
	if l == nil {
		l = zap.NewNop()
	}
	return &Sessions{jwt: j, store: store, log: l.Named("sessions")}
}

func (s *Sessions) Issue(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	tok, expiresAt, err := s.jwt.Issue(userID, id)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	at := &domain.AccessToken{
		ID:        id,
		UserID:    userID,
		CreatedAt: s.jwt.clock(),
		ExpiresAt: expiresAt,
	}
	if err := s.store.Save(ctx, at); err != nil {
		return "", fmt.Errorf("save access token: %w", err)
	}
	return tok, nil
}

// Authenticate resolves a bearer token into the calling principal. Any failure
// that is the caller's fault yields ErrInvalidToken.
func (s *Sessions) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	at, err := s.store.Get(ctx, claims.TokenID())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, ErrInvalidToken
	case err != nil:
		return nil, fmt.Errorf("load access token: %w", err)
	}
	if at.UserID != claims.UserID || at.Expired(s.jwt.clock()) {
		return nil, ErrInvalidToken
	}
	if err := s.store.Touch(ctx, at.ID); err != nil {
		s.log.Warn("touch access token", zap.String("token_id", at.ID), zap.Error(err))
	}
	return &domain.Principal{UserID: at.UserID, TokenID: at.ID}, nil
}

// Revoke ends the single session identified by p.TokenID.
func (s *Sessions) Revoke(ctx context.Context, p domain.Principal) error {
	err := s.store.Delete(ctx, p.UserID, p.TokenID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrInvalidToken
	}
	return err
}
