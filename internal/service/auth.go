package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"clicksoft-api/internal/core/auth"
	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/validation"
	"clicksoft-api/pkg/utils"
)

const (
	msgEmailTaken       = "Email já cadastrado"
	msgBadCredentials   = "Credenciais inválidas"
	msgInvalidToken     = "Token inválido"
	msgNotAuthenticated = "Não autenticado"
)

// Sessions issues and revokes bearer tokens.
type Sessions interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Revoke(ctx context.Context, p domain.Principal) error
}

type LoginResult struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

type AuthService struct {
	Deps
	sessions   Sessions
	bcryptCost int
	// dummyHash is compared against when the email is unknown, so a miss
	// costs the same as a wrong password.
	dummyHash string
}

func NewAuthService(d Deps, sessions Sessions, bcryptCost int) (*AuthService, error) {
	dummy, err := utils.HashPasswordCost("not-a-real-password", bcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{Deps: d.withDefaults(), sessions: sessions, bcryptCost: bcryptCost, dummyHash: dummy}, nil
}

func (s *AuthService) Register(ctx context.Context, p validation.RegisterPayload) (domain.UserSummary, error) {
	in, err := validation.Register(p)
	if err != nil {
		return domain.UserSummary{}, err
	}
	hash, err := utils.HashPasswordCost(in.Password, s.bcryptCost)
	if err != nil {
		return domain.UserSummary{}, internal("hash password", err)
	}

	u := &domain.User{FullName: in.FullName, Email: in.Email, PasswordHash: hash}
	err = s.Store.WithinTx(ctx, func(tx domain.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict(msgEmailTaken)
		}
		return tx.Users().Create(ctx, u)
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return domain.UserSummary{}, domain.Conflict(msgEmailTaken)
	case err != nil:
		return domain.UserSummary{}, internal("register user", err)
	}
	return u.Summary(), nil
}

func (s *AuthService) Login(ctx context.Context, p validation.LoginPayload) (*LoginResult, error) {
	in, err := validation.Login(p)
	if err != nil {
		if domain.KindOf(err) == domain.KindValidation {
			return nil, domain.Unauthorized(msgBadCredentials)
		}
		return nil, err
	}
	u, err := s.Store.Users().FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("find user", err)
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword([]byte(s.dummyHash), []byte(in.Password))
		return nil, domain.Unauthorized(msgBadCredentials)
	}
	if !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, domain.Unauthorized(msgBadCredentials)
	}
	tok, err := s.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return &LoginResult{Token: tok, User: u.Summary()}, nil
}

// Logout revokes the token the caller authenticated with. Other sessions of
// the same user stay valid.
func (s *AuthService) Logout(ctx context.Context, p *domain.Principal) error {
	if p == nil {
		return domain.Unauthorized(msgInvalidToken)
	}
	err := s.sessions.Revoke(ctx, *p)
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return domain.Unauthorized(msgInvalidToken)
	case err != nil:
		return internal("revoke token", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, p *domain.Principal) (domain.UserSummary, error) {
	if p == nil {
		return domain.UserSummary{}, domain.Unauthorized(msgNotAuthenticated)
	}
	u, err := s.Store.Users().Get(ctx, p.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.UserSummary{}, domain.Unauthorized(msgNotAuthenticated)
	case err != nil:
		return domain.UserSummary{}, internal("load user", err)
	}
	return u.Summary(), nil
}
