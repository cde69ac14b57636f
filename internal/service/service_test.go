package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clicksoft-api/internal/core/auth"
	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/testutil/memstore"
	"clicksoft-api/internal/validation"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
}

func (r *recorder) Publish(_ context.Context, e domain.ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event)
	}
	return out
}

type fixture struct {
	store    *memstore.Store
	tokens   *memstore.Tokens
	events   *recorder
	sessions *auth.Sessions
	auth     *AuthService
	cust     *CustomerService
	cont     *ContactService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New(), tokens: memstore.NewTokens(), events: &recorder{}}
	d := Deps{Store: f.store, Events: f.events, Now: func() time.Time { return time.Unix(1700000000, 0) }}
	f.sessions = auth.NewSessions(&auth.JWTer{Secret: []byte("test"), Issuer: "test"}, f.tokens, nil)
	var err error
	f.auth, err = NewAuthService(d, f.sessions, bcrypt.MinCost)
	require.NoError(t, err)
	f.cust = NewCustomerService(d)
	f.cont = NewContactService(d)
	return f
}

func ptr[T any](v T) *T { return &v }

func kindOf(t *testing.T, err error, want domain.Kind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var de *domain.Error
	require.True(t, errors.As(err, &de), "want *domain.Error, got %T: %v", err, err)
	assert.Equal(t, want, de.Kind, "error: %v", err)
	return de
}

func acmePayload() validation.CustomerPayload {
	return validation.CustomerPayload{
		CNPJ:         ptr("11222333000181"),
		RazaoSocial:  ptr("Acme LTDA"),
		NomeFantasia: ptr("Acme"),
		CEP:          ptr("01001000"),
		Logradouro:   ptr("Praça da Sé"),
		Numero:       ptr("100"),
		Bairro:       ptr("Sé"),
		Cidade:       ptr("São Paulo"),
		Estado:       ptr("sp"),
	}
}

func contactPayload(customerID uint) validation.ContactPayload {
	return validation.ContactPayload{
		CustomerID: ptr(int64(customerID)),
		Nome:       ptr("Maria"),
		Telefone:   ptr("11987654321"),
		Email:      ptr("maria@example.com"),
		Tipo:       ptr("principal"),
	}
}
