package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/validation"
)

func TestCustomerCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "SP", c.Estado)
	assert.Nil(t, c.Complemento)

	_, err = f.cust.Create(ctx, acmePayload())
	de := kindOf(t, err, domain.KindConflict)
	assert.Equal(t, "CNPJ já cadastrado", de.Msg)

	bad := acmePayload()
	bad.CNPJ = ptr("123")
	bad.Estado = ptr("SPX")
	_, err = f.cust.Create(ctx, bad)
	de = kindOf(t, err, domain.KindValidation)
	assert.Contains(t, de.Fields, "cnpj")
	assert.Contains(t, de.Fields, "estado")

	assert.Equal(t, []string{domain.EventCustomerCreated}, f.events.names())
}

func TestCustomerCreateRaceOnInsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)

	f.store.StaleLookups = true
	_, err = f.cust.Create(ctx, acmePayload())
	kindOf(t, err, domain.KindConflict)

	list, err := f.cust.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerGetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.cust.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	c, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)

	got, err := f.cust.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Contacts)
	assert.Empty(t, got.Contacts)

	_, err = f.cont.Create(ctx, contactPayload(c.ID))
	require.NoError(t, err)

	list, err = f.cust.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Contacts, 1)

	_, err = f.cust.Get(ctx, 999)
	de := kindOf(t, err, domain.KindNotFound)
	assert.Equal(t, "Cliente não encontrado", de.Msg)
}

func TestCustomerUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)
	other := acmePayload()
	other.CNPJ = ptr("44555666000199")
	b, err := f.cust.Create(ctx, other)
	require.NoError(t, err)

	got, err := f.cust.Update(ctx, a.ID, validation.CustomerPayload{Cidade: ptr("Campinas"), Estado: ptr("rj")})
	require.NoError(t, err)
	assert.Equal(t, "Campinas", got.Cidade)
	assert.Equal(t, "RJ", got.Estado)
	assert.Equal(t, a.CNPJ, got.CNPJ)
	assert.Equal(t, "Acme", *got.NomeFantasia)

	// same cnpj as itself is fine
	_, err = f.cust.Update(ctx, a.ID, validation.CustomerPayload{CNPJ: ptr(a.CNPJ)})
	require.NoError(t, err)

	_, err = f.cust.Update(ctx, b.ID, validation.CustomerPayload{CNPJ: ptr(a.CNPJ)})
	de := kindOf(t, err, domain.KindConflict)
	assert.Equal(t, "CNPJ já cadastrado", de.Msg)

	_, err = f.cust.Update(ctx, 999, validation.CustomerPayload{Cidade: ptr("X")})
	kindOf(t, err, domain.KindNotFound)

	// validation runs before the lookup
	_, err = f.cust.Update(ctx, 999, validation.CustomerPayload{CEP: ptr("abc")})
	kindOf(t, err, domain.KindValidation)

	unchanged, err := f.cust.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "44555666000199", unchanged.CNPJ)
}

func TestCustomerDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.cont.Create(ctx, contactPayload(c.ID))
		require.NoError(t, err)
	}
	require.Equal(t, 3, f.store.ContactCount())

	require.NoError(t, f.cust.Delete(ctx, c.ID))
	assert.Zero(t, f.store.ContactCount())

	kindOf(t, f.cust.Delete(ctx, c.ID), domain.KindNotFound)

	contacts, err := f.cont.ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	c, err := f.cust.Create(ctx, acmePayload())
	require.NoError(t, err)
	require.NoError(t, f.cust.Delete(ctx, c.ID))

	assert.Equal(t, []string{domain.EventCustomerCreated, domain.EventCustomerDeleted}, f.events.names())
	assert.Equal(t, int64(1700000000), f.events.events[0].At)
}
