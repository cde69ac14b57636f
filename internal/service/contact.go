package service

import (
	"context"
	"errors"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/validation"
)

const msgContactNotFound = "Contato não encontrado"

type ContactService struct{ Deps }

func NewContactService(d Deps) *ContactService { return &ContactService{Deps: d.withDefaults()} }

// ListByCustomer returns the contacts of customerID; an unknown customer
// simply has none.
func (s *ContactService) ListByCustomer(ctx context.Context, customerID uint) ([]domain.ContactWithCustomer, error) {
	list, err := s.Store.Contacts().ListByCustomerWithCustomer(ctx, customerID)
	if err != nil {
		return nil, internal("list contacts", err)
	}
	return list, nil
}

func (s *ContactService) Create(ctx context.Context, p validation.ContactPayload) (*domain.ContactWithCustomer, error) {
	in, err := validation.CreateContact(p)
	if err != nil {
		return nil, err
	}
	c := &domain.Contact{}
	in.Apply(c)

	var out *domain.ContactWithCustomer
	err = s.Store.WithinTx(ctx, func(tx domain.Store) error {
		owner, err := tx.Customers().Get(ctx, c.CustomerID)
		if errors.Is(err, domain.ErrNotFound) {
			return validation.UnknownCustomer()
		}
		if err != nil {
			return err
		}
		if err := tx.Contacts().Create(ctx, c); err != nil {
			return err
		}
		out = &domain.ContactWithCustomer{Contact: *c, Customer: owner}
		return nil
	})
	if errors.Is(err, domain.ErrForeignKey) {
		return nil, validation.UnknownCustomer()
	}
	if err != nil {
		return nil, internal("create contact", err)
	}
	s.publish(ctx, domain.EventContactCreated, c.ID, c.CustomerID)
	return out, nil
}

func (s *ContactService) Get(ctx context.Context, id uint) (*domain.ContactWithCustomer, error) {
	c, err := s.Store.Contacts().GetWithCustomer(ctx, id)
	if err != nil {
		return nil, s.writeError("get contact", err)
	}
	return c, nil
}

func (s *ContactService) Update(ctx context.Context, id uint, p validation.ContactPayload) (*domain.ContactWithCustomer, error) {
	in, err := validation.UpdateContact(p)
	if err != nil {
		return nil, err
	}
	var out *domain.ContactWithCustomer
	err = s.Store.WithinTx(ctx, func(tx domain.Store) error {
		c, err := tx.Contacts().Get(ctx, id)
		if err != nil {
			return err
		}
		in.Apply(c)
		if err := tx.Contacts().Update(ctx, c); err != nil {
			return err
		}
		out, err = tx.Contacts().GetWithCustomer(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.writeError("update contact", err)
	}
	s.publish(ctx, domain.EventContactUpdated, out.ID, out.CustomerID)
	return out, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	var customerID uint
	err := s.Store.WithinTx(ctx, func(tx domain.Store) error {
		c, err := tx.Contacts().Get(ctx, id)
		if err != nil {
			return err
		}
		customerID = c.CustomerID
		return tx.Contacts().Delete(ctx, id)
	})
	if err != nil {
		return s.writeError("delete contact", err)
	}
	s.publish(ctx, domain.EventContactDeleted, id, customerID)
	return nil
}

func (s *ContactService) writeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(msgContactNotFound)
	}
	return internal(op, err)
}
