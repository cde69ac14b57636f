package service

import (
	"context"
	"errors"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/validation"
)

const (
	msgCNPJTaken        = "CNPJ já cadastrado"
	msgCustomerNotFound = "Cliente não encontrado"
)

type CustomerService struct{ Deps }

func NewCustomerService(d Deps) *CustomerService { return &CustomerService{Deps: d.withDefaults()} }

func (s *CustomerService) List(ctx context.Context) ([]domain.CustomerWithContacts, error) {
	list, err := s.Store.Customers().ListWithContacts(ctx)
	if err != nil {
		return nil, internal("list customers", err)
	}
	return list, nil
}

func (s *CustomerService) Create(ctx context.Context, p validation.CustomerPayload) (*domain.Customer, error) {
	in, err := validation.CreateCustomer(p)
	if err != nil {
		return nil, err
	}
	c := &domain.Customer{}
	in.Apply(c)

	err = s.Store.WithinTx(ctx, func(tx domain.Store) error {
		existing, err := tx.Customers().FindByCNPJ(ctx, c.CNPJ)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict(msgCNPJTaken)
		}
		return tx.Customers().Create(ctx, c)
	})
	if err != nil {
		return nil, s.writeError("create customer", err)
	}
	s.publish(ctx, domain.EventCustomerCreated, c.ID, 0)
	return c, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.CustomerWithContacts, error) {
	c, err := s.Store.Customers().GetWithContacts(ctx, id)
	if err != nil {
		return nil, s.writeError("get customer", err)
	}
	return c, nil
}

// Update merges the fields present in p into the customer. The result carries
// no contacts.
func (s *CustomerService) Update(ctx context.Context, id uint, p validation.CustomerPayload) (*domain.Customer, error) {
	in, err := validation.UpdateCustomer(p)
	if err != nil {
		return nil, err
	}
	var c *domain.Customer
	err = s.Store.WithinTx(ctx, func(tx domain.Store) error {
		var err error
		c, err = tx.Customers().Get(ctx, id)
		if err != nil {
			return err
		}
		if in.CNPJ != nil && *in.CNPJ != c.CNPJ {
			other, err := tx.Customers().FindByCNPJ(ctx, *in.CNPJ)
			if err != nil {
				return err
			}
			if other != nil && other.ID != c.ID {
				return domain.Conflict(msgCNPJTaken)
			}
		}
		in.Apply(c)
		return tx.Customers().Update(ctx, c)
	})
	if err != nil {
		return nil, s.writeError("update customer", err)
	}
	s.publish(ctx, domain.EventCustomerUpdated, c.ID, 0)
	return c, nil
}

// Delete removes the customer and, through the foreign key, its contacts.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	err := s.Store.WithinTx(ctx, func(tx domain.Store) error {
		if _, err := tx.Customers().Get(ctx, id); err != nil {
			return err
		}
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		return s.writeError("delete customer", err)
	}
	s.publish(ctx, domain.EventCustomerDeleted, id, 0)
	return nil
}

func (s *CustomerService) writeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(msgCustomerNotFound)
	case errors.Is(err, domain.ErrDuplicate):
		return domain.Conflict(msgCNPJTaken)
	}
	return internal(op, err)
}
