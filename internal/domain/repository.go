package domain

import "context"

// Lookups named Find* return (nil, nil) when nothing matches; Get* return
// ErrNotFound.

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type CustomerRepository interface {
	ListWithContacts(ctx context.Context) ([]CustomerWithContacts, error)
	Get(ctx context.Context, id uint) (*Customer, error)
	GetWithContacts(ctx context.Context, id uint) (*CustomerWithContacts, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	// Delete removes the customer; its contacts go with it through the
	// ON DELETE CASCADE foreign key.
	Delete(ctx context.Context, id uint) error
}

type ContactRepository interface {
	ListByCustomerWithCustomer(ctx context.Context, customerID uint) ([]ContactWithCustomer, error)
	Get(ctx context.Context, id uint) (*Contact, error)
	GetWithCustomer(ctx context.Context, id uint) (*ContactWithCustomer, error)
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id uint) error
}

// Store groups the repositories and runs units of work.
type Store interface {
	Users() UserRepository
	Customers() CustomerRepository
	Contacts() ContactRepository
	// WithinTx runs fn inside one transaction; returning an error rolls back.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

type TokenStore interface {
	Save(ctx context.Context, t *AccessToken) error
	Get(ctx context.Context, id string) (*AccessToken, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, userID uint, id string) error
}
