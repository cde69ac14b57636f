// Package memstore is an in-memory domain.Store for tests. It enforces the
// same unique, foreign key and cascade rules as the SQL schema.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"clicksoft-api/internal/domain"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users     map[uint]domain.User
	customers map[uint]domain.Customer
	contacts  map[uint]domain.Contact
	nextID    uint

	// StaleLookups makes FindByEmail and FindByCNPJ miss, as if a concurrent
	// writer inserted the row after the pre-check ran.
	StaleLookups bool
	// Err, when set, is returned by every repository call.
	Err error
}

func New() *Store {
	return &Store{
		users:     map[uint]domain.User{},
		customers: map[uint]domain.Customer{},
		contacts:  map[uint]domain.Contact{},
	}
}

func (s *Store) Users() domain.UserRepository         { return userRepo{s} }
func (s *Store) Customers() domain.CustomerRepository { return customerRepo{s} }
func (s *Store) Contacts() domain.ContactRepository   { return contactRepo{s} }

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	users, customers, contacts, next := clone(s.users), clone(s.customers), clone(s.contacts), s.nextID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.users, s.customers, s.contacts, s.nextID = users, customers, contacts, next
		s.mu.Unlock()
		return err
	}
	return nil
}

// ContactCount is the number of stored contacts, across all customers.
func (s *Store) ContactCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", domain.ErrDuplicate)
		}
	}
	now := time.Now()
	u.ID, u.CreatedAt, u.UpdatedAt = s.id(), now, now
	s.users[u.ID] = *u
	return nil
}

func (r userRepo) Get(_ context.Context, id uint) (*domain.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.StaleLookups {
		return nil, nil
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) contactsOf(id uint) []domain.Contact {
	out := []domain.Contact{}
	for _, k := range sortedKeys(r.s.contacts) {
		if c := r.s.contacts[k]; c.CustomerID == id {
			out = append(out, c)
		}
	}
	return out
}

func (r customerRepo) ListWithContacts(_ context.Context) ([]domain.CustomerWithContacts, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]domain.CustomerWithContacts, 0, len(s.customers))
	for _, id := range sortedKeys(s.customers) {
		out = append(out, domain.CustomerWithContacts{Customer: s.customers[id], Contacts: r.contactsOf(id)})
	}
	return out, nil
}

func (r customerRepo) Get(_ context.Context, id uint) (*domain.Customer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r customerRepo) GetWithContacts(ctx context.Context, id uint) (*domain.CustomerWithContacts, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return &domain.CustomerWithContacts{Customer: *c, Contacts: r.contactsOf(id)}, nil
}

func (r customerRepo) FindByCNPJ(_ context.Context, cnpj string) (*domain.Customer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.StaleLookups {
		return nil, nil
	}
	for _, c := range s.customers {
		if c.CNPJ == cnpj {
			return &c, nil
		}
	}
	return nil, nil
}

func (r customerRepo) cnpjTaken(cnpj string, except uint) bool {
	for id, c := range r.s.customers {
		if id != except && c.CNPJ == cnpj {
			return true
		}
	}
	return false
}

func (r customerRepo) Create(_ context.Context, c *domain.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if r.cnpjTaken(c.CNPJ, 0) {
		return fmt.Errorf("create customer: %w", domain.ErrDuplicate)
	}
	now := time.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = s.id(), now, now
	s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Update(_ context.Context, c *domain.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.customers[c.ID]; !ok {
		return fmt.Errorf("customer %d: %w", c.ID, domain.ErrNotFound)
	}
	if r.cnpjTaken(c.CNPJ, c.ID) {
		return fmt.Errorf("update customer: %w", domain.ErrDuplicate)
	}
	c.UpdatedAt = time.Now()
	s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Delete(_ context.Context, id uint) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.customers[id]; !ok {
		return fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	delete(s.customers, id)
	for cid, c := range s.contacts {
		if c.CustomerID == id {
			delete(s.contacts, cid)
		}
	}
	return nil
}

type contactRepo struct{ s *Store }

func (r contactRepo) withCustomer(c domain.Contact) domain.ContactWithCustomer {
	out := domain.ContactWithCustomer{Contact: c}
	if owner, ok := r.s.customers[c.CustomerID]; ok {
		out.Customer = &owner
	}
	return out
}

func (r contactRepo) ListByCustomerWithCustomer(_ context.Context, customerID uint) ([]domain.ContactWithCustomer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.ContactWithCustomer{}
	for _, id := range sortedKeys(s.contacts) {
		if c := s.contacts[id]; c.CustomerID == customerID {
			out = append(out, r.withCustomer(c))
		}
	}
	return out, nil
}

func (r contactRepo) Get(_ context.Context, id uint) (*domain.Contact, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (r contactRepo) GetWithCustomer(ctx context.Context, id uint) (*domain.ContactWithCustomer, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.withCustomer(*c)
	return &out, nil
}

func (r contactRepo) Create(_ context.Context, c *domain.Contact) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.customers[c.CustomerID]; !ok {
		return fmt.Errorf("create contact: %w", domain.ErrForeignKey)
	}
	now := time.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = s.id(), now, now
	s.contacts[c.ID] = *c
	return nil
}

func (r contactRepo) Update(_ context.Context, c *domain.Contact) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.contacts[c.ID]; !ok {
		return fmt.Errorf("contact %d: %w", c.ID, domain.ErrNotFound)
	}
	c.UpdatedAt = time.Now()
	s.contacts[c.ID] = *c
	return nil
}

func (r contactRepo) Delete(_ context.Context, id uint) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.contacts[id]; !ok {
		return fmt.Errorf("contact %d: %w", id, domain.ErrNotFound)
	}
	delete(s.contacts, id)
	return nil
}
