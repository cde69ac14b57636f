package repo

import (
	"context"

	"gorm.io/gorm"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/contact"
	"clicksoft-api/internal/feature/customer"
	"clicksoft-api/internal/feature/token"
	"clicksoft-api/internal/feature/user"
)

// Store is the gorm-backed domain.Store.
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository         { return NewUserRepo(s.db) }
func (s *Store) Customers() domain.CustomerRepository { return NewCustomerRepo(s.db) }
func (s *Store) Contacts() domain.ContactRepository   { return NewContactRepo(s.db) }

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// AutoMigrate creates or updates the schema from the row models. The SQL
// migrations are the source of truth in production.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserModel{},
		&token.AccessTokenModel{},
		&customer.CustomerModel{},
		&contact.ContactModel{},
	)
}
