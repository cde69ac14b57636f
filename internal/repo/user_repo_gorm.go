package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	if err := r.db.WithContext(ctx).Omit("Tokens").Create(m).Error; err != nil {
		return mapError("create user", err)
	}
	*u = *m.ToDomain()
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uint) (*domain.User, error) {
	var m user.UserModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError("get user", err)
	}
	return m.ToDomain(), nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("find user by email", err)
	}
	return m.ToDomain(), nil
}
