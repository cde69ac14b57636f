package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/token"
)

// TokenRepo is the default domain.TokenStore, backed by auth_access_tokens.
type TokenRepo struct{ db *gorm.DB }

func NewTokenRepo(db *gorm.DB) *TokenRepo { return &TokenRepo{db: db} }

func (r *TokenRepo) Save(ctx context.Context, t *domain.AccessToken) error {
	if err := r.db.WithContext(ctx).Save(token.FromDomain(t)).Error; err != nil {
		return mapError("save access token", err)
	}
	return nil
}

func (r *TokenRepo) Get(ctx context.Context, id string) (*domain.AccessToken, error) {
	var m token.AccessTokenModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError("get access token", err)
	}
	return m.ToDomain(), nil
}

func (r *TokenRepo) Touch(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&token.AccessTokenModel{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now())
	if res.Error != nil {
		return mapError("touch access token", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError("touch access token", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *TokenRepo) Delete(ctx context.Context, userID uint, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&token.AccessTokenModel{})
	if res.Error != nil {
		return mapError("delete access token", res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError("delete access token", gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteExpired removes tokens whose expiry is before now.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&token.AccessTokenModel{})
	return res.RowsAffected, mapError("delete expired tokens", res.Error)
}
