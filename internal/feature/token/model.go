package token

import (
	"time"

	"clicksoft-api/internal/domain"
)

type AccessTokenModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     uint      `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
}

func (AccessTokenModel) TableName() string { return "auth_access_tokens" }

func FromDomain(t *domain.AccessToken) *AccessTokenModel {
	return &AccessTokenModel{
		ID:         t.ID,
		UserID:     t.UserID,
		CreatedAt:  t.CreatedAt,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
	}
}

func (m *AccessTokenModel) ToDomain() *domain.AccessToken {
	return &domain.AccessToken{
		ID:         m.ID,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
	}
}
