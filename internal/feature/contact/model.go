package contact

import (
	"time"

	"clicksoft-api/internal/domain"
)

type ContactModel struct {
	ID         uint   `gorm:"primaryKey"`
	CustomerID uint   `gorm:"not null;index"`
	Nome       string `gorm:"size:255;not null"`
	Telefone   string `gorm:"size:15;not null"`
	Email      string `gorm:"size:255;not null"`
	Tipo       string `gorm:"size:20;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ContactModel) TableName() string { return "contacts" }

func FromDomain(c *domain.Contact) *ContactModel {
	return &ContactModel{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Nome:       c.Nome,
		Telefone:   c.Telefone,
		Email:      c.Email,
		Tipo:       string(c.Tipo),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *ContactModel) ToDomain() domain.Contact {
	return domain.Contact{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Nome:       m.Nome,
		Telefone:   m.Telefone,
		Email:      m.Email,
		Tipo:       domain.ContactType(m.Tipo),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToDomainList(ms []ContactModel) []domain.Contact {
	out := make([]domain.Contact, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out
}
