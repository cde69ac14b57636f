package customer

import (
	"time"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/feature/contact"
)

type CustomerModel struct {
	ID           uint    `gorm:"primaryKey"`
	CNPJ         string  `gorm:"column:cnpj;size:14;uniqueIndex;not null"`
	RazaoSocial  string  `gorm:"size:255;not null"`
	NomeFantasia *string `gorm:"size:255"`
	CEP          string  `gorm:"column:cep;size:8;not null"`
	Logradouro   string  `gorm:"size:255;not null"`
	Numero       string  `gorm:"size:20;not null"`
	Complemento  *string `gorm:"size:100"`
	Bairro       string  `gorm:"size:100;not null"`
	Cidade       string  `gorm:"size:100;not null"`
	Estado       string  `gorm:"size:2;not null"`
	Telefone     *string `gorm:"size:15"`
	Email        *string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Contacts []contact.ContactModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (CustomerModel) TableName() string { return "customers" }

func FromDomain(c *domain.Customer) *CustomerModel {
	return &CustomerModel{
		ID:           c.ID,
		CNPJ:         c.CNPJ,
		RazaoSocial:  c.RazaoSocial,
		NomeFantasia: c.NomeFantasia,
		CEP:          c.CEP,
		Logradouro:   c.Logradouro,
		Numero:       c.Numero,
		Complemento:  c.Complemento,
		Bairro:       c.Bairro,
		Cidade:       c.Cidade,
		Estado:       c.Estado,
		Telefone:     c.Telefone,
		Email:        c.Email,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *CustomerModel) ToDomain() domain.Customer {
	return domain.Customer{
		ID:           m.ID,
		CNPJ:         m.CNPJ,
		RazaoSocial:  m.RazaoSocial,
		NomeFantasia: m.NomeFantasia,
		CEP:          m.CEP,
		Logradouro:   m.Logradouro,
		Numero:       m.Numero,
		Complemento:  m.Complemento,
		Bairro:       m.Bairro,
		Cidade:       m.Cidade,
		Estado:       m.Estado,
		Telefone:     m.Telefone,
		Email:        m.Email,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToDomainWithContacts maps m and its preloaded contacts.
func (m *CustomerModel) ToDomainWithContacts() domain.CustomerWithContacts {
	return domain.CustomerWithContacts{Customer: m.ToDomain(), Contacts: contact.ToDomainList(m.Contacts)}
}
