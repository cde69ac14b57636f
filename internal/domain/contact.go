package domain

import "time"

type ContactType string

const (
	ContactPrincipal  ContactType = "principal"
	ContactSecundario ContactType = "secundario"
)

type Contact struct {
	ID         uint        `json:"id"`
	CustomerID uint        `json:"customerId"`
	Nome       string      `json:"nome"`
	Telefone   string      `json:"telefone"`
	Email      string      `json:"email"`
	Tipo       ContactType `json:"tipo"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// ContactWithCustomer is a contact with its owning customer loaded.
type ContactWithCustomer struct {
	Contact
	Customer *Customer `json:"customer"`
}

type ContactInput struct {
	CustomerID *uint
	Nome       *string
	Telefone   *string
	Email      *string
	Tipo       *ContactType
}

func (in ContactInput) Apply(c *Contact) {
	if in.CustomerID != nil {
		c.CustomerID = *in.CustomerID
	}
	setString(&c.Nome, in.Nome)
	setString(&c.Telefone, in.Telefone)
	setString(&c.Email, in.Email)
	if in.Tipo != nil {
		c.Tipo = *in.Tipo
	}
}
