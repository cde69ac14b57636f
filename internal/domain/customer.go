package domain

import "time"

type Customer struct {
	ID           uint      `json:"id"`
	CNPJ         string    `json:"cnpj"`
	RazaoSocial  string    `json:"razaoSocial"`
	NomeFantasia *string   `json:"nomeFantasia"`
	CEP          string    `json:"cep"`
	Logradouro   string    `json:"logradouro"`
	Numero       string    `json:"numero"`
	Complemento  *string   `json:"complemento"`
	Bairro       string    `json:"bairro"`
	Cidade       string    `json:"cidade"`
	Estado       string    `json:"estado"`
	Telefone     *string   `json:"telefone"`
	Email        *string   `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CustomerWithContacts is a customer with its contacts eagerly loaded.
type CustomerWithContacts struct {
	Customer
	Contacts []Contact `json:"contacts"`
}

// CustomerInput carries a customer payload after validation. Nil pointers are
// fields the caller did not send.
type CustomerInput struct {
	CNPJ         *string
	RazaoSocial  *string
	NomeFantasia *string
	CEP          *string
	Logradouro   *string
	Numero       *string
	Complemento  *string
	Bairro       *string
	Cidade       *string
	Estado       *string
	Telefone     *string
	Email        *string
}

// Apply merges the present fields into c.
func (in CustomerInput) Apply(c *Customer) {
	setString(&c.CNPJ, in.CNPJ)
	setString(&c.RazaoSocial, in.RazaoSocial)
	setOptional(&c.NomeFantasia, in.NomeFantasia)
	setString(&c.CEP, in.CEP)
	setString(&c.Logradouro, in.Logradouro)
	setString(&c.Numero, in.Numero)
	setOptional(&c.Complemento, in.Complemento)
	setString(&c.Bairro, in.Bairro)
	setString(&c.Cidade, in.Cidade)
	setString(&c.Estado, in.Estado)
	setOptional(&c.Telefone, in.Telefone)
	setOptional(&c.Email, in.Email)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setOptional(dst **string, v *string) {
	if v != nil {
		s := *v
		*dst = &s
	}
}
