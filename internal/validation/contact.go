package validation

import "clicksoft-api/internal/domain"

type ContactPayload struct {
	CustomerID *int64  `json:"customerId"`
	Nome       *string `json:"nome"`
	Telefone   *string `json:"telefone"`
	Email      *string `json:"email"`
	Tipo       *string `json:"tipo"`
}

type createContactRules struct {
	CustomerID *int64  `json:"customerId" validate:"required,gt=0"`
	Nome       *string `json:"nome"       validate:"required,min=1,max=255"`
	Telefone   *string `json:"telefone"   validate:"required,min=10,max=15"`
	Email      *string `json:"email"      validate:"required,email,max=255"`
	Tipo       *string `json:"tipo"       validate:"required,oneof=principal secundario"`
}

// customerId is not part of an update; a contact never changes owner.
type updateContactRules struct {
	CustomerID *int64  `json:"customerId" validate:"-"`
	Nome       *string `json:"nome"       validate:"omitnil,min=1,max=255"`
	Telefone   *string `json:"telefone"   validate:"omitnil,min=10,max=15"`
	Email      *string `json:"email"      validate:"omitnil,email,max=255"`
	Tipo       *string `json:"tipo"       validate:"omitnil,oneof=principal secundario"`
}

func (p ContactPayload) normalized() ContactPayload {
	return ContactPayload{
		CustomerID: p.CustomerID,
		Nome:       trimmed(p.Nome),
		Telefone:   trimmed(p.Telefone),
		Email:      trimmed(p.Email),
		Tipo:       p.Tipo,
	}
}

func (p ContactPayload) input() domain.ContactInput {
	in := domain.ContactInput{Nome: p.Nome, Telefone: p.Telefone, Email: p.Email}
	if p.Tipo != nil {
		t := domain.ContactType(*p.Tipo)
		in.Tipo = &t
	}
	return in
}

func CreateContact(p ContactPayload) (domain.ContactInput, error) {
	n := p.normalized()
	if err := check(createContactRules(n)); err != nil {
		return domain.ContactInput{}, err
	}
	in := n.input()
	id := uint(*n.CustomerID)
	in.CustomerID = &id
	return in, nil
}

func UpdateContact(p ContactPayload) (domain.ContactInput, error) {
	n := p.normalized()
	n.CustomerID = nil
	if err := check(updateContactRules(n)); err != nil {
		return domain.ContactInput{}, err
	}
	return n.input(), nil
}

// UnknownCustomer is the failure reported when customerId names no customer.
func UnknownCustomer() error {
	return domain.Validation(invalidPayloadMsg, domain.FieldErrors{"customerId": {"cliente não encontrado"}})
}
