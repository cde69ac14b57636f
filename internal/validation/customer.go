package validation

import "clicksoft-api/internal/domain"

// CustomerPayload is the request body of customer create and update.
type CustomerPayload struct {
	CNPJ         *string `json:"cnpj"`
	RazaoSocial  *string `json:"razaoSocial"`
	NomeFantasia *string `json:"nomeFantasia"`
	CEP          *string `json:"cep"`
	Logradouro   *string `json:"logradouro"`
	Numero       *string `json:"numero"`
	Complemento  *string `json:"complemento"`
	Bairro       *string `json:"bairro"`
	Cidade       *string `json:"cidade"`
	Estado       *string `json:"estado"`
	Telefone     *string `json:"telefone"`
	Email        *string `json:"email"`
}

type createCustomerRules struct {
	CNPJ         *string `json:"cnpj"         validate:"required,len=14,digits"`
	RazaoSocial  *string `json:"razaoSocial"  validate:"required,min=1,max=255"`
	NomeFantasia *string `json:"nomeFantasia" validate:"omitnil,min=1,max=255"`
	CEP          *string `json:"cep"          validate:"required,len=8,digits"`
	Logradouro   *string `json:"logradouro"   validate:"required,min=1,max=255"`
	Numero       *string `json:"numero"       validate:"required,min=1,max=20"`
	Complemento  *string `json:"complemento"  validate:"omitnil,max=100"`
	Bairro       *string `json:"bairro"       validate:"required,min=1,max=100"`
	Cidade       *string `json:"cidade"       validate:"required,min=1,max=100"`
	Estado       *string `json:"estado"       validate:"required,len=2"`
	Telefone     *string `json:"telefone"     validate:"omitnil,max=15"`
	Email        *string `json:"email"        validate:"omitnil,email,max=255"`
}

type updateCustomerRules struct {
	CNPJ         *string `json:"cnpj"         validate:"omitnil,len=14,digits"`
	RazaoSocial  *string `json:"razaoSocial"  validate:"omitnil,min=1,max=255"`
	NomeFantasia *string `json:"nomeFantasia" validate:"omitnil,min=1,max=255"`
	CEP          *string `json:"cep"          validate:"omitnil,len=8,digits"`
	Logradouro   *string `json:"logradouro"   validate:"omitnil,min=1,max=255"`
	Numero       *string `json:"numero"       validate:"omitnil,min=1,max=20"`
	Complemento  *string `json:"complemento"  validate:"omitnil,max=100"`
	Bairro       *string `json:"bairro"       validate:"omitnil,min=1,max=100"`
	Cidade       *string `json:"cidade"       validate:"omitnil,min=1,max=100"`
	Estado       *string `json:"estado"       validate:"omitnil,len=2"`
	Telefone     *string `json:"telefone"     validate:"omitnil,max=15"`
	Email        *string `json:"email"        validate:"omitnil,email,max=255"`
}

func (p CustomerPayload) normalized() CustomerPayload {
	return CustomerPayload{
		CNPJ:         trimmed(p.CNPJ),
		RazaoSocial:  trimmed(p.RazaoSocial),
		NomeFantasia: trimmed(p.NomeFantasia),
		CEP:          trimmed(p.CEP),
		Logradouro:   trimmed(p.Logradouro),
		Numero:       trimmed(p.Numero),
		Complemento:  trimmed(p.Complemento),
		Bairro:       trimmed(p.Bairro),
		Cidade:       trimmed(p.Cidade),
		Estado:       upper(trimmed(p.Estado)),
		Telefone:     trimmed(p.Telefone),
		Email:        trimmed(p.Email),
	}
}

func (p CustomerPayload) input() domain.CustomerInput {
	return domain.CustomerInput{
		CNPJ:         p.CNPJ,
		RazaoSocial:  p.RazaoSocial,
		NomeFantasia: p.NomeFantasia,
		CEP:          p.CEP,
		Logradouro:   p.Logradouro,
		Numero:       p.Numero,
		Complemento:  p.Complemento,
		Bairro:       p.Bairro,
		Cidade:       p.Cidade,
		Estado:       p.Estado,
		Telefone:     p.Telefone,
		Email:        p.Email,
	}
}

// CreateCustomer requires every mandatory customer field.
func CreateCustomer(p CustomerPayload) (domain.CustomerInput, error) {
	n := p.normalized()
	if err := check(createCustomerRules(n)); err != nil {
		return domain.CustomerInput{}, err
	}
	return n.input(), nil
}

// UpdateCustomer accepts any subset of fields, each checked like on create.
func UpdateCustomer(p CustomerPayload) (domain.CustomerInput, error) {
	n := p.normalized()
	if err := check(updateCustomerRules(n)); err != nil {
		return domain.CustomerInput{}, err
	}
	return n.input(), nil
}
