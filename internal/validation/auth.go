package validation

import "strings"

type RegisterPayload struct {
	FullName string `json:"fullName" validate:"required,min=3,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

type LoginPayload struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func Register(p RegisterPayload) (RegisterPayload, error) {
	n := RegisterPayload{
		FullName: strings.TrimSpace(p.FullName),
		Email:    strings.TrimSpace(p.Email),
		Password: p.Password,
	}
	if err := check(n); err != nil {
		return RegisterPayload{}, err
	}
	n.Email = NormalizeEmail(n.Email)
	return n, nil
}

func Login(p LoginPayload) (LoginPayload, error) {
	n := LoginPayload{Email: strings.TrimSpace(p.Email), Password: p.Password}
	if err := check(n); err != nil {
		return LoginPayload{}, err
	}
	n.Email = NormalizeEmail(n.Email)
	return n, nil
}
