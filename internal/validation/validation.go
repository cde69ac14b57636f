// Package validation checks and normalizes request payloads. Functions here
// have no side effects: they either return a fully normalized payload or a
// validation *domain.Error listing the rejected fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"clicksoft-api/internal/domain"
)

const invalidPayloadMsg = "Dados inválidos"

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal("validate payload", err)
	}
	fields := domain.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), reason(fe))
	}
	return domain.Validation(invalidPayloadMsg, fields)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("deve ter exatamente %s caracteres", fe.Param())
	case "email":
		return "deve ser um e-mail válido"
	case "digits":
		return "deve conter apenas dígitos"
	case "oneof":
		return "deve ser um dos valores: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "deve ser um número positivo"
	default:
		return "valor inválido"
	}
}

// trimmed returns a trimmed copy of p. An empty string counts as not sent.
func trimmed(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func upper(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.ToUpper(*p)
	return &s
}
