package response

import (
	"errors"

	"clicksoft-api/internal/domain"
)

// Body is the shape of every error response and of message-only successes.
type Body struct {
	Message string             `json:"message"`
	Errors  domain.FieldErrors `json:"errors,omitempty"`
}

func Message(msg string) Body { return Body{Message: msg} }

// FromError maps err to its status and public body. Internal causes are never
// exposed; the caller is expected to log them.
func FromError(err error) (int, Body) {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind == domain.KindInternal {
		return StatusOf(domain.KindInternal), Message(MsgInternal)
	}
	b := Body{Message: de.Msg}
	if de.Kind == domain.KindValidation {
		b.Errors = de.Fields
	}
	return StatusOf(de.Kind), b
}
