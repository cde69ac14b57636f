package response

import (
	"net/http"

	"clicksoft-api/internal/domain"
)

// statusByKind is the single place error kinds become HTTP status codes.
var statusByKind = map[domain.Kind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindInternal:     http.StatusInternalServerError,
}

const (
	MsgInternal         = "Erro interno do servidor"
	MsgMalformedJSON    = "JSON inválido"
	MsgBodyTooLarge     = "Corpo da requisição muito grande"
	MsgBusy             = "Servidor ocupado, tente novamente"
	MsgTimeout          = "Tempo de requisição esgotado"
	MsgNotAuthenticated = "Não autenticado"
	MsgInvalidToken     = "Token inválido"
	MsgRouteNotFound    = "Rota não encontrada"
)

func StatusOf(k domain.Kind) int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
