package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clicksoft-api/internal/core/auth"
	"clicksoft-api/internal/service"
	"clicksoft-api/internal/testutil/memstore"
)

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
	store  *memstore.Store
	tokens *memstore.Tokens
}

func newHarness(t *testing.T) *apiHarness {
	t.Helper()
	store, tokens := memstore.New(), memstore.NewTokens()
	sessions := auth.NewSessions(&auth.JWTer{Secret: []byte("test"), Issuer: "test", TTL: time.Hour}, tokens, nil)
	d := service.Deps{Store: store}
	authSvc, err := service.NewAuthService(d, sessions, bcrypt.MinCost)
	require.NoError(t, err)

	engine := NewAPIEngine(Deps{
		Auth:      authSvc,
		Customers: service.NewCustomerService(d),
		Contacts:  service.NewContactService(d),
		Sessions:  sessions,
	}, Options{Version: "1.0.0", Mode: gin.TestMode, MaxConcurrent: 16, MaxBodyBytes: 1 << 16, RequestTimeout: 5 * time.Second})
	return &apiHarness{t: t, engine: engine, store: store, tokens: tokens}
}

func (h *apiHarness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(h.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type userJSON struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// login registers a user and returns a fresh token.
func (h *apiHarness) login(email string) string {
	h.t.Helper()
	w := h.do(http.MethodPost, "/auth/register", "", map[string]string{"fullName": "Ana Silva", "email": email, "password": "secret123"})
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	w = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](h.t, w).Token
}

var acme = map[string]any{
	"cnpj": "12345678000199", "razaoSocial": "Acme", "cep": "01310100", "logradouro": "Av Paulista",
	"numero": "1", "bairro": "Bela Vista", "cidade": "São Paulo", "estado": "sp",
}

type customerJSON struct {
	ID           uint          `json:"id"`
	CNPJ         string        `json:"cnpj"`
	RazaoSocial  string        `json:"razaoSocial"`
	NomeFantasia *string       `json:"nomeFantasia"`
	Estado       string        `json:"estado"`
	Cidade       string        `json:"cidade"`
	Contacts     []contactJSON `json:"contacts"`
}

type contactJSON struct {
	ID         uint          `json:"id"`
	CustomerID uint          `json:"customerId"`
	Nome       string        `json:"nome"`
	Tipo       string        `json:"tipo"`
	Customer   *customerJSON `json:"customer"`
}

type errorJSON struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func TestPublicEndpoints(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"API Clicksoft - Sistema de Gestão de Clientes","version":"1.0.0"}`, w.Body.String())

	w = h.do(http.MethodGet, "/health", "", nil)
	assert.JSONEq(t, `{"ok":1}`, w.Body.String())

	w = h.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	w = h.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Rota não encontrada", decode[errorJSON](t, w).Message)
}

func TestRegisterAndLogin(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/auth/register", "", map[string]string{"fullName": "Ana Silva", "email": "ANA@x.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[struct {
		Message string   `json:"message"`
		User    userJSON `json:"user"`
	}](t, w)
	assert.Equal(t, "Usuário criado com sucesso", reg.Message)
	assert.Equal(t, "ana@x.com", reg.User.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = h.do(http.MethodPost, "/auth/register", "", map[string]string{"fullName": "Ana Silva", "email": "ana@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email já cadastrado", decode[errorJSON](t, w).Message)

	w = h.do(http.MethodPost, "/auth/register", "", map[string]string{"fullName": "A", "email": "x", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	e := decode[errorJSON](t, w)
	assert.Len(t, e.Errors, 3)

	w = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@x.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[struct {
		Message string   `json:"message"`
		Token   string   `json:"token"`
		User    userJSON `json:"user"`
	}](t, w)
	assert.Equal(t, "Login realizado com sucesso", login.Message)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, reg.User, login.User)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	h := newHarness(t)
	h.login("ana@x.com")

	wrongPassword := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@x.com", "password": "wrong-pass"})
	unknownEmail := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "bob@x.com", "password": "secret123"})
	invalid := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "bob", "password": ""})

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail, invalid} {
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"Credenciais inválidas"}`, w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/customers"},
		{http.MethodPost, "/api/customers"},
		{http.MethodGet, "/api/customers/1"},
		{http.MethodPut, "/api/customers/1"},
		{http.MethodDelete, "/api/customers/1"},
		{http.MethodGet, "/api/customers/1/contacts"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodGet, "/api/contacts/1"},
		{http.MethodPut, "/api/contacts/1"},
		{http.MethodDelete, "/api/contacts/1"},
	}
	for _, r := range routes {
		w := h.do(r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)

		w = h.do(r.method, r.path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
		assert.Equal(t, "Token inválido", decode[errorJSON](t, w).Message)
	}
}

func TestMeAndLogout(t *testing.T) {
	h := newHarness(t)
	first := h.login("ana@x.com")

	w := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@x.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[struct {
		Token string `json:"token"`
	}](t, w).Token

	w = h.do(http.MethodGet, "/api/auth/me", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User userJSON `json:"user"`
	}](t, w)
	assert.Equal(t, "ana@x.com", me.User.Email)

	w = h.do(http.MethodPost, "/api/auth/logout", first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logout realizado com sucesso"}`, w.Body.String())

	w = h.do(http.MethodGet, "/api/auth/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logout is per session
	w = h.do(http.MethodGet, "/api/auth/me", second, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomerCRUD(t *testing.T) {
	h := newHarness(t)
	tok := h.login("ana@x.com")

	w := h.do(http.MethodGet, "/api/customers", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = h.do(http.MethodPost, "/api/customers", tok, acme)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[customerJSON](t, w)
	assert.Equal(t, "SP", created.Estado)
	assert.Nil(t, created.NomeFantasia)

	w = h.do(http.MethodPost, "/api/customers", tok, acme)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CNPJ já cadastrado", decode[errorJSON](t, w).Message)

	w = h.do(http.MethodGet, fmt.Sprintf("/api/customers/%d", created.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[customerJSON](t, w)
	assert.Equal(t, created.CNPJ, got.CNPJ)
	assert.Equal(t, "SP", got.Estado)
	assert.Contains(t, w.Body.String(), `"contacts":[]`)

	w = h.do(http.MethodPut, fmt.Sprintf("/api/customers/%d", created.ID), tok, map[string]any{"cidade": "Campinas", "nomeFantasia": "Acme Co"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decode[customerJSON](t, w)
	assert.Equal(t, "Campinas", upd.Cidade)
	assert.Equal(t, "Acme", upd.RazaoSocial)
	require.NotNil(t, upd.NomeFantasia)
	assert.Equal(t, "Acme Co", *upd.NomeFantasia)
	assert.NotContains(t, w.Body.String(), "contacts")

	w = h.do(http.MethodPut, fmt.Sprintf("/api/customers/%d", created.ID), tok, map[string]any{"cep": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorJSON](t, w).Errors, "cep")

	w = h.do(http.MethodPut, fmt.Sprintf("/api/customers/%d", created.ID), tok, `{"cidade":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{"/api/customers/999", "/api/customers/abc"} {
		w = h.do(http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Cliente não encontrado", decode[errorJSON](t, w).Message)
	}

	w = h.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.ID), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = h.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerValidationErrors(t *testing.T) {
	h := newHarness(t)
	tok := h.login("ana@x.com")

	w := h.do(http.MethodPost, "/api/customers", tok, map[string]any{"cnpj": "12.345.678/0001-99", "estado": "São Paulo"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := decode[errorJSON](t, w)
	for _, f := range []string{"cnpj", "razaoSocial", "cep", "logradouro", "numero", "bairro", "cidade", "estado"} {
		assert.Contains(t, e.Errors, f)
	}
	assert.Equal(t, 0, len(decode[[]customerJSON](t, h.do(http.MethodGet, "/api/customers", tok, nil))))
}

func TestContactFlow(t *testing.T) {
	h := newHarness(t)
	tok := h.login("ana@x.com")

	w := h.do(http.MethodPost, "/api/customers", tok, acme)
	require.Equal(t, http.StatusCreated, w.Code)
	cust := decode[customerJSON](t, w)

	newContact := map[string]any{"customerId": cust.ID, "nome": "Maria", "telefone": "11987654321", "email": "maria@x.com", "tipo": "principal"}
	w = h.do(http.MethodPost, "/api/contacts", tok, newContact)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ct := decode[contactJSON](t, w)
	assert.Equal(t, cust.ID, ct.CustomerID)
	require.NotNil(t, ct.Customer)
	assert.Equal(t, cust.CNPJ, ct.Customer.CNPJ)

	missing := map[string]any{"customerId": 999, "nome": "Maria", "telefone": "11987654321", "email": "maria@x.com", "tipo": "principal"}
	w = h.do(http.MethodPost, "/api/contacts", tok, missing)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorJSON](t, w).Errors, "customerId")
	assert.Equal(t, 1, h.store.ContactCount())

	w = h.do(http.MethodGet, fmt.Sprintf("/api/customers/%d/contacts", cust.ID), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]contactJSON](t, w)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Customer)

	w = h.do(http.MethodGet, "/api/customers/999/contacts", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = h.do(http.MethodPut, fmt.Sprintf("/api/contacts/%d", ct.ID), tok, map[string]any{"tipo": "secundario"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decode[contactJSON](t, w)
	assert.Equal(t, "secundario", upd.Tipo)
	assert.Equal(t, "Maria", upd.Nome)
	require.NotNil(t, upd.Customer)

	w = h.do(http.MethodPut, fmt.Sprintf("/api/contacts/%d", ct.ID), tok, map[string]any{"tipo": "outro"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/api/contacts/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contato não encontrado", decode[errorJSON](t, w).Message)

	// deleting the customer takes its contacts along
	w = h.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", cust.ID), tok, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = h.do(http.MethodGet, fmt.Sprintf("/api/contacts/%d", ct.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodGet, fmt.Sprintf("/api/customers/%d/contacts", cust.ID), tok, nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestContactDelete(t *testing.T) {
	h := newHarness(t)
	tok := h.login("ana@x.com")
	cust := decode[customerJSON](t, h.do(http.MethodPost, "/api/customers", tok, acme))
	ct := decode[contactJSON](t, h.do(http.MethodPost, "/api/contacts", tok, map[string]any{
		"customerId": cust.ID, "nome": "Maria", "telefone": "11987654321", "email": "maria@x.com", "tipo": "principal",
	}))

	w := h.do(http.MethodDelete, fmt.Sprintf("/api/contacts/%d", ct.ID), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = h.do(http.MethodDelete, fmt.Sprintf("/api/contacts/%d", ct.ID), tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, fmt.Sprintf("/api/customers/%d", cust.ID), tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	h := newHarness(t)
	tok := h.login("ana@x.com")
	h.store.Err = fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused")

	w := h.do(http.MethodGet, "/api/customers", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Erro interno do servidor"}`, w.Body.String())
}
