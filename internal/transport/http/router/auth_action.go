package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/service"
	httpez "clicksoft-api/internal/transport/http/ez"
	mdw "clicksoft-api/internal/transport/http/middleware"
	resp "clicksoft-api/internal/transport/http/response"
	"clicksoft-api/internal/validation"
)

const (
	msgRegistered = "Usuário criado com sucesso"
	msgLoggedIn   = "Login realizado com sucesso"
	msgLoggedOut  = "Logout realizado com sucesso"
)

type registerOut struct {
	Message string             `json:"message"`
	User    domain.UserSummary `json:"user"`
}

type loginOut struct {
	Message string `json:"message"`
	service.LoginResult
}

type meOut struct {
	User domain.UserSummary `json:"user"`
}

type authModule struct {
	svc *service.AuthService
	ez  func(*gin.RouterGroup) httpez.EZ
}

func (authModule) Priority() int { return 10 }

func (m authModule) Mount(public, protected *gin.RouterGroup) {
	pub := m.ez(public.Group("/auth"))
	httpez.RegisterAction(pub, httpez.Action[validation.RegisterPayload, registerOut]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *validation.RegisterPayload) (registerOut, error) {
			u, err := m.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{Message: msgRegistered, User: u}, nil
		},
	})
	httpez.RegisterAction(pub, httpez.Action[validation.LoginPayload, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *validation.LoginPayload) (loginOut, error) {
			res, err := m.svc.Login(c.Request.Context(), *in)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Message: msgLoggedIn, LoginResult: *res}, nil
		},
	})

	priv := m.ez(protected.Group("/auth"))
	httpez.RegisterAction(priv, httpez.Action[struct{}, resp.Body]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.Body, error) {
			if err := m.svc.Logout(c.Request.Context(), mdw.PrincipalFrom(c)); err != nil {
				return resp.Body{}, err
			}
			return resp.Message(msgLoggedOut), nil
		},
	})
	httpez.RegisterAction(priv, httpez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			u, err := m.svc.Me(c.Request.Context(), mdw.PrincipalFrom(c))
			if err != nil {
				return meOut{}, err
			}
			return meOut{User: u}, nil
		},
	})
}
