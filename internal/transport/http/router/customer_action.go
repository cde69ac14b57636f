package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/service"
	httpez "clicksoft-api/internal/transport/http/ez"
	"clicksoft-api/internal/validation"
)

type customerModule struct {
	svc *service.CustomerService
	ez  func(*gin.RouterGroup) httpez.EZ
}

func (m customerModule) Mount(_, protected *gin.RouterGroup) {
	e := m.ez(protected.Group("/customers"))

	httpez.RegisterAction(e, httpez.Action[struct{}, []domain.CustomerWithContacts]{
		Method: http.MethodGet,
		Path:   "",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.CustomerWithContacts, error) {
			return m.svc.List(c.Request.Context())
		},
	})
	httpez.RegisterAction(e, httpez.Action[validation.CustomerPayload, *domain.Customer]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *validation.CustomerPayload) (*domain.Customer, error) {
			return m.svc.Create(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.CustomerWithContacts]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.CustomerWithContacts, error) {
			return m.svc.Get(c.Request.Context(), httpez.ParamID(c, "id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[validation.CustomerPayload, *domain.Customer]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *validation.CustomerPayload) (*domain.Customer, error) {
			return m.svc.Update(c.Request.Context(), httpez.ParamID(c, "id"), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[struct{}, httpez.NoContent]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (httpez.NoContent, error) {
			return httpez.NoContent{}, m.svc.Delete(c.Request.Context(), httpez.ParamID(c, "id"))
		},
	})
}
