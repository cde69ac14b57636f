package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clicksoft-api/internal/domain"
	"clicksoft-api/internal/service"
	httpez "clicksoft-api/internal/transport/http/ez"
	"clicksoft-api/internal/validation"
)

type contactModule struct {
	svc *service.ContactService
	ez  func(*gin.RouterGroup) httpez.EZ
}

func (m contactModule) Mount(_, protected *gin.RouterGroup) {
	// nested under the customer resource; gin requires the same wildcard name
	// as the sibling /customers/:id routes
	nested := m.ez(protected.Group("/customers"))
	httpez.RegisterAction(nested, httpez.Action[struct{}, []domain.ContactWithCustomer]{
		Method: http.MethodGet,
		Path:   "/:id/contacts",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ContactWithCustomer, error) {
			return m.svc.ListByCustomer(c.Request.Context(), httpez.ParamID(c, "id"))
		},
	})

	e := m.ez(protected.Group("/contacts"))
	httpez.RegisterAction(e, httpez.Action[validation.ContactPayload, *domain.ContactWithCustomer]{
		Method: http.MethodPost,
		Path:   "",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *validation.ContactPayload) (*domain.ContactWithCustomer, error) {
			return m.svc.Create(c.Request.Context(), *in)
		},
	})
	httpez.RegisterAction(e, httpez.Action[struct{}, *domain.ContactWithCustomer]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.ContactWithCustomer, error) {
			return m.svc.Get(c.Request.Context(), httpez.ParamID(c, "id"))
		},
	})
	httpez.RegisterAction(e, httpez.Action[validation.ContactPayload, *domain.ContactWithCustomer]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *validation.ContactPayload) (*domain.ContactWithCustomer, error) {
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
