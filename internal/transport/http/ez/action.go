// Package ez registers typed actions on gin groups: bind the input, run the
// handler, render the result or the error in one consistent way.
package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "clicksoft-api/internal/transport/http/middleware"
	resp "clicksoft-api/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

type Binder string

const (
	BindJSON Binder = "json"
	BindNone Binder = "none" // handler reads c.Param itself
)

// NoContent is the output type of actions that answer 204.
type NoContent struct{}

// Action describes one endpoint. I is the bound input, O the rendered output.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Status on success; defaults to 200.
	Status  int
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if a.Binder == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				e.bindError(c, err)
				return
			}
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.Fail(c, err)
			return
		}
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Fail renders err. Internal failures are logged with their cause and
// answered with a generic message.
func (e EZ) Fail(c *gin.Context, err error) {
	status, body := resp.FromError(err)
	if status >= http.StatusInternalServerError {
		e.log.Error("request failed",
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func (e EZ) bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Message(resp.MsgBodyTooLarge))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp.Message(resp.MsgMalformedJSON))
}

// ParamID reads a numeric path parameter. Anything that is not a positive
// integer yields 0, which matches no record.
func ParamID(c *gin.Context, name string) uint {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}
