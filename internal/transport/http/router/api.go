package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"clicksoft-api/internal/core/server"
	"clicksoft-api/internal/service"
	httpez "clicksoft-api/internal/transport/http/ez"
	mdw "clicksoft-api/internal/transport/http/middleware"
	resp "clicksoft-api/internal/transport/http/response"
)

const welcome = "API Clicksoft - Sistema de Gestão de Clientes"

type Options struct {
	Version        string
	Mode           string
	CORSOrigins    []string
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

type Deps struct {
	Log       *zap.Logger
	Auth      *service.AuthService
	Customers *service.CustomerService
	Contacts  *service.ContactService
	Sessions  mdw.Authenticator
	// Registry receives the HTTP metrics and backs /metrics.
	Registry *prometheus.Registry
}

func NewAPIEngine(d Deps, o Options) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := server.NewRouter(l, server.Options{Mode: o.Mode, CORSOrigins: o.CORSOrigins})
	r.Use(
		mdw.RequestID(),
		mdw.NewMetrics(reg).Handler(),
		mdw.AccessLog(l.Named("http")),
		mdw.ConcurrencyLimit(o.MaxConcurrent),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": welcome, "version": o.Version})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Message(resp.MsgRouteNotFound))
	})

	public := r.Group("")
	protected := r.Group("/api")
	protected.Use(mdw.Auth(d.Sessions, l))

	ez := func(g *gin.RouterGroup) httpez.EZ { return httpez.New(g, l) }
	mountAll([]Module{
		authModule{svc: d.Auth, ez: ez},
		customerModule{svc: d.Customers, ez: ez},
		contactModule{svc: d.Contacts, ez: ez},
	}, public, protected)
	return r
}
