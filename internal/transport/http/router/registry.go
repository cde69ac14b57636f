package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module mounts one resource's routes. public needs no token; protected
// runs behind the bearer auth middleware.
type Module interface {
	Mount(public, protected *gin.RouterGroup)
}

// prioritizer lets a module control mount order (lower first, default 100).
type prioritizer interface{ Priority() int }

func mountAll(mods []Module, public, protected *gin.RouterGroup) {
	mods = append([]Module(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, protected)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
