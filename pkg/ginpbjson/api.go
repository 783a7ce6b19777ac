// Package ginpbjson exposes the pbjson driver over gin-gonic/gin, the
// way examples/gin-server wires its handlers onto a gin.Engine: routes
// registered up front against one shared struct (there, the package
// var model; here, API's registry and Options), one handler per
// request shape, plus a docs endpoint describing each message's
// accepted JSON shape, and (optionally) a minimal UI pointed at it.
package ginpbjson

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/deepankarm/pbjson/pkg/pbjson"
	"github.com/deepankarm/pbjson/pkg/registry"
)

// API wires a registry of message descriptors to a gin.Engine: a decode
// route per message full name, plus a docs index describing all of them.
type API struct {
	mu       sync.RWMutex
	reg      *registry.Registry
	opts     pbjson.Options
	basePath string
	info     Info
}

// Info describes the service for the docs index.
type Info struct {
	Title       string
	Version     string
	Description string
}

// New builds an API serving messages out of reg. basePath is the route
// prefix decode endpoints are mounted under (e.g. "/decode"); the full
// route for a message becomes basePath+"/"+fullName.
func New(reg *registry.Registry, basePath string, info Info, opts pbjson.Options) *API {
	return &API{reg: reg, opts: opts, basePath: basePath, info: info}
}

// RegisterRoutes adds one POST route per name in the registry (at the
// time of the call -- names registered afterward are not picked up) plus
// the docs index route, to router.
func (api *API) RegisterRoutes(router gin.IRoutes, docsPath string) {
	for _, name := range api.reg.Names() {
		router.POST(api.basePath+"/"+name, api.decodeHandler(name))
	}
	router.GET(docsPath, api.docsHandler())
}
