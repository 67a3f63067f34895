package main

import (
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"

	_ "shelfd/docs"
)

// SetupRoutes injects the service, books, users and admin related endpoints.
// The fallback handlers go through the same middlewares chain as the routes
// so every response carries the processing time and cors headers.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *Middlewares) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = WrapChain(m.Chain(api.NotFound))
	router.MethodNotAllowed = WrapChain(m.Chain(api.MethodNotAllowed))
	router.GlobalOPTIONS = WrapChain(m.Chain(api.Preflight))
	router.GET("/", m.Chain(api.Index))
	router.GET("/status", m.Chain(api.Status))
	router.GET("/health", m.Chain(api.Health))
	api.SetupBookRoutes(router, m)
	api.SetupUserRoutes(router, m)
	api.SetupAdminRoutes(router, m)
	router.GET("/swagger/*any", m.Chain(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}
