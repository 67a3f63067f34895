package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects the books related api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *Middlewares) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.POST("/books", m.Chain(api.CreateBook))
	router.GET("/books", m.Chain(api.GetAllBooks))
	router.GET("/books/:id", m.Chain(api.GetOneBook))
	router.PUT("/books/:id", m.Chain(api.UpdateBook))
	router.DELETE("/books/:id", m.Chain(api.DeleteOneBook))
	return router
}
