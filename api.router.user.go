package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupUserRoutes injects the users related api endpoints.
func (api *APIHandler) SetupUserRoutes(router *httprouter.Router, m *Middlewares) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.POST("/users", m.Chain(api.CreateUser))
	router.GET("/users", m.Chain(api.GetAllUsers))
	router.GET("/users/:id", m.Chain(api.GetOneUser))
	router.PUT("/users/:id", m.Chain(api.UpdateUser))
	router.DELETE("/users/:id", m.Chain(api.DeleteOneUser))
	return router
}
