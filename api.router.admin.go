package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

// SetupAdminRoutes injects the admin endpoints. The secret endpoint is always
// available while the ops and profiler ones are injected on demand.
func (api *APIHandler) SetupAdminRoutes(router *httprouter.Router, m *Middlewares) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/admin/secret", m.Chain(api.AdminSecret))

	if api.config.OpsEndpointsEnable {
		router.GET("/admin/configs", m.Chain(api.GetConfigs))
		router.GET("/admin/stats", m.Chain(api.GetStatistics))
		router.GET("/admin/maintenance", m.Chain(api.Maintenance))
		router.GET("/admin/debug/vars", m.Chain(GetMemStats))
		router.GET("/admin/debug/gc", m.Chain(api.RunGC))
		router.GET("/admin/debug/fos", m.Chain(api.FreeOSMemory))
	}

	if api.config.ProfilerEndpointsEnable {
		router.GET("/admin/debug/pprof/", m.Chain(api.OpsHandlerWrapper(http.HandlerFunc(pprof.Index))))
		router.GET("/admin/debug/pprof/profile", m.Chain(api.GetCPUProfile))
		router.GET("/admin/debug/pprof/trace", m.Chain(api.GetTraceProfile))
		router.GET("/admin/debug/pprof/symbol", m.Chain(api.GetSymbol))
		router.GET("/admin/debug/pprof/cmdline", m.Chain(api.GetCmdLine))
		router.GET("/admin/debug/pprof/heap", m.Chain(api.OpsHandlerWrapper(pprof.Handler("heap"))))
		router.GET("/admin/debug/pprof/allocs", m.Chain(api.OpsHandlerWrapper(pprof.Handler("allocs"))))
		router.GET("/admin/debug/pprof/goroutine", m.Chain(api.OpsHandlerWrapper(pprof.Handler("goroutine"))))
		router.GET("/admin/debug/pprof/threadcreate", m.Chain(api.OpsHandlerWrapper(pprof.Handler("threadcreate"))))
		router.GET("/admin/debug/pprof/block", m.Chain(api.OpsHandlerWrapper(pprof.Handler("block"))))
		router.GET("/admin/debug/pprof/mutex", m.Chain(api.OpsHandlerWrapper(pprof.Handler("mutex"))))
	}

	return router
}
