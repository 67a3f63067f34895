package main

import (
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// AdminSecret godoc
//
//	@Summary	Fetch the admin greeting
//	@Tags		admin
//	@Produce	json
//	@Param		X-API-Key	header		string	true	"admin api key"
//	@Success	200			{object}	map[string]interface{}
//	@Failure	401			{object}	APIError
//	@Router		/admin/secret [get]
func (api *APIHandler) AdminSecret(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	if err := WriteResponse(w, http.StatusOK, map[string]interface{}{"ok": true, "msg": "Welcome, admin."}); err != nil {
		api.logger.Error("failed to send admin secret response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Maintenance handles requests to enable or disable the maintenance mode of the
// service or to display its current state.
// Enable the maintenance mode : /admin/maintenance?status=enable&msg=message-to-be-displayed-to-users
// Disable the maintenance mode: /admin/maintenance?status=disable
func (api *APIHandler) Maintenance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	var response map[string]interface{}

	q := r.URL.Query()
	mstatus := q.Get("status")

	switch mstatus {
	case "enable":
		api.mode.message = q.Get("msg")
		api.mode.started = api.clock.Now()
		api.mode.enabled.Store(true)
		response = map[string]interface{}{
			"requestid":           requestID,
			"maintenance.started": api.mode.started.Format(time.RFC1123),
			"maintenance.message": api.mode.message,
			"message":             "Maintenance mode enabled successfully.",
		}

	case "disable":
		api.mode.enabled.Store(false)
		api.mode.started = api.clock.Zero()
		api.mode.message = ""
		response = map[string]interface{}{
			"requestid": requestID,
			"message":   "Maintenance mode disabled successfully.",
		}

	default:
		response = map[string]interface{}{
			"requestid":           requestID,
			"maintenance.enabled": api.mode.enabled.Load(),
			"maintenance.message": api.mode.message,
		}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.logger.Error("failed to send maintenance response",
			zap.String("request.id", requestID),
			zap.String("request.maintenance", mstatus),
			zap.Error(err),
		)
	}
}

// export goroutines to be used by expvar handler.
var goroutines = expvar.NewInt("goroutines")

// GetMemStats returns memory statistics with number of goroutines in json.
func GetMemStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	goroutines.Set(int64(runtime.NumGoroutine()))
	expvar.Handler().ServeHTTP(w, r)
}

// RunGC forces the run of the garbage collector asynchronously.
func (api *APIHandler) RunGC(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	go runtime.GC()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]string{
			"called": "go runtime.GC()",
		},
	); err != nil {
		api.logger.Error("failed to send run gc response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// FreeOSMemory forces the garbage collector to and tries to returns the memory
// back to the operating system in an asynchronous fashion.
func (api *APIHandler) FreeOSMemory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	go debug.FreeOSMemory()
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]string{
			"called": "go debug.FreeOSMemory()",
		},
	); err != nil {
		api.logger.Error("failed to send free os memory response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetStatistics provides useful details about the application to the admin users.
// The stats returned by this handler do not contain the admin request which triggered
// that. That is why we remove 1 from the called field value.
func (api *APIHandler) GetStatistics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	api.stats.mu.RLock()
	maintenanceModeStartedTime := api.mode.started.String()
	if api.mode.started == api.clock.Zero() {
		maintenanceModeStartedTime = ""
	}
	err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid":     requestID,
			"app.version":   api.stats.version,
			"app.container": api.stats.container,
			"app.platform":  api.stats.platform,
			"go.version":    api.stats.runtime,
			"called":        atomic.LoadUint64(&api.stats.called) - 1,
			"started":       api.stats.started.Format(time.RFC1123),
			"uptime":        fmt.Sprintf("%.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"maintenance": map[string]interface{}{
				"enabled": api.mode.enabled.Load(),
				"started": maintenanceModeStartedTime,
				"message": api.mode.message,
			},
			"status": api.stats.status,
		},
	)
	api.stats.mu.RUnlock()
	if err != nil {
		api.logger.Error("failed to send statistics response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetConfigs serves current in-use configurations/settings.
func (api *APIHandler) GetConfigs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"configs": api.config,
		},
	); err != nil {
		api.logger.Error("failed to send settings response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// OpsHandlerWrapper turns a standard http.Handler into a httprouter.Handle
// so stdlib debug handlers can be mounted on the router.
func (api *APIHandler) OpsHandlerWrapper(h http.Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}

func (api *APIHandler) GetCPUProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pprof.Profile(w, r)
}

func (api *APIHandler) GetTraceProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pprof.Trace(w, r)
}

func (api *APIHandler) GetSymbol(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pprof.Symbol(w, r)
}

func (api *APIHandler) GetCmdLine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pprof.Cmdline(w, r)
}
