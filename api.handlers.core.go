package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Statistics holds app stats for the admin surface.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
	status    map[int]uint64
	mu        *sync.RWMutex
}

// Maintenance holds app maintenance mode infos.
type Maintenance struct {
	enabled atomic.Bool
	message string
	started time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger      *zap.Logger
	config      *Config
	stats       *Statistics
	mode        *Maintenance
	clock       Clocker
	idsHandler  UIDHandler
	bookService BookServiceProvider
	userService UserServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, ids UIDHandler, bs BookServiceProvider, us UserServiceProvider) *APIHandler {
	m := &Maintenance{}
	m.enabled.Store(false)
	stats.status = make(map[int]uint64)
	stats.mu = &sync.RWMutex{}
	return &APIHandler{
		logger:      logger,
		config:      config,
		stats:       stats,
		mode:        m,
		clock:       clock,
		idsHandler:  ids,
		bookService: bs,
		userService: us,
	}
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Bookshelf api is available. Enjoy :)",
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		core
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (api *APIHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	if err := WriteResponse(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		api.logger.Error("failed to send health response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// NotFound serves any request which does not match a registered route.
func (api *APIHandler) NotFound(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusNotFound)
	if err := json.NewEncoder(w).Encode(
		map[string]string{
			"requestid": requestID,
			"message":   "route does not exist",
			"path":      r.Method + " " + r.URL.Path,
		},
	); err != nil {
		api.logger.Error("failed to send not found response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// MethodNotAllowed serves requests using an unexpected method on a known route.
func (api *APIHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	if err := json.NewEncoder(w).Encode(
		map[string]string{
			"requestid": requestID,
			"message":   "method not allowed on this route",
			"path":      r.Method + " " + r.URL.Path,
		},
	); err != nil {
		api.logger.Error("failed to send method not allowed response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Preflight answers CORS preflight requests. The allow headers themselves
// come from the middlewares chain wrapping this handler.
func (api *APIHandler) Preflight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusNoContent)
}
