package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// MiddlewareFunc is a custom type for ease of use.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a custom type to represent a stack of
// middleware functions used to build a single chain.
type Middlewares []MiddlewareFunc

// RequestsCounterMiddleware increments the number of received requests statistics and add this
// new value to the request context to be used during logging as `request.num` field.
func (api *APIHandler) RequestsCounterMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), RequestNumberContextKey, atomic.AddUint64(&api.stats.called, 1))
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// RequestIDMiddleware generates and add a unique id to the request context.
func (api *APIHandler) RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := api.idsHandler.Generate(RequestIDPrefix)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// ProcessTimeMiddleware measures how long serving each request takes and reports
// it to the caller into the X-Process-Time response header. Once the response is
// sent, it records the final status code into the statistics and emits a single
// log entry describing the full request.
func (api *APIHandler) ProcessTimeMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		cw := NewTimedResponseWriter(w, start)
		next(cw, r, ps)

		api.stats.mu.Lock()
		api.stats.status[cw.Status()]++
		api.stats.mu.Unlock()

		api.logger.Info(
			"request",
			zap.String("request.id", GetValueFromContext(r.Context(), RequestIDContextKey)),
			zap.Uint64("request.num", GetRequestNumberFromContext(r.Context())),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.String("request.ip", GetRequestSourceIP(r)),
			zap.String("request.agent", r.UserAgent()),
			zap.Int("response.status", cw.Status()),
			zap.Int("response.bytes", cw.Bytes()),
			zap.Duration("request.duration", time.Since(start)),
		)
	}
}

// CORSMiddleware intercepts each incoming HTTP calls then apply cors headers on it.
func CORSMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE, PATCH, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, User-Agent, Accept-Language, Referer, DNT, Connection, Pragma, Cache-Control, TE")
		next(w, r, ps)
	}
}

// PanicRecoveryMiddleware catches any panic during the request lifecycle and produces
// an error log for further analysis. It sends a failure response to the client with 500.
func (api *APIHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		recovery := func() {
			if err := recover(); err != nil {
				requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
				api.logger.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", err))
				errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to process the request.", EmptyData)
				if err := WriteErrorResponse(w, errResp); err != nil {
					api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
				}
			}
		}
		defer recovery()
		next(w, r, ps)
	}
}

// MaintenanceCheckMiddleware short-circuits public requests with a predefined message
// when the service is under maintenance. Admin endpoints stay reachable so the
// maintenance mode can still be disabled.
func (api *APIHandler) MaintenanceCheckMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if api.mode.enabled.Load() && !strings.HasPrefix(r.URL.Path, api.config.Admin.PathPrefix) {
			requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
			w.Header().Set("Content-Type", "application/json; charset=UTF-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			if err := json.NewEncoder(w).Encode(
				map[string]interface{}{
					"message": "service currently unavailable.",
					"reason":  api.mode.message,
					"since":   api.mode.started.Format(time.RFC1123),
				},
			); err != nil {
				api.logger.Error("failed to send maintenance response", zap.String("request.id", requestID), zap.Error(err))
			}
			return
		}
		next(w, r, ps)
	}
}

// AdminGuardMiddleware rejects any request targeting an admin endpoint unless it
// carries the expected api key into the X-API-Key header. The check runs on the
// path prefix so unknown admin paths are rejected the same way as known ones.
func (api *APIHandler) AdminGuardMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if strings.HasPrefix(r.URL.Path, api.config.Admin.PathPrefix) && r.Header.Get("X-API-Key") != api.config.Admin.APIKey {
			requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
			api.logger.Error("rejected admin request",
				zap.String("request.id", requestID),
				zap.String("request.path", r.URL.Path),
				zap.String("request.ip", GetRequestSourceIP(r)),
			)
			errResp := NewAPIError(requestID, http.StatusUnauthorized, "Unauthorized (missing/invalid X-API-Key)", EmptyData)
			if err := WriteErrorResponse(w, errResp); err != nil {
				api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
			}
			return
		}
		next(w, r, ps)
	}
}

// MiddlewaresStack provides the ordered list of middlewares each request goes
// through, from the outermost to the innermost one.
func (api *APIHandler) MiddlewaresStack() *Middlewares {
	return &Middlewares{
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		api.ProcessTimeMiddleware,
		CORSMiddleware,
		api.PanicRecoveryMiddleware,
		api.MaintenanceCheckMiddleware,
		api.AdminGuardMiddleware,
	}
}

// Chain wraps a given httprouter.Handle with a list of middlewares.
// It does by starting from the last middleware from the list.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}

// WrapChain adapts a chained httprouter.Handle into a standard http.Handler so
// the router fallback handlers go through the same middlewares as the routes.
func WrapChain(h httprouter.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r, nil)
	})
}
