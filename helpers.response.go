package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var EmptyData = struct{}{}

// TimedResponseWriter is a wrapper for http.ResponseWriter. It records
// response details like status code and body size and stamps the
// X-Process-Time header right before the headers are flushed, so every
// reply reports its own processing duration.
type TimedResponseWriter struct {
	http.ResponseWriter
	start time.Time
	code  int
	bytes int
	wrote bool
}

// NewTimedResponseWriter provides a TimedResponseWriter with 200 as status code.
func NewTimedResponseWriter(rw http.ResponseWriter, start time.Time) *TimedResponseWriter {
	return &TimedResponseWriter{
		ResponseWriter: rw,
		start:          start,
		code:           http.StatusOK,
	}
}

// Header implements http.Header interface.
func (tw *TimedResponseWriter) Header() http.Header {
	return tw.ResponseWriter.Header()
}

// WriteHeader implements http.WriteHeader interface. The elapsed time
// header must be set before the underlying writer flushes the headers.
func (tw *TimedResponseWriter) WriteHeader(code int) {
	if tw.wrote {
		return
	}
	tw.code = code
	tw.wrote = true
	elapsed := float64(time.Since(tw.start).Nanoseconds()) / 1e6
	tw.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", elapsed))
	tw.ResponseWriter.WriteHeader(code)
}

// Write implements http.Write interface.
func (tw *TimedResponseWriter) Write(bytes []byte) (int, error) {
	if !tw.wrote {
		tw.WriteHeader(tw.code)
	}
	n, err := tw.ResponseWriter.Write(bytes)
	tw.bytes += n
	return n, err
}

// Status returns the written status code.
func (tw *TimedResponseWriter) Status() int {
	return tw.code
}

// Bytes returns bytes written as response body.
func (tw *TimedResponseWriter) Bytes() int {
	return tw.bytes
}

// Unwrap returns native response writer and used by
// the http.ResponseController during its operation.
func (tw *TimedResponseWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}

// APIError is the data model sent when an error occurred during request processing.
type APIError struct {
	RequestID string      `json:"requestid"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}

func NewAPIError(requestid string, status int, message string, data interface{}) *APIError {
	return &APIError{
		RequestID: requestid,
		Status:    status,
		Message:   message,
		Data:      data,
	}
}

// WriteErrorResponse is used to send an error response to the client.
func WriteErrorResponse(w http.ResponseWriter, errResp *APIError) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(errResp.Status)
	return json.NewEncoder(w).Encode(errResp)
}

// WriteResponse is used to send a success api response to the client. The
// record or collection is serialized as-is, without any envelope around it.
func WriteResponse(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
