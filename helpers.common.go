package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(RequestNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// ParseRecordID converts a path parameter into a record identifier.
// Records ids are positive integers assigned by the shelf counters.
func ParseRecordID(param string) (int64, error) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("record id must be a positive integer")
	}
	return id, nil
}

// DecodeCreateOrUpdateBookRequestBody is a helper function to read the content of a book creation or update request.
func DecodeCreateOrUpdateBookRequestBody(r *http.Request, book *Book) error {
	if r.Body == nil {
		return errors.New("invalid book request body")
	}
	return json.NewDecoder(r.Body).Decode(book)
}

// ValidateBookRequestBody is a helper function to check if the content of a book creation or update request is valid.
func ValidateBookRequestBody(book *Book) error {
	if len(book.Title) == 0 {
		return missingFieldError("title")
	}

	if len(book.Author) == 0 {
		return missingFieldError("author")
	}

	if book.Year == 0 {
		return missingFieldError("year")
	}

	if len(book.Genre) == 0 {
		return missingFieldError("genre")
	}

	if book.Price < 0 {
		return errors.New("price cannot be negative")
	}

	return nil
}

// DecodeCreateOrUpdateUserRequestBody is a helper function to read the content of a user creation or update request.
func DecodeCreateOrUpdateUserRequestBody(r *http.Request, user *User) error {
	if r.Body == nil {
		return errors.New("invalid user request body")
	}
	return json.NewDecoder(r.Body).Decode(user)
}

// ValidateUserRequestBody is a helper function to check if the content of a user
// creation or update request is valid. A missing role is not an error, it falls
// back to the default reader role.
func ValidateUserRequestBody(user *User) error {
	if len(user.Name) == 0 {
		return missingFieldError("name")
	}

	if len(user.Email) == 0 {
		return missingFieldError("email")
	}

	if len(user.Role) == 0 {
		user.Role = DefaultUserRole
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
