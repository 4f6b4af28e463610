package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request-boundary error taxonomy. Handlers return one of these and let
// writeError pick the status; storage-layer errors fall through to a logged
// 500 so internals never leak to the client.

// ValidationError reports malformed or missing input with per-field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for f, msg := range e.Fields {
		return f + ": " + msg
	}
	return "invalid input"
}

func validationErr(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// AuthenticationError means the presented credentials are wrong.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string { return e.Reason }

// AuthorizationError means a valid identity lacks rights, or no identity was
// presented on a protected operation.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// writeError maps a taxonomy error onto the client response.
func writeError(c *gin.Context, err error) {
	var ve *ValidationError
	var authn *AuthenticationError
	var authz *AuthorizationError
	var nf *NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.As(err, &authn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authn.Reason})
	case errors.As(err, &authz):
		c.JSON(http.StatusForbidden, gin.H{"error": authz.Reason})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
