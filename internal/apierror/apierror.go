// Package apierror provides the closed error taxonomy shared by every layer
// and the canonical 4xx/5xx response envelope. All errors returned to clients
// go through this package so that internal details (stack traces, SQL, driver
// codes) never leak.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an error into the fixed set the API can surface.
type Kind int

const (
	ServerError Kind = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
	UnprocessableEntity
)

// HTTPStatus maps a Kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case UnprocessableEntity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case Conflict:
		return "Conflict"
	case UnprocessableEntity:
		return "Unprocessable Entity"
	default:
		return "Server Error"
	}
}

// Error is a classified error. Message is safe to show to clients; Err holds
// the underlying cause and is only attached to responses outside production.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error. When msg is empty the Kind's canonical name is
// used as the wire message.
func E(kind Kind, msg string, err error) *Error {
	if msg == "" {
		msg = kind.String()
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the Kind from any error; unclassified errors are treated as
// ServerError so nothing unexpected reaches the client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ServerError
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

// FromDB translates store-level errors into the taxonomy. Duplicate-key
// violations become Conflict, missing rows become NotFound, everything else
// is a ServerError — driver codes never reach the client.
func FromDB(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return E(NotFound, "", err)
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return E(Conflict, "", err)
	default:
		return E(ServerError, "", err)
	}
}

// isUniqueViolation matches postgres (SQLSTATE 23505) and sqlite unique
// violations surfaced by drivers that bypass gorm's translated errors.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Response is the canonical error envelope for all 4xx/5xx HTTP responses.
// Detail carries the underlying error string outside production only.
type Response struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Detail  string `json:"detail,omitempty"`
}

// Envelope renders err for the wire. includeDetail should be true only in
// non-production environments.
func Envelope(err error, includeDetail bool) Response {
	kind := KindOf(err)
	resp := Response{Message: kind.String(), Code: kind.HTTPStatus()}

	var e *Error
	if errors.As(err, &e) {
		resp.Message = e.Message
		if includeDetail && e.Err != nil {
			resp.Detail = e.Err.Error()
		}
	} else if includeDetail && err != nil {
		resp.Detail = err.Error()
	}
	return resp
}

// New builds an ad-hoc response for middleware that writes directly.
func New(msg string, code int) Response {
	return Response{Message: msg, Code: code}
}

// ValidationResponse wraps field-level validation errors (422).
type ValidationResponse struct {
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationResponse {
	return &ValidationResponse{
		Message: UnprocessableEntity.String(),
		Code:    http.StatusUnprocessableEntity,
		Fields:  fields,
	}
}
