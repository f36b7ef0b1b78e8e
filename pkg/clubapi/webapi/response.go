package webapi

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Response is the body of every API response.
type Response struct {
	Success  bool              `json:"success"`
	Data     interface{}       `json:"data,omitempty"`
	Error    string            `json:"error,omitempty"`
	Message  string            `json:"message,omitempty"`
	Details  []rules.Violation `json:"details,omitempty"`
	Warnings []rules.Violation `json:"warnings,omitempty"`
}

// APIError is an error with the status and body it should produce.
type APIError struct {
	Status  int
	Message string
	Details []rules.Violation
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}

	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewAPIError(status int, message string, details ...rules.Violation) *APIError {
	return &APIError{Status: status, Message: message, Details: details}
}

func validationError(details ...rules.Violation) *APIError {
	return NewAPIError(http.StatusBadRequest, "Validation failed", details...)
}

func notFound(what string) *APIError {
	return NewAPIError(http.StatusNotFound, what+" not found")
}

func success(ctx echo.Context, status int, data interface{}) error {
	return ctx.JSON(status, Response{Success: true, Data: data})
}

func successWithWarnings(ctx echo.Context, status int, data interface{}, warnings []rules.Violation) error {
	return ctx.JSON(status, Response{Success: true, Data: data, Warnings: warnings})
}

// HTTPErrorHandler writes the response for an error returned by a handler or
// middleware. Errors it cannot classify are logged and reported as a bare 500.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status, resp := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", ctx.Request().URL.Path).Error("request failed")
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(status)
	} else {
		err = ctx.JSON(status, resp)
	}

	if err != nil {
		log.WithError(err).Error("unable to write error response")
	}
}

func errorResponse(err error) (int, Response) {
	var (
		apiErr        *APIError
		violation     *rules.Violation
		validationErr validator.ValidationErrors
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Status, Response{Error: apiErr.Message, Details: apiErr.Details}

	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Response{Error: "Validation failed", Details: toViolations(validationErr)}

	case errors.As(err, &violation):
		return http.StatusBadRequest, Response{Error: "Validation failed", Message: violation.Message, Details: []rules.Violation{*violation}}

	case errors.Is(err, clubauth.ErrUnauthenticated):
		return http.StatusUnauthorized, Response{Error: "Authentication required"}

	case errors.Is(err, clubauth.ErrClubContextRequired):
		return http.StatusBadRequest, Response{Error: "Club context required", Message: "Select a club or pass clubId"}

	case errors.Is(err, clubauth.ErrClubMismatch):
		return http.StatusForbidden, Response{Error: "Club mismatch", Message: "The requested club is not the selected club"}

	case errors.Is(err, clubauth.ErrAccessDenied):
		return http.StatusForbidden, Response{Error: "Access denied", Message: "You do not have access to this club"}

	case errors.Is(err, clubauth.ErrInsufficientPermissions):
		return http.StatusForbidden, Response{Error: "Insufficient permissions", Message: "Your role does not allow this action"}

	case errors.Is(err, stor.ErrNotFound):
		return http.StatusNotFound, Response{Error: "Not found"}

	case errors.Is(err, stor.ErrDuplicate):
		return http.StatusConflict, Response{Error: "Already exists"}

	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		return httpErr.Code, Response{Error: msg}

	default:
		return http.StatusInternalServerError, Response{Error: "Internal server error"}
	}
}
