package webapi

import (
	"net/http"
	"testing"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponseStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "APIError", err: NewAPIError(http.StatusConflict, "taken"), status: http.StatusConflict},
		{name: "Violation", err: rules.NewViolation("name", "bad"), status: http.StatusBadRequest},
		{name: "Unauthenticated", err: errors.Wrap(clubauth.ErrUnauthenticated, "token expired"), status: http.StatusUnauthorized},
		{name: "ClubContextRequired", err: clubauth.ErrClubContextRequired, status: http.StatusBadRequest},
		{name: "ClubMismatch", err: clubauth.ErrClubMismatch, status: http.StatusForbidden},
		{name: "AccessDenied", err: clubauth.ErrAccessDenied, status: http.StatusForbidden},
		{name: "InsufficientPermissions", err: clubauth.ErrInsufficientPermissions, status: http.StatusForbidden},
		{name: "NotFound", err: errors.Wrapf(stor.ErrNotFound, "athlete %s", "a1"), status: http.StatusNotFound},
		{name: "Duplicate", err: stor.ErrDuplicate, status: http.StatusConflict},
		{name: "EchoHTTPError", err: echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), status: http.StatusTooManyRequests},
		{name: "Unknown", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, resp := errorResponse(test.err)
			assert.Equal(t, test.status, status)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestErrorResponseAgreesWithGateStatus(t *testing.T) {
	for _, err := range []error{
		clubauth.ErrUnauthenticated,
		clubauth.ErrClubContextRequired,
		clubauth.ErrClubMismatch,
		clubauth.ErrAccessDenied,
		clubauth.ErrInsufficientPermissions,
	} {
		status, _ := errorResponse(err)
		assert.Equal(t, clubauth.HTTPStatus(err), status, err.Error())
	}
}

func TestErrorResponseHidesInternalErrors(t *testing.T) {
	_, resp := errorResponse(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, "Internal server error", resp.Error)
	assert.Empty(t, resp.Message)
}

func TestHTTPErrorHandlerWritesEnvelope(t *testing.T) {
	c, rec := setupEchoContext(http.MethodPost, "", nil)
	HTTPErrorHandler(validationError(*rules.NewViolation("name", "Name is required")), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Validation failed","details":[{"path":"name","message":"Name is required"}]}`, rec.Body.String())
}

func TestBindAndValidateReportsJSONNames(t *testing.T) {
	c, rec := setupEchoContext(http.MethodPost, `{"email":"not-an-email"}`, nil)
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	err := bindAndValidate(c, &req)
	assert.Error(t, err)
	HTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"email"`)
	assert.Contains(t, rec.Body.String(), `"password is required"`)
}
