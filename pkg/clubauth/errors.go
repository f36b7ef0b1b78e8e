package clubauth

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated         = errors.New("authentication required")
	ErrClubContextRequired     = errors.New("club context required")
	ErrClubMismatch            = errors.New("club does not match the selected club")
	ErrAccessDenied            = errors.New("access denied to this club")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrInvalidRole             = errors.New("invalid role")
)

// HTTPStatus is the response status for an error from Resolve. Anything the
// gate does not produce itself maps to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrClubContextRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrClubMismatch), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInsufficientPermissions):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
