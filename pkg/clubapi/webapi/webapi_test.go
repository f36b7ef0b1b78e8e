package webapi

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testResponse struct {
	Success  bool              `json:"success"`
	Data     json.RawMessage   `json:"data"`
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Details  []rules.Violation `json:"details"`
	Warnings []rules.Violation `json:"warnings"`
}

// setupEchoContext builds a context for a request carrying body as JSON, with
// access already resolved as the club middleware would.
func setupEchoContext(method, body string, access *clubauth.Access) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if access != nil {
		apimiddleware.SetAccess(c, access)
		apimiddleware.SetSession(c, &clubauth.Session{UserID: access.UserID, SelectedClubID: access.ClubID})
	}

	return c, rec
}

// serve runs handler, writing any returned error the way the server does.
func serve(t *testing.T, handler echo.HandlerFunc, c echo.Context, rec *httptest.ResponseRecorder) (int, testResponse) {
	t.Helper()

	if err := handler(c); err != nil {
		HTTPErrorHandler(err, c)
	}

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())

	return rec.Code, resp
}

func decodeData(t *testing.T, resp testResponse, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, into))
}

func hasDetail(details []rules.Violation, path string) bool {
	for _, d := range details {
		if d.Path == path {
			return true
		}
	}

	return false
}
