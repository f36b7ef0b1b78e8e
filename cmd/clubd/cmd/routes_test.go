package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clog"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/tutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	e     *echo.Echo
	stors *stor.Stors
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	stors := stor.NewGormStors(tutil.OpenTestDB(t))
	issuer := clubauth.NewSessionIssuer("routes-test-secret", time.Hour)

	e := echo.New()
	setupRoutes(RouteDependencies{
		e:         e,
		stors:     stors,
		gate:      clubauth.NewGate(stors.MembershipStor),
		issuer:    issuer,
		logging:   clog.Global(),
		rateLimit: 1000,
	})

	return &testServer{e: e, stors: stors}
}

func (s *testServer) call(t *testing.T, method, path, token, body string, headers map[string]string) (int, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()

	status, resp := s.call(t, http.MethodPost, "/api/session/login", "", `{"email":"`+email+`","password":"password"}`, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	return session.Token
}

// selectClub runs both phases of club selection and returns the new token.
func (s *testServer) selectClub(t *testing.T, token, clubID string) string {
	t.Helper()

	body := `{"clubId":"` + clubID + `"}`
	status, resp := s.call(t, http.MethodPost, "/api/clubs/select", token, body, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = s.call(t, http.MethodPut, "/api/session", token, body, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	var session struct {
		Token          string `json:"token"`
		SelectedClubID string `json:"selectedClubId"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	require.Equal(t, clubID, session.SelectedClubID)
	return session.Token
}

func TestSeasonFlow(t *testing.T) {
	s := newTestServer(t)
	tutil.CreateUser(t, s.stors, "admin@club.test", true)
	tutil.CreateUser(t, s.stors, "member@club.test", false)

	adminToken := s.login(t, "admin@club.test")

	status, resp := s.call(t, http.MethodPost, "/api/clubs", adminToken, `{"name":"Harriers AC"}`, nil)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var club clubmodel.Club
	require.NoError(t, json.Unmarshal(resp.Data, &club))
	assert.Equal(t, "harriers-ac", club.Slug)

	clubHeader := map[string]string{"X-Club-ID": club.ID}

	// no club in the session or the request
	status, _ = s.call(t, http.MethodPost, "/api/seasons", adminToken, `{"name":"Summer 2026"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = s.call(t, http.MethodPost, "/api/seasons", adminToken, `{"name":"Summer 2026"}`, clubHeader)
	require.Equal(t, http.StatusCreated, status, resp.Error)

	status, resp = s.call(t, http.MethodPost, "/api/seasons", adminToken, `{"name":"Summer 2026"}`, clubHeader)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Season with this name already exists", resp.Error)

	status, resp = s.call(t, http.MethodPost, "/api/club-members", adminToken, `{"email":"member@club.test","role":"MEMBER"}`, clubHeader)
	require.Equal(t, http.StatusOK, status, resp.Error)

	memberToken := s.selectClub(t, s.login(t, "member@club.test"), club.ID)

	status, _ = s.call(t, http.MethodPost, "/api/seasons", memberToken, `{"name":"Winter 2026"}`, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = s.call(t, http.MethodGet, "/api/seasons", memberToken, "", nil)
	require.Equal(t, http.StatusOK, status, resp.Error)
	var seasons []clubmodel.Season
	require.NoError(t, json.Unmarshal(resp.Data, &seasons))
	assert.Len(t, seasons, 1)
}

func TestGateResponses(t *testing.T) {
	s := newTestServer(t)
	owner := tutil.CreateUser(t, s.stors, "owner@club.test", false)
	harriers := tutil.CreateClub(t, s.stors, "Harriers", owner)
	striders := tutil.CreateClub(t, s.stors, "Striders", owner)
	tutil.CreateUser(t, s.stors, "outsider@club.test", false)

	status, _ := s.call(t, http.MethodGet, "/api/seasons", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.call(t, http.MethodGet, "/api/seasons", "not-a-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	ownerToken := s.selectClub(t, s.login(t, "owner@club.test"), harriers.ID)

	// naming another club than the selected one
	status, resp := s.call(t, http.MethodGet, "/api/seasons?clubId="+striders.ID, ownerToken, "", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Club mismatch", resp.Error)

	status, _ = s.call(t, http.MethodGet, "/api/seasons?clubId="+harriers.ID, ownerToken, "", nil)
	assert.Equal(t, http.StatusOK, status)

	outsiderToken := s.login(t, "outsider@club.test")
	status, resp = s.call(t, http.MethodGet, "/api/seasons", outsiderToken, "", map[string]string{"X-Club-ID": harriers.ID})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied", resp.Error)

	status, _ = s.call(t, http.MethodPost, "/api/clubs/select", outsiderToken, `{"clubId":"`+harriers.ID+`"}`, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// only system admins create clubs
	status, _ = s.call(t, http.MethodPost, "/api/clubs", ownerToken, `{"name":"Another"}`, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// a deactivated club locks its members out
	status, resp = s.call(t, http.MethodPost, "/api/clubs/"+harriers.ID+"/deactivate", ownerToken, "", nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, _ = s.call(t, http.MethodGet, "/api/seasons", ownerToken, "", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	tutil.CreateUser(t, s.stors, "user@club.test", false)
	token := s.login(t, "user@club.test")

	status, resp := s.call(t, http.MethodGet, "/api/medals", token, "", nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, _ = s.call(t, http.MethodPost, "/api/medals", token, `{"position":2,"name":"Silver"}`, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.call(t, http.MethodPost, "/api/medals", token, `{"position":5,"name":"Gold"}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.call(t, http.MethodPost, "/api/session/login", "", `{"email":"user@club.test","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
