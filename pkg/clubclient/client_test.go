package clubclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "password" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"token": "t0", "userId": "u1"}})
	})

	mux.HandleFunc("/api/clubs/select", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer t0" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Authentication required"})
			return
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["clubId"] != "c1" {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{"success": false, "error": "Access denied"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"clubId": "c1"}})
	})

	mux.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]string{"token": "t1", "userId": "u1", "selectedClubId": "c1"}})
	})

	mux.HandleFunc("/api/seasons", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusConflict, map[string]interface{}{"success": false, "error": "Season with this name already exists"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": []map[string]string{{"id": "s1", "name": "Summer"}}})
	})

	mux.HandleFunc("/api/performances", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success":  true,
			"data":     map[string]interface{}{"id": "p1", "timeSeconds": 0.5},
			"warnings": []map[string]string{{"path": "timeSeconds", "message": "fast"}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoginAndSelect(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL)

	_, err := c.Login("coach@club.test", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClubAPI)
	require.NotNil(t, c.GetErrorResponse())
	assert.Equal(t, http.StatusUnauthorized, c.GetErrorResponse().StatusCode)

	session, err := c.Login("coach@club.test", "password")
	require.NoError(t, err)
	assert.Equal(t, "t0", session.Token)
	assert.Equal(t, "t0", c.Token())

	_, err = c.SelectClub("c2")
	assert.ErrorIs(t, err, ErrClubAPI)
	assert.Equal(t, "t0", c.Token())

	session, err = c.SelectClub("c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", session.SelectedClubID)
	assert.Equal(t, "t1", c.Token())
}

func TestClientSeasons(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	seasons, err := c.ListSeasons()
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, "Summer", seasons[0].Name)

	_, err = c.CreateSeason("Summer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Season with this name already exists")
	assert.Equal(t, http.StatusConflict, c.GetErrorResponse().StatusCode)
}

func TestClientSubmitPerformanceWarnings(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	t0 := 0.5
	p, warnings, err := c.SubmitPerformance(PerformanceRequest{AthleteID: "a1", TimeSeconds: &t0, Date: "2026-05-01"})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	require.Len(t, warnings, 1)
	assert.Equal(t, "timeSeconds", warnings[0].Path)
}
