package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHub(t *testing.T) (*Hub, *clubauth.SessionIssuer, *httptest.Server) {
	t.Helper()

	memberships := stor.NewInMemoryMembershipStor(
		[]clubmodel.Club{{ID: "c1", Name: "Harriers", Active: true}, {ID: "c2", Name: "Striders", Active: true}},
		[]clubmodel.UserClub{
			{UserID: "u1", ClubID: "c1", Role: clubmodel.RoleMember, Active: true},
			{UserID: "u2", ClubID: "c2", Role: clubmodel.RoleCoach, Active: true},
		},
	)

	issuer := clubauth.NewSessionIssuer("feed-test-secret", time.Hour)
	gate := clubauth.NewGate(memberships)
	hub := NewHub(issuer.Parse, gate.Resolve)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return hub, issuer, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	return websocket.DefaultDialer.Dial(url, nil)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubDeliversToClub(t *testing.T) {
	hub, issuer, srv := setupHub(t)

	token1, _, err := issuer.Issue(clubauth.Session{UserID: "u1", SelectedClubID: "c1"})
	require.NoError(t, err)
	token2, _, err := issuer.Issue(clubauth.Session{UserID: "u2"})
	require.NoError(t, err)

	conn1, _, err := dial(t, srv, "token="+token1)
	require.NoError(t, err)
	defer conn1.Close()
	conn2, _, err := dial(t, srv, "token="+token2+"&clubId=c2")
	require.NoError(t, err)
	defer conn2.Close()

	assert.Equal(t, MsgConnected, readMessage(t, conn1).Command)
	assert.Equal(t, MsgConnected, readMessage(t, conn2).Command)

	hub.Publish("c2", "performance.created", map[string]string{"id": "p1"})
	hub.Publish("c1", "performance.created", map[string]string{"id": "p2"})

	msg := readMessage(t, conn1)
	assert.Equal(t, "c1", msg.ClubID)
	assert.Equal(t, "performance.created", msg.Command)
	assert.Equal(t, map[string]interface{}{"id": "p2"}, msg.Payload)

	msg = readMessage(t, conn2)
	assert.Equal(t, "c2", msg.ClubID)
	assert.Equal(t, map[string]interface{}{"id": "p1"}, msg.Payload)
}

func TestHubRejectsListeners(t *testing.T) {
	_, issuer, srv := setupHub(t)

	_, resp, err := dial(t, srv, "token=garbage")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// c2 is not the selected club
	token, _, err := issuer.Issue(clubauth.Session{UserID: "u1", SelectedClubID: "c1"})
	require.NoError(t, err)
	_, resp, err = dial(t, srv, "token="+token+"&clubId=c2")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// not a member of c2
	token, _, err = issuer.Issue(clubauth.Session{UserID: "u1"})
	require.NoError(t, err)
	_, resp, err = dial(t, srv, "token="+token+"&clubId=c2")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// no club at all
	_, resp, err = dial(t, srv, "token="+token)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
