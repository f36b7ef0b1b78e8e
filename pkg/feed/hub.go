// Package feed pushes club events, such as newly recorded performances, to
// websocket listeners of that club.
package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/gorilla/websocket"
)

const MsgConnected = "connected"

type Message struct {
	Command   string      `json:"command"`
	ClubID    string      `json:"clubId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

type SessionParser func(token string) (*clubauth.Session, error)

type AccessResolver func(req clubauth.Request) (*clubauth.Access, error)

// Hub tracks the connected listeners of each club. All changes to the client
// sets go through Run.
type Hub struct {
	clubs        map[string]map[*Client]struct{}
	register     chan *Client
	unregister   chan *Client
	broadcast    chan Message
	done         chan struct{}
	parseSession SessionParser
	resolve      AccessResolver
	upgrader     websocket.Upgrader
}

func NewHub(parseSession SessionParser, resolve AccessResolver) *Hub {
	return &Hub{
		clubs:        make(map[string]map[*Client]struct{}),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan Message, 100),
		done:         make(chan struct{}),
		parseSession: parseSession,
		resolve:      resolve,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Listeners authenticate with a session token, not cookies.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run services the hub until ctx is done. A hub cannot be run twice.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.clubs {
				for client := range clients {
					close(client.Send)
				}
			}
			h.clubs = make(map[string]map[*Client]struct{})
			return

		case client := <-h.register:
			if h.clubs[client.ClubID] == nil {
				h.clubs[client.ClubID] = make(map[*Client]struct{})
			}
			h.clubs[client.ClubID][client] = struct{}{}
			log.WithFields(log.Fields{"club": client.ClubID, "user": client.UserID}).Debug("feed listener registered")

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			for client := range h.clubs[msg.ClubID] {
				select {
				case client.Send <- msg:
				default:
					log.Warnf("Dropping slow feed listener for user %s", client.UserID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.clubs[client.ClubID]
	if !ok {
		return
	}

	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clubs, client.ClubID)
	}
}

// Publish queues an event for the club's listeners. It never blocks the caller;
// when the queue is full the event is dropped.
func (h *Hub) Publish(clubID, command string, payload interface{}) {
	msg := Message{Command: command, ClubID: clubID, Timestamp: time.Now(), Payload: payload}
	select {
	case h.broadcast <- msg:
	default:
		log.Warnf("Feed queue full, dropping %s for club %s", command, clubID)
	}
}

// ServeWS upgrades a listener. The session token comes from the Authorization
// header or the token query parameter. The club is the clubId query parameter,
// or the session's selected club.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	session, err := h.parseSession(authToken(r))
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	access, err := h.resolve(clubauth.Request{
		Session:             session,
		ClubID:              r.URL.Query().Get("clubId"),
		RequireClub:         true,
		RequireSessionMatch: true,
		MinRole:             clubauth.Member,
	})
	if err != nil {
		status := clubauth.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Errorf("Feed access check failed: %s", err)
			http.Error(w, "Internal server error", status)
			return
		}

		http.Error(w, err.Error(), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Feed upgrade failed: %s", err)
		return
	}

	client := &Client{
		ClubID: access.ClubID,
		UserID: access.UserID,
		Conn:   conn,
		Send:   make(chan Message, 256),
		hub:    h,
	}

	client.Send <- Message{Command: MsgConnected, ClubID: access.ClubID, Timestamp: time.Now()}

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func authToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimSpace(header)
	}

	return r.URL.Query().Get("token")
}
