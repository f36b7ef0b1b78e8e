package clubauth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is who is calling and which club they have selected. SelectedClubID
// is empty until a club is selected.
type Session struct {
	UserID         string `json:"userId"`
	SelectedClubID string `json:"selectedClubId"`
}

type sessionClaims struct {
	Club string `json:"club,omitempty"`
	jwt.RegisteredClaims
}

// SessionIssuer signs and verifies session tokens (HS256).
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for s and when it expires.
func (i *SessionIssuer) Issue(s Session) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.ttl)

	claims := sessionClaims{
		Club: s.SelectedClubID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expires, nil
}

// Parse verifies token and returns its session. Every failure, including
// expiry, is reported as ErrUnauthenticated.
func (i *SessionIssuer) Parse(token string) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	return &Session{UserID: claims.Subject, SelectedClubID: claims.Club}, nil
}
