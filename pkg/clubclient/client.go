// Package clubclient is a Go client for the club service API.
package clubclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	rc            *resty.Client
	token         string
	errorResponse *ErrorResponse
}

type Session struct {
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expiresAt"`
	UserID         string    `json:"userId"`
	SelectedClubID string    `json:"selectedClubId"`
}

type Club struct {
	ClubID   string `json:"clubId"`
	ClubName string `json:"clubName"`
	ClubSlug string `json:"clubSlug"`
	Role     string `json:"role"`
	Selected bool   `json:"selected"`
}

type Medal struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Display  string `json:"display"`
}

type PerformanceRequest struct {
	AthleteID      string   `json:"athleteId"`
	DisciplineID   string   `json:"disciplineId"`
	AgeGroupID     string   `json:"ageGroupId"`
	GenderID       string   `json:"genderId"`
	MedalID        *string  `json:"medalId,omitempty"`
	TimeSeconds    *float64 `json:"timeSeconds,omitempty"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
	Date           string   `json:"date"`
	EventDetails   string   `json:"eventDetails,omitempty"`
	ProofFileID    *string  `json:"proofFileId,omitempty"`
	TeamMembers    []string `json:"teamMembers,omitempty"`
}

type envelope struct {
	Success  bool              `json:"success"`
	Data     json.RawMessage   `json:"data"`
	Warnings []rules.Violation `json:"warnings"`
}

func NewClient(baseURL string) *Client {
	return &Client{rc: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second)}
}

// SetToken sets the session token sent with every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// GetErrorResponse returns the decoded body of the last failed request.
func (c *Client) GetErrorResponse() *ErrorResponse {
	return c.errorResponse
}

func (c *Client) r() *resty.Request {
	req := c.rc.R().SetHeader("Accept", "application/json")
	if c.token != "" {
		req.SetAuthToken(c.token)
	}

	return req
}

// do sends the request and decodes the envelope's data into result. It returns
// the envelope's warnings.
func (c *Client) do(req *resty.Request, method, path string, result interface{}) ([]rules.Violation, error) {
	c.errorResponse = nil

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		var errResp *ErrorResponse
		errResp, err = ToErrorFromResponse(resp)
		c.errorResponse = errResp
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("unable to parse response from %s %s: %w", method, path, err)
	}

	if result != nil && len(env.Data) != 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("unable to parse data from %s %s: %w", method, path, err)
		}
	}

	return env.Warnings, nil
}

// Login exchanges credentials for a session and keeps its token.
func (c *Client) Login(email, password string) (*Session, error) {
	var session Session
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(c.r().SetBody(body), resty.MethodPost, "/api/session/login", &session); err != nil {
		return nil, err
	}

	c.token = session.Token
	return &session, nil
}

func (c *Client) ListClubs() ([]Club, error) {
	var clubs []Club
	_, err := c.do(c.r(), resty.MethodGet, "/api/clubs", &clubs)
	return clubs, err
}

// SelectClub checks the caller may act in clubID, then switches the session to
// it and keeps the new token.
func (c *Client) SelectClub(clubID string) (*Session, error) {
	body := map[string]string{"clubId": clubID}
	if _, err := c.do(c.r().SetBody(body), resty.MethodPost, "/api/clubs/select", nil); err != nil {
		return nil, err
	}

	var session Session
	if _, err := c.do(c.r().SetBody(body), resty.MethodPut, "/api/session", &session); err != nil {
		return nil, err
	}

	c.token = session.Token
	return &session, nil
}

func (c *Client) ListSeasons() ([]clubmodel.Season, error) {
	var seasons []clubmodel.Season
	_, err := c.do(c.r(), resty.MethodGet, "/api/seasons", &seasons)
	return seasons, err
}

func (c *Client) CreateSeason(name string) (*clubmodel.Season, error) {
	var season clubmodel.Season
	if _, err := c.do(c.r().SetBody(map[string]string{"name": name}), resty.MethodPost, "/api/seasons", &season); err != nil {
		return nil, err
	}

	return &season, nil
}

func (c *Client) ListMedals() ([]Medal, error) {
	var medals []Medal
	_, err := c.do(c.r(), resty.MethodGet, "/api/medals", &medals)
	return medals, err
}

// SubmitPerformance records a performance in the selected club. Warnings are
// returned alongside the stored performance.
func (c *Client) SubmitPerformance(p PerformanceRequest) (*clubmodel.Performance, []rules.Violation, error) {
	var performance clubmodel.Performance
	warnings, err := c.do(c.r().SetBody(p), resty.MethodPost, "/api/performances", &performance)
	if err != nil {
		return nil, nil, err
	}

	return &performance, warnings, nil
}
