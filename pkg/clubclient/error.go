package clubclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/go-resty/resty/v2"
)

var ErrClubAPI = errors.New("club api")

// ErrorResponse is the envelope the server sends with a failed request.
type ErrorResponse struct {
	StatusCode int               `json:"-"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    []rules.Violation `json:"details"`
}

func ToErrorFromResponse(resp *resty.Response) (*ErrorResponse, error) {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil {
		return nil, errors.Join(ErrClubAPI, fmt.Errorf("(HTTP Status: %d)- unable to parse json error response: %s", resp.StatusCode(), err))
	}

	errorResponse.StatusCode = resp.StatusCode()

	msg := errorResponse.Error
	if errorResponse.Message != "" {
		msg = msg + ": " + errorResponse.Message
	}

	for _, d := range errorResponse.Details {
		msg = msg + "; " + d.Error()
	}

	return &errorResponse, errors.Join(ErrClubAPI, fmt.Errorf("(HTTP Status: %d)- %s", resp.StatusCode(), msg))
}
