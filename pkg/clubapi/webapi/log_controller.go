package webapi

import (
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clog"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
)

// LogController lets a system admin inspect and change the server's log level
// and output without a restart.
type LogController struct {
	logging *clog.Logging
}

func NewLogController(logging *clog.Logging) *LogController {
	return &LogController{logging: logging}
}

func (c *LogController) ShowLogging(ctx echo.Context) error {
	return success(ctx, http.StatusOK, c.logging.State())
}

func (c *LogController) SetLogging(ctx echo.Context) error {
	var req struct {
		LogLevel  string `json:"logLevel"`
		LogOutput string `json:"logOutput"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := c.logging.Setup(req.LogLevel, req.LogOutput); err != nil {
		return validationError(*rules.NewViolation("", err.Error()))
	}

	return success(ctx, http.StatusOK, c.logging.State())
}
