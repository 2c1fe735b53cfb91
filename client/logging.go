package client

import (
	"time"

	"github.com/kbukum/httpflow/logger"
)

func (c *Client) logRequest(reqID string, res resolved) {
	c.log.Trace("request dispatched", logger.Fields(
		logger.FieldRequestID, reqID,
		logger.FieldMethod, res.method,
		logger.FieldURL, res.url,
		"headers", res.header,
	))
}

func (c *Client) logResponse(reqID string, status int, elapsed time.Duration) {
	c.log.Debug("request complete", logger.Fields(
		logger.FieldRequestID, reqID,
		logger.FieldStatus, status,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
}

func (c *Client) logFailure(reqID string, err error, elapsed time.Duration) {
	c.log.Debug("request failed", logger.Fields(
		logger.FieldRequestID, reqID,
		logger.FieldError, err.Error(),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
}
