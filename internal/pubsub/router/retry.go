package router

import (
	"net"
	"net/http"

	"github.com/hospitalsupply/supplyrecon/internal/errors"
	"github.com/hospitalsupply/supplyrecon/internal/httpclient"
	"github.com/hospitalsupply/supplyrecon/internal/logger"
)

// ShouldRetry tells a handler whether returning err to the router (and so
// triggering the retry middleware) can help
func ShouldRetry(logger *logger.Logger, err error) bool {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		switch httpErr.StatusCode {
		case http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			logger.Debugw("retrying due to HTTP error",
				"status_code", httpErr.StatusCode,
				"error", httpErr,
			)
			return true
		}
		logger.Debugw("non-retryable HTTP error",
			"status_code", httpErr.StatusCode,
			"error", httpErr,
		)
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	if errors.IsValidation(err) || errors.IsNotFound(err) {
		return false
	}

	return true
}
