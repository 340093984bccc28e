package error

import (
	"errors"
	"net"
	"strings"
)

// IsConnectionError checks if an error is likely related to network connectivity,
// such as an unreachable Secrets Manager endpoint or missing AWS network access.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	connectionErrors := []string{
		"connection refused",
		"no such host",
		"host unreachable",
		"i/o timeout",
		"no route to host",
		"network is unreachable",
		"operation timed out",
		"connection reset by peer",
		"dial tcp",
		"tls handshake",
		"context deadline exceeded",
		"operation canceled",
		"failed to refresh cached credentials",
		"no ec2 imds role found",
	}

	for _, msg := range connectionErrors {
		if strings.Contains(errStr, msg) {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return IsConnectionError(unwrapped)
	}

	return false
}
