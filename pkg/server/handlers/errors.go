package handlers

import (
	"errors"
	"net/http"

	"github.com/promptpulse/promptpulse/pkg/providers"
)

// Error codes of the /call failure envelope. Operators and the visualization
// layer key off these strings, so they are part of the wire contract.
const (
	CodeAPIKeyMissing  = "API_KEY_MISSING"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeProviderError  = "PROVIDER_ERROR"
	CodeNetworkError   = "NETWORK_ERROR"
	CodeTimeout        = "TIMEOUT"
	CodeInternal       = "INTERNAL"
)

// classifyError maps a typed adapter or registry error onto the HTTP status
// and error code of the failure envelope.
func classifyError(err error) (status int, code string) {
	var apiKeyErr *providers.APIKeyMissingError
	if errors.As(err, &apiKeyErr) {
		return http.StatusInternalServerError, CodeAPIKeyMissing
	}

	var validationErr *providers.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, CodeInvalidRequest
	}

	var unknownErr *providers.UnknownProviderError
	if errors.As(err, &unknownErr) {
		return http.StatusBadRequest, CodeInvalidRequest
	}

	var timeoutErr *providers.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout, CodeTimeout
	}

	var networkErr *providers.NetworkError
	if errors.As(err, &networkErr) {
		return http.StatusServiceUnavailable, CodeNetworkError
	}

	var providerErr *providers.ProviderError
	if errors.As(err, &providerErr) {
		return http.StatusBadGateway, CodeProviderError
	}

	var parseErr *providers.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadGateway, CodeProviderError
	}

	return http.StatusInternalServerError, CodeInternal
}
