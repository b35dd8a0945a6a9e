package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// upstreamErrorBody is the structured error shape some upstream APIs return.
type upstreamErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx response and translates it
// into an AppError. Structured error bodies keep their code and message;
// anything else becomes a generic error carrying the status and raw body.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	var parsed upstreamErrorBody
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		msg := fmt.Sprintf("%s: %s", upstream, parsed.Error.Message)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperrors.NotFound(upstream, parsed.Error.Message)
		case http.StatusBadRequest:
			return apperrors.InvalidInput(msg)
		case http.StatusUnauthorized:
			return apperrors.Unauthorized(msg)
		case http.StatusForbidden:
			return apperrors.Forbidden(msg)
		default:
			return &apperrors.AppError{
				Code:    parsed.Error.Code,
				Message: msg,
				Status:  resp.StatusCode,
			}
		}
	}

	return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, string(body))
}
