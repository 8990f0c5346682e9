package pingera

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthFailedMessage is reported for 401 responses.
const AuthFailedMessage = "Authentication failed. Check your API key."

var (
	// ErrTimeout wraps requests that exceeded the client timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrConnection wraps dial and transport failures.
	ErrConnection = errors.New("connection error")
)

// APIError is a non-2xx response from the Pingera API.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.IsAuth() {
		return e.Message
	}
	if e.Message == "" {
		return fmt.Sprintf("API error %d", e.StatusCode)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsAuth returns true for 401 responses.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound returns true for 404 responses.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsTransient returns true for statuses the retry policy handles.
func (e *APIError) IsTransient() bool {
	return retryableStatus(e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// parseAPIError builds an APIError from an error response body.
func parseAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Body: string(body)}
	if statusCode == http.StatusUnauthorized {
		e.Message = AuthFailedMessage
		return e
	}

	// {"message": "..."} or {"detail": "..."}
	var flat struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   any    `json:"error"`
	}
	if json.Unmarshal(body, &flat) == nil {
		switch {
		case flat.Message != "":
			e.Message = flat.Message
			return e
		case flat.Detail != "":
			e.Message = flat.Detail
			return e
		}
		// {"error": "..."} or {"error": {"message": "..."}}
		switch v := flat.Error.(type) {
		case string:
			e.Message = v
			return e
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				e.Message = msg
				return e
			}
		}
	}

	// Fallback: first line of body
	s := strings.TrimSpace(string(body))
	if idx := strings.IndexByte(s, '\n'); idx > 0 {
		s = s[:idx]
	}
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	e.Message = s
	return e
}
