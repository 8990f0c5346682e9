// Package envelope builds the JSON response shape every tool returns.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UnknownError replaces empty failure messages.
const UnknownError = "unknown error"

// Envelope is the uniform tool response.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data"`
}

// Success wraps data in a success envelope. If data cannot be encoded the
// result is a failure envelope describing the encoding error.
func Success(data any) string {
	s, err := encode(Envelope{Success: true, Data: data})
	if err != nil {
		return Failure(fmt.Sprintf("encode response: %v", err), nil)
	}
	return s
}

// Failure wraps an error message and optional context data.
func Failure(message string, data any) string {
	if strings.TrimSpace(message) == "" {
		message = UnknownError
	}
	s, err := encode(Envelope{Error: message, Data: data})
	if err != nil {
		s, _ = encode(Envelope{Error: message})
	}
	return s
}

// FromError is Failure(err.Error(), nil).
func FromError(err error) string {
	if err == nil {
		return Failure("", nil)
	}
	return Failure(err.Error(), nil)
}

// Parse decodes s and checks that it is a well-formed envelope.
func Parse(s string) (Envelope, error) {
	var raw struct {
		Success *bool           `json:"success"`
		Error   *string         `json:"error"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Envelope{}, fmt.Errorf("parse envelope: %w", err)
	}
	if raw.Success == nil {
		return Envelope{}, errors.New("parse envelope: missing success field")
	}
	env := Envelope{Success: *raw.Success}
	if !env.Success {
		if raw.Error == nil {
			return Envelope{}, errors.New("parse envelope: failure without error message")
		}
		env.Error = *raw.Error
	}
	if len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return Envelope{}, fmt.Errorf("parse envelope data: %w", err)
		}
	}
	return env, nil
}

func encode(env Envelope) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
