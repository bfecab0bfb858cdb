package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a successful API response.
// Body is the parsed JSON exactly as sent by the server.
type Response struct {
	Status int
	Body   json.RawMessage
}

// Decode the response body into v.
func (r Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

// ExpectOK fails unless the server answered with exactly 200.
func (r Response) ExpectOK() error {
	if r.Status != http.StatusOK {
		return fmt.Errorf("unexpected response status %d", r.Status)
	}

	return nil
}
