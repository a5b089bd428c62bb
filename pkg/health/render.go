package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// WantsJSON checks if the client wants a JSON response.
func WantsJSON(r *http.Request) bool {
	// Query parameter first, easier for debugging
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// StatusCode maps a report to 200 or 503.
func (r *Report) StatusCode() int {
	if r.Healthy() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Render encodes the report as JSON or plain text and returns the body with
// its content type.
func (r *Report) Render(asJSON bool) ([]byte, string) {
	if asJSON {
		body, err := json.Marshal(r)
		if err == nil {
			return append(body, '\n'), "application/json"
		}
	}
	if r.Healthy() {
		return []byte("OK"), "text/plain; charset=utf-8"
	}
	return []byte("Service Unavailable"), "text/plain; charset=utf-8"
}
