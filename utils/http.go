// Package utils holds the JSON response helpers shared by the handlers.
package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
)

// ResponseResource carries the message body returned on error responses
type ResponseResource struct {
	Message string `json:"message"`
}

// NewMessageResponse wraps a message in a ResponseResource
func NewMessageResponse(message string) *ResponseResource {
	return &ResponseResource{Message: message}
}

// WriteJSONWithStatus serialises data to the response writer under the
// supplied status. Encoding failures are logged; the status has already
// been written by then so nothing else can be sent.
func WriteJSONWithStatus(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ErrorR(r, fmt.Errorf("error encoding response body: %v", err))
	}
}
