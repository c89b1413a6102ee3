// Package handlers contains one HTTP handler constructor per endpoint.
// Each handler declares the minimal service interface it consumes and
// shapes its own request/response JSON.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks request structs against their `validate` tags.
var validate = validator.New()

// ErrorResponse is the JSON error body returned by every endpoint.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: access denied
	Error string `json:"error"`
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON writes a JSON success body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
