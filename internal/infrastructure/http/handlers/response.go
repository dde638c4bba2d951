package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate/internal/domain"
)

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	User    *domain.PublicUser `json:"user,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeOK sends {success:true, message, user} with user omitted when nil.
func writeOK(w http.ResponseWriter, code int, message string, user *domain.PublicUser) {
	writeJSON(w, code, apiResponse{Success: true, Message: message, User: user})
}

// writeErr sends {success:false, message}.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, apiResponse{Success: false, Message: message})
}
