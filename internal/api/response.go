package api

import (
	"encoding/json"
	"net/http"

	"gesturify/internal/dispatcher"
)

// CommandResponse is the wire body for POST /command
type CommandResponse struct {
	Status          string `json:"status"`
	CommandExecuted string `json:"command_executed,omitempty"`
	Message         string `json:"message,omitempty"`
}

// NewCommandResponse renders a dispatcher result in wire form
func NewCommandResponse(res dispatcher.Result) CommandResponse {
	if res.Kind == dispatcher.KindSuccess {
		return CommandResponse{Status: res.Status(), CommandExecuted: res.Action}
	}
	return CommandResponse{Status: res.Status(), Message: res.Reason}
}

// respondJSON writes payload with the given status
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes an error body in the command response shape
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, CommandResponse{Status: "error", Message: message})
}
