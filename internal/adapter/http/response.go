package http

import (
	"encoding/json"
	"net/http"

	"github.com/opsdesk/opsdesk/internal/domain"
)

// successResponse is the envelope returned for every executed command.
type successResponse struct {
	Success bool          `json:"success"`
	Action  domain.Intent `json:"action"`
	Entity  string        `json:"entity"`
	Summary string        `json:"summary"`
	Data    any           `json:"data"`
}

// errorResponse is the envelope returned for every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeResult(w http.ResponseWriter, result *domain.Result) {
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Action:  result.Action,
		Entity:  result.Entity,
		Summary: result.Summary,
		Data:    result.Data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
