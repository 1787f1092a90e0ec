package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/opsdesk/opsdesk/internal/domain"
	"github.com/opsdesk/opsdesk/pkg/apperror"
)

// AgentService is the use case surface the agent handler depends on.
type AgentService interface {
	Execute(ctx context.Context, cmd domain.Command) (*domain.Result, error)
	ListAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

// AgentHandler handles HTTP requests for the command agent.
type AgentHandler struct {
	agentService AgentService
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(agentService AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// RegisterRoutes registers agent routes.
func (h *AgentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/agent/execute", h.Execute).Methods("POST")
	router.HandleFunc("/api/v1/agent/audit", h.ListAudit).Methods("GET")
}

type executeRequest struct {
	Command string         `json:"command"`
	Data    map[string]any `json:"data,omitempty"`
	Actor   string         `json:"actor,omitempty"`
	Confirm bool           `json:"confirm,omitempty"`
}

// Execute handles a natural-language command.
func (h *AgentHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.agentService.Execute(r.Context(), domain.Command{
		Text:    req.Command,
		Data:    req.Data,
		Actor:   req.Actor,
		Confirm: req.Confirm,
	})
	if err != nil {
		appErr := apperror.MapError(err)
		writeError(w, appErr.Status, appErr.Message)
		return
	}

	writeResult(w, result)
}

// ListAudit handles retrieving recent audit entries.
func (h *AgentHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := h.agentService.ListAudit(r.Context(), limit)
	if err != nil {
		appErr := apperror.MapError(err)
		writeError(w, appErr.Status, appErr.Message)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"entries": entries, "count": len(entries)},
	})
}
