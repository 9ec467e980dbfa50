package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// ToolHandler exposes the registry: listing, describing, and invoking
// tools.
type ToolHandler struct {
	registry *tool.Registry
}

func NewToolHandler(registry *tool.Registry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

// invokeResponse is the wire shape of one invocation result.
type invokeResponse struct {
	IsError bool            `json:"is_error"`
	Content json.RawMessage `json:"content"`
}

// ListTools returns descriptors for every registered tool in
// registration order.
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	items := h.registry.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]int{"total": len(items)},
	})
}

// GetTool returns the descriptor of a single tool.
func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, err := h.registry.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tool.Describe(t))
}

// InvokeTool validates the request body against the tool's schema and
// runs it. Validation failures are 400s; tool-level failures come back
// 200 with is_error set, per the invocation contract.
func (h *ToolHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	raw := map[string]any{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	items, err := h.registry.Invoke(r.Context(), name, raw)
	if err != nil {
		switch {
		case errors.Is(err, tool.ErrToolNotRegistered):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, tool.ErrValidationFailed):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	content, err := tool.MarshalContent(items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}
	writeJSON(w, http.StatusOK, invokeResponse{
		IsError: tool.IsError(items),
		Content: content,
	})
}
