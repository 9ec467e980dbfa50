package handlers

import (
	"net/http"

	"github.com/mwozniczak/agenttools/internal/domain/audit"
)

// AuditHandler exposes the invocation log.
type AuditHandler struct {
	recorder *audit.Recorder
}

func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// ListInvocations returns recent invocation log entries, newest first.
// An optional tool query parameter filters to one tool.
func (h *AuditHandler) ListInvocations(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	var (
		entries []*audit.Entry
		err     error
	)
	if toolName := r.URL.Query().Get("tool"); toolName != "" {
		entries, err = h.recorder.ListByTool(r.Context(), toolName, limit)
	} else {
		entries, err = h.recorder.ListRecent(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list invocations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": entries,
		"meta": map[string]int{"total": len(entries)},
	})
}
