package handlers

import (
	"encoding/json"
	"net/http"

	pkgauth "github.com/mwozniczak/agenttools/pkg/auth"
)

// TokenHandler exchanges a configured API key for a JWT.
type TokenHandler struct {
	authenticator *pkgauth.Authenticator
	apiKeyHash    string
}

func NewTokenHandler(authenticator *pkgauth.Authenticator, apiKeyHash string) *TokenHandler {
	return &TokenHandler{authenticator: authenticator, apiKeyHash: apiKeyHash}
}

type tokenRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken verifies the API key against the configured bcrypt hash
// and returns a signed token.
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ClientID == "" || req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "client_id and api_key are required")
		return
	}

	if h.apiKeyHash == "" || !pkgauth.VerifyAPIKey(h.apiKeyHash, req.APIKey) {
		writeError(w, http.StatusUnauthorized, "invalid API key")
		return
	}

	token, err := h.authenticator.GenerateToken(req.ClientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
