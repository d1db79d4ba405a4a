package httpapi

import (
	"encoding/json"
	"net/http"

	"jobscout-engine/internal/secrets"
)

type SecretsHandler struct{}

// SetScrapeToken stores the scrape-service bearer token in the OS keyring.
// The token never touches the config file or the database.
func (h SecretsHandler) SetScrapeToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if err := secrets.SetServiceToken(body.Token); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h SecretsHandler) DeleteScrapeToken(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteServiceToken(); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
