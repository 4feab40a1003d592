package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
	"github.com/devinschumacher/devinschumacher.com/internal/syncjournal"
)

type crmSyncPayload struct {
	SessionID string `json:"sessionId"`
	Account   string `json:"account,omitempty"`
}

type crmSyncResponse struct {
	Success bool            `json:"success"`
	Contact *crm.SyncResult `json:"contact,omitempty"`
}

// handleCRMSync pulls a checkout session and upserts the buyer into the CRM.
func (api *API) handleCRMSync(w http.ResponseWriter, r *http.Request) {
	if api.syncer == nil {
		writeError(w, crm.ErrDisabled)
		return
	}

	var payload crmSyncPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	if strings.TrimSpace(payload.SessionID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: "sessionId is required"})
		return
	}
	account, err := payments.ParseAccount(payload.Account)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := api.syncer.SyncSession(r.Context(), payload.SessionID, account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crmSyncResponse{Success: true, Contact: result})
}

type crmJournalResponse struct {
	Entries []*syncjournal.Entry `json:"entries"`
}

// handleCRMJournal lists recent sync attempts, optionally filtered by
// session id.
func (api *API) handleCRMJournal(w http.ResponseWriter, r *http.Request) {
	if api.journal == nil {
		writeError(w, crm.ErrDisabled)
		return
	}

	query := r.URL.Query()
	if sessionID := query.Get("sessionId"); sessionID != "" {
		entries, err := api.journal.BySession(r.Context(), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, crmJournalResponse{Entries: entries})
		return
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	entries, err := api.journal.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crmJournalResponse{Entries: entries})
}
