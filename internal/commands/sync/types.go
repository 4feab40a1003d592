package synccmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/devinschumacher/devinschumacher.com/internal/crm"
)

const syncSessionMessageType = "site.crm.sync_session"

// ResultCallback receives the sync outcome. Optional; invoked synchronously
// from the handler.
type ResultCallback func(*crm.SyncResult)

// SyncSessionCommand pushes one checkout session's buyer into the CRM.
type SyncSessionCommand struct {
	SessionID      string         `json:"session_id"`
	Account        string         `json:"account,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (SyncSessionCommand) Type() string { return syncSessionMessageType }

// Validate implements command.Message.
func (m SyncSessionCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.SessionID) == "" {
		errs["session_id"] = validation.NewError("site.crm.sync.session_required", "session_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
