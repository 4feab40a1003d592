package syncjournal

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry is one recorded CRM sync attempt.
type Entry struct {
	bun.BaseModel `bun:"table:sync_journal,alias:sj"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	SessionID string    `bun:"session_id,notnull" json:"session_id"`
	Email     string    `bun:"email" json:"email,omitempty"`
	ContactID string    `bun:"contact_id" json:"contact_id,omitempty"`
	Created   bool      `bun:"created,notnull" json:"created"`
	Succeeded bool      `bun:"succeeded,notnull" json:"succeeded"`
	Error     string    `bun:"error" json:"error,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
