package crm

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

// Journal records the outcome of each sync attempt. Implementations must
// tolerate best-effort use: a journal failure never fails the sync.
type Journal interface {
	Record(ctx context.Context, attempt SyncAttempt) error
}

// SyncAttempt is one journaled sync outcome.
type SyncAttempt struct {
	SessionID string
	Email     string
	ContactID string
	Created   bool
	Succeeded bool
	Error     string
}

// SyncResult reports a completed session-to-contact sync.
type SyncResult struct {
	ContactID string   `json:"contactId"`
	Created   bool     `json:"created"`
	Email     string   `json:"email"`
	Tags      []string `json:"tags"`
}

// Syncer pulls a checkout session from the payment provider and upserts the
// buyer into the CRM.
type Syncer struct {
	provider *payments.Provider
	client   *Client
	fieldIDs CustomFieldIDs
	journal  Journal
	logger   logging.Logger
	now      func() time.Time
}

// NewSyncer wires a syncer. journal may be nil.
func NewSyncer(provider *payments.Provider, client *Client, fieldIDs CustomFieldIDs, journal Journal, logger logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Syncer{
		provider: provider,
		client:   client,
		fieldIDs: fieldIDs,
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncSession retrieves the session, builds the contact payload, and upserts
// it. Every attempt is journaled, failures included.
func (s *Syncer) SyncSession(ctx context.Context, sessionID string, account payments.Account) (*SyncResult, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}
	payClient, err := s.provider.Client(account)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("customer")
	params.AddExpand("line_items")
	session, err := payClient.GetCheckoutSession(ctx, sessionID, params)
	if err != nil {
		s.record(ctx, SyncAttempt{SessionID: sessionID, Error: err.Error()})
		return nil, err
	}

	contact := ContactFromSession(session, s.fieldIDs, s.now())
	contactID, created, err := s.client.Upsert(ctx, contact)
	if err != nil {
		s.record(ctx, SyncAttempt{SessionID: sessionID, Email: contact.Email, Error: err.Error()})
		return nil, err
	}

	s.record(ctx, SyncAttempt{
		SessionID: sessionID,
		Email:     contact.Email,
		ContactID: contactID,
		Created:   created,
		Succeeded: true,
	})
	s.logger.Info("session synced to crm",
		"session_id", sessionID,
		"contact_id", contactID,
		"created", created,
	)
	return &SyncResult{
		ContactID: contactID,
		Created:   created,
		Email:     contact.Email,
		Tags:      contact.Tags,
	}, nil
}

func (s *Syncer) record(ctx context.Context, attempt SyncAttempt) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, attempt); err != nil {
		s.logger.Warn("journal write failed", "session_id", attempt.SessionID, "error", err)
	}
}
