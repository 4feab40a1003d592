package synccmd

import (
	"context"

	"github.com/devinschumacher/devinschumacher.com/internal/commands"
	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

// SyncSessionHandler runs session-to-CRM syncs through the shared command
// handler foundation.
type SyncSessionHandler struct {
	inner *commands.Handler[SyncSessionCommand]
}

// NewSyncSessionHandler constructs a handler wired to the syncer.
func NewSyncSessionHandler(syncer *crm.Syncer, logger logging.Logger, opts ...commands.HandlerOption[SyncSessionCommand]) *SyncSessionHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncSessionCommand) error {
		if syncer == nil {
			return crm.ErrDisabled
		}
		account, err := payments.ParseAccount(msg.Account)
		if err != nil {
			return err
		}
		result, err := syncer.SyncSession(ctx, msg.SessionID, account)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncSessionCommand]{
		commands.WithLogger[SyncSessionCommand](baseLogger),
		commands.WithOperation[SyncSessionCommand]("crm.sync_session"),
		commands.WithMessageFields(func(msg SyncSessionCommand) map[string]any {
			return map[string]any{"session_id": msg.SessionID}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncSessionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander.
func (h *SyncSessionHandler) Execute(ctx context.Context, msg SyncSessionCommand) error {
	return h.inner.Execute(ctx, msg)
}
