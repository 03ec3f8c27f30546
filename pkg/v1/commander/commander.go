package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// Commander sends reconciler operator commands.
type Commander struct {
	sender Sender
}

// NewCommander returns new Commander using provided sender for sending messages.
func NewCommander(sender Sender) Commander {
	return Commander{
		sender: sender,
	}
}

// SendFullSync requests synchronization of whole ERP catalog.
func (c Commander) SendFullSync(ctx context.Context) error {
	return c.Send(ctx, Command{Type: FullSync})
}

// SendIncrementalSync requests synchronization of recently updated ERP products.
func (c Commander) SendIncrementalSync(ctx context.Context) error {
	return c.Send(ctx, Command{Type: IncrementalSync})
}

// SendForceSync requests synchronization of single ERP product code.
func (c Commander) SendForceSync(ctx context.Context, code string) error {
	return c.Send(ctx, Command{Type: ForceSync, Code: code})
}

// SendStartScan requests full catalog stock audit.
func (c Commander) SendStartScan(ctx context.Context) error {
	return c.Send(ctx, Command{Type: StartScan})
}

// SendCancelScan requests cancellation of running catalog stock audit.
func (c Commander) SendCancelScan(ctx context.Context) error {
	return c.Send(ctx, Command{Type: CancelScan})
}

// SendMatchOverride maps ERP product code to storefront product handle.
func (c Commander) SendMatchOverride(ctx context.Context, code, handle string) error {
	return c.Send(ctx, Command{Type: MatchOverride, Code: code, Handle: handle})
}

// SendDeleteOverride removes manual mapping of ERP product code.
func (c Commander) SendDeleteOverride(ctx context.Context, code string) error {
	return c.Send(ctx, Command{Type: DeleteOverride, Code: code})
}

// Send validates and sends provided command.
func (c Commander) Send(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Type, err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
