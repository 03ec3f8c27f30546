package commander

import (
	"errors"
	"fmt"
)

// ErrInvalidCommand is returned for commands with unknown type or missing arguments.
var ErrInvalidCommand = errors.New("invalid command")

// CommandType is type of operator command.
type CommandType string

const (
	FullSync        CommandType = "full-sync"
	IncrementalSync CommandType = "incremental-sync"
	ForceSync       CommandType = "force-sync"
	StartScan       CommandType = "start-scan"
	CancelScan      CommandType = "cancel-scan"
	MatchOverride   CommandType = "match-override"
	DeleteOverride  CommandType = "delete-override"
)

// Command is operator command sent to reconciler.
type Command struct {
	Type CommandType `json:"type"`
	// Code is ERP product code, required by force-sync, match-override and delete-override.
	Code string `json:"code,omitempty"`
	// Handle is storefront product handle, required by match-override.
	Handle string `json:"handle,omitempty"`
}

// Validate checks if command has known type and all required arguments.
func (c Command) Validate() error {
	switch c.Type {
	case FullSync, IncrementalSync, StartScan, CancelScan:
		return nil
	case ForceSync, DeleteOverride:
		if c.Code == "" {
			return fmt.Errorf("%w: %s requires code", ErrInvalidCommand, c.Type)
		}
		return nil
	case MatchOverride:
		if c.Code == "" || c.Handle == "" {
			return fmt.Errorf("%w: %s requires code and handle", ErrInvalidCommand, c.Type)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, c.Type)
	}
}
