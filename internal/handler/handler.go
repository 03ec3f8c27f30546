package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/rabbitmq"
	"github.com/MichalMitros/stock-reconciler/internal/report"
	"github.com/MichalMitros/stock-reconciler/internal/scanner"
	"github.com/MichalMitros/stock-reconciler/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Syncer --filename syncer.go
//go:generate mockery --name Scanner --filename scanner.go
//go:generate mockery --name Overrides --filename overrides.go
//go:generate mockery --name SystemLog --filename systemlog.go

const severityError = "error"

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Syncer synchronizes ERP catalog into canonical store.
type Syncer interface {
	FullSync(ctx context.Context) (*models.SyncRun, error)
	IncrementalSync(ctx context.Context) (*models.SyncRun, error)
	ForceSync(ctx context.Context, code string) (*models.SyncRun, error)
}

// Scanner runs catalog stock audit in background.
type Scanner interface {
	Start(ctx context.Context, onFinish scanner.FinishFunc) error
	Cancel() bool
}

// Overrides manages manual code to storefront handle mappings.
type Overrides interface {
	SetOverride(ctx context.Context, code, handle string) error
	DeleteOverride(ctx context.Context, code string) error
}

// SystemLog stores system events for operators.
type SystemLog interface {
	LogSystemEvent(ctx context.Context, event models.SystemEvent) error
}

// RMQHandler handles operator commands received from RMQ.
type RMQHandler struct {
	consumer  Consumer
	syncer    Syncer
	scanner   Scanner
	overrides Overrides
	systemLog SystemLog
	reportDir string
	logger    *zerolog.Logger
	syncs     sync.WaitGroup
}

// NewHandler returns new RMQHandler. Scan reports are written to reportDir.
func NewHandler(
	consumer Consumer,
	syncer Syncer,
	scanner Scanner,
	overrides Overrides,
	systemLog SystemLog,
	reportDir string,
	logger *zerolog.Logger,
) *RMQHandler {
	return &RMQHandler{
		consumer:  consumer,
		syncer:    syncer,
		scanner:   scanner,
		overrides: overrides,
		systemLog: systemLog,
		reportDir: reportDir,
		logger:    logger,
	}
}

// Start starts consuming and handling operator commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle decodes and executes single command message.
// Sync commands run in background so scan commands aren't queued behind long syncs.
// Failed commands are recorded in system log.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		h.logFailure(ctx, cmd, err)
		return err
	}

	if isSync(cmd.Type) {
		h.syncs.Add(1)
		go func() {
			defer h.syncs.Done()
			_ = h.run(ctx, cmd)
		}()
		return nil
	}

	return h.run(ctx, cmd)
}

// Wait blocks until all background syncs are finished.
func (h *RMQHandler) Wait() {
	h.syncs.Wait()
}

func (h *RMQHandler) run(ctx context.Context, cmd commander.Command) error {
	h.logger.Debug().
		Str("type", string(cmd.Type)).
		Str("code", cmd.Code).
		Msg("command started")

	if err := h.execute(ctx, cmd); err != nil {
		err = fmt.Errorf("%s command failed: %w", cmd.Type, err)
		h.logFailure(ctx, cmd, err)
		return err
	}

	h.logger.Debug().
		Str("type", string(cmd.Type)).
		Str("code", cmd.Code).
		Msg("command finished")

	return nil
}

func isSync(t commander.CommandType) bool {
	switch t {
	case commander.FullSync, commander.IncrementalSync, commander.ForceSync:
		return true
	default:
		return false
	}
}

func (h *RMQHandler) execute(ctx context.Context, cmd commander.Command) error {
	switch cmd.Type {
	case commander.FullSync:
		_, err := h.syncer.FullSync(ctx)
		return err
	case commander.IncrementalSync:
		_, err := h.syncer.IncrementalSync(ctx)
		return err
	case commander.ForceSync:
		_, err := h.syncer.ForceSync(ctx, cmd.Code)
		return err
	case commander.StartScan:
		return h.scanner.Start(ctx, h.saveReport)
	case commander.CancelScan:
		if !h.scanner.Cancel() {
			return ErrScanNotRunning
		}
		return nil
	case commander.MatchOverride:
		return h.overrides.SetOverride(ctx, cmd.Code, cmd.Handle)
	case commander.DeleteOverride:
		return h.overrides.DeleteOverride(ctx, cmd.Code)
	default:
		return fmt.Errorf("%w: unknown type %q", commander.ErrInvalidCommand, cmd.Type)
	}
}

// saveReport writes non-matching rows of finished scan to report directory.
func (h *RMQHandler) saveReport(progress scanner.Progress, rows []models.AuditRow) {
	paths, err := report.Save(h.reportDir, time.Now().UTC(), rows)
	if err != nil {
		h.logger.Error().Err(err).Msg("can't save audit report")
		return
	}

	h.logger.Info().
		Str("state", string(progress.State)).
		Int("scanned", progress.Scanned).
		Int("mismatches", progress.MismatchCount).
		Strs("files", paths).
		Msg("audit report saved")
}

func (h *RMQHandler) logFailure(ctx context.Context, cmd commander.Command, cmdErr error) {
	event := models.SystemEvent{
		Severity: severityError,
		Message:  cmdErr.Error(),
		Context: map[string]any{
			"command": string(cmd.Type),
		},
		CreatedAt: time.Now().UTC(),
	}
	if cmd.Code != "" {
		event.Context["code"] = cmd.Code
	}
	if cmd.Handle != "" {
		event.Context["handle"] = cmd.Handle
	}

	if err := h.systemLog.LogSystemEvent(ctx, event); err != nil {
		h.logger.Error().Err(err).Msg("can't log failed command")
	}
}

func decodeMessage(msg []byte) (commander.Command, error) {
	var cmd commander.Command
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return commander.Command{}, fmt.Errorf("can't decode command: %w", err)
	}

	if err := cmd.Validate(); err != nil {
		return cmd, fmt.Errorf("can't decode command: %w", err)
	}

	return cmd, nil
}
