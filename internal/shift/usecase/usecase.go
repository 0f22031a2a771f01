package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/evtushenkodev/BeerCounter/internal/report"
	"github.com/evtushenkodev/BeerCounter/internal/shift"
	"github.com/evtushenkodev/BeerCounter/pkg/logger"
	"go.uber.org/zap"
)

const (
	stateKeyShiftOpen = "shift_open"
	stateKeySnapshot  = "shift_snapshot"

	// Filenames carry the date as DDMMYYYY.
	dateLayout = "02012006"

	closePrompt = "Close the current shift?"
)

type shiftUseCase struct {
	mu        sync.Mutex
	state     model.ShiftState
	snapshot  map[string]float64
	ledger    ledger.UseCase
	states    shift.StateRepository
	exporter  shift.Exporter
	exportDir string
	logger    logger.ZapLogger
	nowFunc   func() time.Time
}

func NewShiftUseCase(lg ledger.UseCase, states shift.StateRepository, exporter shift.Exporter, exportDir string, log logger.ZapLogger) shift.UseCase {
	return &shiftUseCase{
		state:     model.ShiftClosed,
		ledger:    lg,
		states:    states,
		exporter:  exporter,
		exportDir: exportDir,
		logger:    log,
		nowFunc:   time.Now,
	}
}

var _ shift.UseCase = (*shiftUseCase)(nil)

func (uc *shiftUseCase) Restore(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	value, ok, err := uc.states.GetState(ctx, stateKeyShiftOpen)
	if err != nil {
		return fmt.Errorf("read shift state: %w", err)
	}
	if !ok || value != "1" {
		uc.state = model.ShiftClosed
		return nil
	}

	uc.state = model.ShiftOpen
	raw, ok, err := uc.states.GetState(ctx, stateKeySnapshot)
	if err != nil {
		return fmt.Errorf("read shift snapshot: %w", err)
	}
	uc.snapshot = map[string]float64{}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &uc.snapshot); err != nil {
			return fmt.Errorf("decode shift snapshot: %w", err)
		}
	}
	return nil
}

func (uc *shiftUseCase) State() model.ShiftState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *shiftUseCase) Open(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state == model.ShiftOpen {
		return shift.ErrShiftAlreadyOpen
	}

	// 1. Zero the per-shift accumulators before capturing the snapshot.
	if err := uc.ledger.ResetShiftAccumulators(ctx); err != nil {
		return err
	}

	// 2. Capture and persist the opening quantities.
	uc.snapshot = uc.ledger.Snapshot()
	raw, err := json.Marshal(uc.snapshot)
	if err != nil {
		return fmt.Errorf("encode shift snapshot: %w", err)
	}
	if err := uc.states.SetState(ctx, stateKeySnapshot, string(raw)); err != nil {
		return fmt.Errorf("persist shift snapshot: %w", err)
	}

	// 3. Flip and persist the flag.
	uc.state = model.ShiftOpen
	if err := uc.states.SetState(ctx, stateKeyShiftOpen, "1"); err != nil {
		return fmt.Errorf("persist shift state: %w", err)
	}
	uc.logger.Info("shift opened", zap.Int("items", len(uc.snapshot)))
	return nil
}

func (uc *shiftUseCase) RequestClose(ctx context.Context, confirm shift.Confirmer) error {
	uc.mu.Lock()
	open := uc.state == model.ShiftOpen
	uc.mu.Unlock()
	if !open {
		return shift.ErrShiftNotOpen
	}
	if confirm != nil && !confirm(closePrompt) {
		return nil
	}
	return uc.Close(ctx)
}

func (uc *shiftUseCase) Close(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state != model.ShiftOpen {
		return shift.ErrShiftNotOpen
	}

	rows, totals := report.Build(uc.ledger.List(), uc.snapshot)
	path := filepath.Join(uc.exportDir, "shift_data_"+uc.nowFunc().Format(dateLayout)+".xlsx")
	exportErr := uc.exporter.ExportReport(rows, totals, path)

	// The shift closes regardless of the export outcome, matching the
	// observed source behavior; a stuck storage fault must not leave
	// the operator unable to end the shift.
	uc.state = model.ShiftClosed
	uc.snapshot = nil
	if err := uc.states.SetState(ctx, stateKeyShiftOpen, "0"); err != nil {
		return fmt.Errorf("persist shift state: %w", err)
	}
	if err := uc.states.SetState(ctx, stateKeySnapshot, ""); err != nil {
		return fmt.Errorf("discard shift snapshot: %w", err)
	}

	if exportErr != nil {
		uc.logger.Error("shift report export failed", zap.String("path", path), zap.Error(exportErr))
		return fmt.Errorf("%w: %s: %v", shift.ErrExportFailed, path, exportErr)
	}
	uc.logger.Info("shift closed", zap.String("report", path))
	return nil
}

func (uc *shiftUseCase) Export(ctx context.Context) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	opening := uc.snapshot
	if opening == nil {
		opening = map[string]float64{}
	}
	rows, totals := report.Build(uc.ledger.List(), opening)
	path := filepath.Join(uc.exportDir, "data_"+uc.nowFunc().Format(dateLayout)+".xlsx")
	if err := uc.exporter.ExportReport(rows, totals, path); err != nil {
		return "", fmt.Errorf("%w: %s: %v", shift.ErrExportFailed, path, err)
	}
	uc.logger.Info("inventory exported", zap.String("file", path))
	return path, nil
}
