package shift

import (
	"context"
	"errors"

	"github.com/evtushenkodev/BeerCounter/internal/model"
)

var (
	ErrShiftAlreadyOpen = errors.New("shift already open")
	ErrShiftNotOpen     = errors.New("shift not open")
	// ErrExportFailed wraps a report write failure. The shift still
	// transitions to closed; the report can be re-issued with a manual
	// export.
	ErrExportFailed = errors.New("export failed")
)

// Confirmer answers the close-shift confirmation prompt.
type Confirmer func(prompt string) bool

// Exporter writes a reconciliation report to a spreadsheet file.
type Exporter interface {
	ExportReport(rows []model.ReconciliationRow, totals model.ReconciliationTotals, path string) error
}

// StateRepository persists the shift flag and opening snapshot across
// restarts.
type StateRepository interface {
	GetState(ctx context.Context, key string) (string, bool, error)
	SetState(ctx context.Context, key, value string) error
}

type UseCase interface {
	// Restore picks the persisted shift state back up at startup, so a
	// crash mid-shift resumes as open with its original snapshot.
	Restore(ctx context.Context) error
	State() model.ShiftState

	// Open starts a shift: accumulators reset, opening snapshot captured.
	Open(ctx context.Context) error
	// RequestClose runs the confirmation prompt and closes on an
	// affirmative answer. A negative answer leaves the shift open.
	RequestClose(ctx context.Context, confirm Confirmer) error
	// Close builds and exports the reconciliation report, then
	// transitions to closed. The transition commits even when the
	// export fails; see ErrExportFailed.
	Close(ctx context.Context) error

	// Export writes the current reconciliation state to a dated file
	// without touching shift state. Returns the file path.
	Export(ctx context.Context) (string, error)
}
