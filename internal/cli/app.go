// Package cli exposes the counter's operations as subcommands. Each
// command is a thin adapter: it parses flags, calls a use case and
// formats the outcome; all rules live below.
package cli

import (
	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/evtushenkodev/BeerCounter/internal/shift"
	"github.com/evtushenkodev/BeerCounter/internal/spreadsheet"
	"github.com/evtushenkodev/BeerCounter/pkg/logger"
	"github.com/google/subcommands"
)

type App struct {
	Ledger ledger.UseCase
	Shift  shift.UseCase
	Sheets *spreadsheet.XLSX
	Logger logger.ZapLogger
}

// Commands lists every registered subcommand.
func Commands(app *App) []subcommands.Command {
	return []subcommands.Command{
		&importCmd{app: app},
		&saveCmd{app: app},
		&openShiftCmd{app: app},
		&closeShiftCmd{app: app},
		&receiveCmd{app: app},
		&sellCmd{app: app},
		&statusCmd{app: app},
		&movementsCmd{app: app},
	}
}
