package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/evtushenkodev/BeerCounter/config"
	"github.com/evtushenkodev/BeerCounter/internal/cli"
	sqliteRepoPkg "github.com/evtushenkodev/BeerCounter/internal/ledger/repository"
	ledgerUCPkg "github.com/evtushenkodev/BeerCounter/internal/ledger/usecase"
	shiftUCPkg "github.com/evtushenkodev/BeerCounter/internal/shift/usecase"
	"github.com/evtushenkodev/BeerCounter/internal/spreadsheet"
	"github.com/evtushenkodev/BeerCounter/pkg/logger"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.App.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Open the local database. A missing file is just an empty
	// counter, not a failure.
	_, statErr := os.Stat(cfg.App.DatabasePath)
	freshDB := os.IsNotExist(statErr)

	db, err := sqliteRepoPkg.Open(cfg.App.DatabasePath)
	if err != nil {
		appLogger.Fatal("Could not open database", zap.Error(err))
	}
	defer db.Close()

	repo := sqliteRepoPkg.NewSQLiteRepository(db)

	// 4. Restore the ledger and shift state.
	ctx := context.Background()
	ledgerUC := ledgerUCPkg.NewLedgerUseCase(repo, appLogger)
	if err := ledgerUC.Restore(ctx); err != nil {
		appLogger.Fatal("Could not restore inventory", zap.Error(err))
	}
	if freshDB {
		appLogger.Info("No inventory data yet; run 'import' to load a spreadsheet")
	}

	sheets := spreadsheet.New()
	shiftUC := shiftUCPkg.NewShiftUseCase(ledgerUC, repo, sheets, cfg.App.ExportDir, appLogger)
	if err := shiftUC.Restore(ctx); err != nil {
		appLogger.Fatal("Could not restore shift state", zap.Error(err))
	}

	// 5. Run the command.
	app := &cli.App{
		Ledger: ledgerUC,
		Shift:  shiftUC,
		Sheets: sheets,
		Logger: appLogger,
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cli.Commands(app) {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(ctx)))
}
