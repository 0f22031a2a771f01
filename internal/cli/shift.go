package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/evtushenkodev/BeerCounter/internal/shift"
	"github.com/google/subcommands"
)

type openShiftCmd struct {
	app *App
}

func (*openShiftCmd) Name() string     { return "open-shift" }
func (*openShiftCmd) Synopsis() string { return "open a shift and capture the opening quantities" }
func (*openShiftCmd) Usage() string {
	return `open-shift

  Resets the received/sold accumulators and records the opening
  snapshot. Does nothing when a shift is already open.
`
}

func (*openShiftCmd) SetFlags(*flag.FlagSet) {}

func (c *openShiftCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Shift.Open(ctx); err != nil {
		if errors.Is(err, shift.ErrShiftAlreadyOpen) {
			fmt.Println("Shift is already open.")
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error opening shift: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Shift opened.")
	return subcommands.ExitSuccess
}

type closeShiftCmd struct {
	app *App
	yes bool
}

func (*closeShiftCmd) Name() string     { return "close-shift" }
func (*closeShiftCmd) Synopsis() string { return "close the shift and export the reconciliation report" }
func (*closeShiftCmd) Usage() string {
	return `close-shift [-yes]

  Asks for confirmation, then writes shift_data_<DDMMYYYY>.xlsx and
  closes the shift. With -yes the prompt is skipped.
`
}

func (c *closeShiftCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "close without asking for confirmation")
}

func (c *closeShiftCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	confirm := shift.Confirmer(func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
	if c.yes {
		confirm = func(string) bool { return true }
	}

	err := c.app.Shift.RequestClose(ctx, confirm)
	switch {
	case errors.Is(err, shift.ErrShiftNotOpen):
		fmt.Fprintln(os.Stderr, "Error: no shift is open.")
		return subcommands.ExitFailure
	case errors.Is(err, shift.ErrExportFailed):
		// The shift is closed; only the report write failed.
		fmt.Fprintf(os.Stderr, "Shift closed, but the report could not be written: %v\n", err)
		fmt.Fprintln(os.Stderr, "Use 'save' to retry the export.")
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error closing shift: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.app.Shift.State() == model.ShiftOpen {
		fmt.Println("Close cancelled; shift remains open.")
		return subcommands.ExitSuccess
	}
	fmt.Println("Shift closed.")
	return subcommands.ExitSuccess
}
