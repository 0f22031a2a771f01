package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/google/subcommands"
)

// sellPresets mirror the preset buttons of the counter dialog.
var sellPresets = []float64{1.0, 1.5, 2.0}

type receiveCmd struct {
	app    *App
	name   string
	amount float64
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "book received stock for an item" }
func (*receiveCmd) Usage() string {
	return `receive -name <item> -amount <liters>

  Increases the item's quantity and its received accumulator. A negative
  amount corrects an earlier receipt.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "item name (required)")
	f.Float64Var(&c.amount, "amount", 0, "amount in liters (required)")
}

func (c *receiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}

	item, err := c.app.Ledger.Receive(ctx, c.name, c.amount)
	if err != nil {
		return reportAdjustError(err)
	}
	fmt.Printf("Received %.1f l  %s (now %.1f l)\n", c.amount, item.Name, item.Quantity)
	return subcommands.ExitSuccess
}

type sellCmd struct {
	app    *App
	name   string
	amount float64
	preset float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "book sold stock for an item" }
func (*sellCmd) Usage() string {
	return `sell -name <item> (-amount <liters> | -preset <1|1.5|2>)

  Decreases the item's quantity and increases its sold accumulator. The
  sale is rejected when not enough stock is on hand.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "item name (required)")
	f.Float64Var(&c.amount, "amount", 0, "amount in liters")
	f.Float64Var(&c.preset, "preset", 0, "preset amount: 1, 1.5 or 2 liters")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}

	amount := c.amount
	if c.preset != 0 {
		if c.amount != 0 {
			fmt.Fprintln(os.Stderr, "Error: -amount and -preset are mutually exclusive.")
			return subcommands.ExitUsageError
		}
		valid := false
		for _, p := range sellPresets {
			if c.preset == p {
				valid = true
				break
			}
		}
		if !valid {
			fmt.Fprintln(os.Stderr, "Error: -preset must be 1, 1.5 or 2.")
			return subcommands.ExitUsageError
		}
		amount = c.preset
	}

	item, err := c.app.Ledger.Sell(ctx, c.name, amount)
	if err != nil {
		return reportAdjustError(err)
	}
	fmt.Printf("Sold %.1f l  %s (now %.1f l)\n", amount, item.Name, item.Quantity)
	return subcommands.ExitSuccess
}

func reportAdjustError(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, ledger.ErrInsufficientStock):
		fmt.Fprintln(os.Stderr, "Error: not enough stock for this sale.")
	case errors.Is(err, ledger.ErrItemNotFound):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	case errors.Is(err, ledger.ErrPersistFailed):
		fmt.Fprintf(os.Stderr, "Warning: change applied but not saved: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}
