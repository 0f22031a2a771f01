package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type movementsCmd struct {
	app *App
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "list the adjustments recorded this shift" }
func (*movementsCmd) Usage() string {
	return `movements

  Prints the audit log of quantity adjustments since the shift opened.
`
}

func (*movementsCmd) SetFlags(*flag.FlagSet) {}

func (c *movementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	movements, err := c.app.Ledger.Movements(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading movements: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(movements) == 0 {
		fmt.Println("No movements recorded.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tITEM\tKIND\tCHANGE\tBEFORE\tAFTER")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%+.1f\t%.1f\t%.1f\n",
			m.CreatedAt.Format("15:04:05"), m.ItemName, m.Kind,
			m.QuantityChange, m.QuantityBefore, m.QuantityAfter)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
