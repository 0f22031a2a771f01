package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type statusCmd struct {
	app *App
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show shift state and current quantities" }
func (*statusCmd) Usage() string {
	return `status

  Prints the shift state and one line per item with its quantity and
  the received/sold accumulators.
`
}

func (*statusCmd) SetFlags(*flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("Shift: %s\n", c.app.Shift.State())

	items := c.app.Ledger.List()
	if len(items) == 0 {
		fmt.Println("No inventory loaded.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQUANTITY\tRECEIVED\tSOLD")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\n", it.Name, it.Quantity, it.Received, it.Sold)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
