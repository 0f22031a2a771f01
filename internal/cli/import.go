package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct {
	app  *App
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "load the inventory list from an xlsx file" }
func (*importCmd) Usage() string {
	return `import -file <path>

  Replaces the whole inventory with the (name, quantity) rows of the
  spreadsheet. Any previous items and shift accumulators are discarded.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "xlsx file to import (required)")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

	items, err := c.app.Sheets.Import(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading spreadsheet: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.app.Ledger.Load(ctx, items); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inventory: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d items from %s\n", len(items), c.file)
	return subcommands.ExitSuccess
}
