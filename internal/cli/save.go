package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type saveCmd struct {
	app *App
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "export the current inventory to a dated xlsx file" }
func (*saveCmd) Usage() string {
	return `save

  Writes data_<DDMMYYYY>.xlsx with the current quantities and the
  received/sold accumulators. Shift state is untouched.
`
}

func (*saveCmd) SetFlags(*flag.FlagSet) {}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := c.app.Shift.Export(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving file: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %s\n", path)
	return subcommands.ExitSuccess
}
