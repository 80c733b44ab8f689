package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

type sensitivityCmd struct {
	scenario scenarioFlags
}

func (*sensitivityCmd) Name() string { return "sensitivity" }
func (*sensitivityCmd) Synopsis() string {
	return "calculate a scenario with rent and appreciation sensitivity tables"
}
func (*sensitivityCmd) Usage() string {
	return `rental-forecast sensitivity [-config <file>] [-output-format <format>]

  Re-runs the scenario with monthly rent changed by -20%, -10%, 0%, +10% and
  +20%, and with appreciation rates from 1% to 5%.
`
}

func (c *sensitivityCmd) SetFlags(f *flag.FlagSet) {
	c.scenario.register(f)
}

func (c *sensitivityCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if err := c.scenario.run(os.Stdout, true); err != nil {
		return fatalf("%v", err)
	}
	return subcommands.ExitSuccess
}
