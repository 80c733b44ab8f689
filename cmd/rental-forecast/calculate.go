package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

type calculateCmd struct {
	scenario    scenarioFlags
	sensitivity bool
}

func (*calculateCmd) Name() string     { return "calculate" }
func (*calculateCmd) Synopsis() string { return "project cash flow and returns for a scenario" }
func (*calculateCmd) Usage() string {
	return `rental-forecast calculate [-config <file>] [-output-format <format>] [-sensitivity]

  Projects yearly cash flow, depreciation, tax savings, IRR and NPV for the
  scenario in the configuration file.
`
}

func (c *calculateCmd) SetFlags(f *flag.FlagSet) {
	c.scenario.register(f)
	f.BoolVar(&c.sensitivity, "sensitivity", false, "include rent and appreciation sensitivity tables")
}

func (c *calculateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if err := c.scenario.run(os.Stdout, c.sensitivity); err != nil {
		return fatalf("%v", err)
	}
	return subcommands.ExitSuccess
}
