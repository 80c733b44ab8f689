package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/pkg/constants"
)

type validateCmd struct {
	configPath string
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check a scenario file without calculating it" }
func (*validateCmd) Usage() string {
	return `rental-forecast validate [-config <file>]

  Checks the configuration against the input schema and the engine
  preconditions, and lists any warnings.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	ok, err := validateScenario(os.Stdout, c.configPath)
	if err != nil {
		return fatalf("%v", err)
	}
	if !ok {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// validateScenario reports schema violations, precondition failures and
// warnings for the scenario at path. It returns false when the scenario
// cannot be calculated.
func validateScenario(w io.Writer, path string) (bool, error) {
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return false, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}

	violations, err := conf.ValidateSchema()
	if err != nil {
		return false, err
	}
	for _, violation := range violations {
		fmt.Fprintf(w, "error: %s\n", violation)
	}

	valid := len(violations) == 0
	if _, err := conf.ToInputs(); err != nil {
		var precondition *investment.PreconditionError
		if !errors.As(err, &precondition) {
			return false, err
		}
		fmt.Fprintf(w, "error: %s\n", precondition.Error())
		valid = false
	}

	for _, warning := range conf.ValidateConfiguration() {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	if valid {
		fmt.Fprintf(w, "%s is valid\n", path)
	}
	return valid, nil
}
