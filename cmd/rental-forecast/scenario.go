package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/iwvelando/rental-forecast/internal/metrics"
	"github.com/iwvelando/rental-forecast/internal/report"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/output"
	"github.com/iwvelando/rental-forecast/pkg/validation"
	"go.uber.org/zap"
)

// scenarioFlags are shared by the commands that evaluate a scenario file.
type scenarioFlags struct {
	configPath   string
	outputFormat string
	logLevel     string
	style        string
	amortization bool
}

func (s *scenarioFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	f.StringVar(&s.outputFormat, "output-format", "", "output format override: pretty, csv, json, markdown")
	f.StringVar(&s.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	f.StringVar(&s.style, "style", "", "glamour style for markdown output (auto, dark, light, notty); empty prints raw markdown")
	f.BoolVar(&s.amortization, "amortization", false, "include the monthly loan amortization schedule")
}

// load reads the scenario and builds the logger it configures.
func (s *scenarioFlags) load() (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(s.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", s.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, s.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return conf, logger, nil
}

// format resolves the output format; the CLI override takes precedence over config.
func (s *scenarioFlags) format(conf *config.Configuration) (string, error) {
	outputFormat := conf.Output.Format
	if s.outputFormat != "" {
		outputFormat = s.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

// run evaluates the scenario and writes the report to w.
func (s *scenarioFlags) run(w io.Writer, forceSensitivity bool) error {
	conf, logger, err := s.load()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := s.format(conf)
	if err != nil {
		return err
	}

	rep, err := report.Build(logger, conf, report.Options{
		Sensitivity:  forceSensitivity,
		Amortization: s.amortization,
		Source:       metrics.SourceCLI,
	})
	if err != nil {
		logger.Error("failed to calculate investment",
			zap.String("op", "main.run"),
			zap.Error(err),
		)
		return err
	}

	for _, warning := range rep.Warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.run"),
		)
	}

	if outputFormat == constants.OutputFormatMarkdown {
		return output.MarkdownFormat(w, rep, s.style)
	}
	return output.Write(w, outputFormat, rep)
}
