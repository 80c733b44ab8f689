package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/rental-forecast/internal/server"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var exampleConfig = filepath.Join("..", "..", constants.ExampleConfigFile)

func writeScenario(t *testing.T, replacements ...string) string {
	t.Helper()
	data, err := os.ReadFile(exampleConfig)
	require.NoError(t, err)

	contents := strings.NewReplacer(replacements...).Replace(string(data))
	path := filepath.Join(t.TempDir(), constants.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range commands() {
		names = append(names, c.Name())
		assert.NotEmpty(t, c.Synopsis())
		assert.NotEmpty(t, c.Usage())
	}
	assert.Equal(t, []string{"calculate", "sensitivity", "validate", "serve"}, names)
}

func TestScenarioRunFormats(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{constants.OutputFormatPretty, "--- Results for Maple Street single family ---"},
		{constants.OutputFormatCSV, "metric,value"},
		{constants.OutputFormatJSON, `"name": "Maple Street single family"`},
		{constants.OutputFormatMarkdown, "# Maple Street single family"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s := scenarioFlags{configPath: exampleConfig, outputFormat: tt.format, logLevel: "error"}
			var buf bytes.Buffer
			require.NoError(t, s.run(&buf, false))
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestScenarioRunSensitivity(t *testing.T) {
	path := writeScenario(t, "sensitivity: true", "sensitivity: false")

	s := scenarioFlags{configPath: path, outputFormat: constants.OutputFormatJSON, logLevel: "error"}
	var buf bytes.Buffer
	require.NoError(t, s.run(&buf, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "sensitivity")

	buf.Reset()
	require.NoError(t, s.run(&buf, true))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "sensitivity")
}

func TestScenarioRunAmortization(t *testing.T) {
	s := scenarioFlags{configPath: exampleConfig, outputFormat: constants.OutputFormatCSV, logLevel: "error"}
	var buf bytes.Buffer
	require.NoError(t, s.run(&buf, false))
	assert.NotContains(t, buf.String(), "remaining principal")

	s.amortization = true
	buf.Reset()
	require.NoError(t, s.run(&buf, false))
	assert.Contains(t, buf.String(), "month,payment,principal,interest,remaining principal")
	assert.Contains(t, buf.String(), "\n360,")
}

func TestScenarioRunErrors(t *testing.T) {
	s := scenarioFlags{configPath: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Error(t, s.run(&bytes.Buffer{}, false))

	s = scenarioFlags{configPath: exampleConfig, outputFormat: "xml", logLevel: "error"}
	assert.Error(t, s.run(&bytes.Buffer{}, false))

	s = scenarioFlags{configPath: exampleConfig, logLevel: "loud"}
	assert.Error(t, s.run(&bytes.Buffer{}, false))

	s = scenarioFlags{configPath: writeScenario(t, "downPayment: 60000", "downPayment: 300000"), logLevel: "error"}
	assert.Error(t, s.run(&bytes.Buffer{}, false))
}

func TestValidateScenario(t *testing.T) {
	var buf bytes.Buffer
	ok, err := validateScenario(&buf, exampleConfig)
	require.NoError(t, err)
	assert.True(t, ok, buf.String())
	assert.Contains(t, buf.String(), "is valid")
}

func TestValidateScenarioFailures(t *testing.T) {
	var buf bytes.Buffer
	ok, err := validateScenario(&buf, writeScenario(t, "period: 10", "period: 45"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "error:")
	assert.NotContains(t, buf.String(), "is valid")

	buf.Reset()
	ok, err = validateScenario(&buf, writeScenario(t, "downPayment: 60000", "downPayment: 300000"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "downPayment")

	buf.Reset()
	ok, err = validateScenario(&buf, writeScenario(t, "loanTerm: 30", "loanTerm: 5"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "warning:")

	_, err = validateScenario(&buf, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg, err := server.LoadConfig("")
	require.NoError(t, err)
	cfg.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, zap.NewNop(), cfg)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeReportsListenErrors(t *testing.T) {
	cfg, err := server.LoadConfig("")
	require.NoError(t, err)
	cfg.Address = "invalid-address"

	err = serve(context.Background(), zap.NewNop(), cfg)
	assert.Error(t, err)
}
