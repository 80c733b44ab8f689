// Package server exposes the investment engine over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/metrics"
	"github.com/iwvelando/rental-forecast/internal/report"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/output"
	"github.com/iwvelando/rental-forecast/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	tracerName      = "github.com/iwvelando/rental-forecast/internal/server"
	requestIDHeader = "X-Request-ID"
)

type handler struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	maxUploadSize int64
	version       string
}

type calculateOptions struct {
	Sensitivity  bool
	Amortization bool
}

// NewHandler constructs the HTTP handler that serves the calculation API and
// Prometheus metrics.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		tracer:        otel.Tracer(tracerName),
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Calculation from a JSON document shaped like the YAML configuration
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Calculation from an uploaded YAML configuration
	mux.HandleFunc("/api/upload", h.handleUpload)

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

type calculateResponse struct {
	RequestID  string        `json:"requestId"`
	Report     output.Report `json:"report"`
	CSV        string        `json:"csv"`
	Markdown   string        `json:"markdown"`
	Duration   string        `json:"duration"`
	ConfigYAML string        `json:"configYaml,omitempty"`
}

type errorResponse struct {
	RequestID  string   `json:"requestId"`
	Error      string   `json:"error"`
	Field      string   `json:"field,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// requestError carries the HTTP status and details of a failed request.
type requestError struct {
	status     int
	msg        string
	violations []string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...interface{}) *requestError {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleCalculate"
	start := time.Now()
	requestID := h.requestID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.fail(w, requestID, op, badRequest("failed to decode configuration: %v", err))
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	options := calculateOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.fail(w, requestID, op, badRequest("invalid options payload: expected object"))
			return
		}
		options.Sensitivity = coerceBool(optsMap["sensitivity"])
		options.Amortization = coerceBool(optsMap["amortization"])
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.fail(w, requestID, op, badRequest("invalid config payload: expected object"))
			return
		}
		configPayload = cfgMap
	} else {
		configPayload = make(map[string]interface{}, len(payload))
		for key, value := range payload {
			if key != "options" {
				configPayload[key] = value
			}
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.fail(w, requestID, op, badRequest("failed to encode configuration: %v", err))
		return
	}

	h.calculate(r.Context(), w, requestID, op, metrics.SourceAPI, start, configPayload, configBytes, options)
}

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	const op = "server.handleUpload"
	start := time.Now()
	requestID := h.requestID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.fail(w, requestID, op, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize),
			})
			return
		}
		h.fail(w, requestID, op, badRequest("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.fail(w, requestID, op, badRequest("missing configuration file"))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.String("requestId", requestID),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.fail(w, requestID, op, &requestError{
			status: http.StatusInternalServerError,
			msg:    fmt.Sprintf("failed to read configuration: %v", err),
		})
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.fail(w, requestID, op, badRequest("error reading config data, %v", err))
		return
	}

	options := calculateOptions{
		Sensitivity:  coerceBool(r.FormValue("sensitivity")),
		Amortization: coerceBool(r.FormValue("amortization")),
	}
	h.calculate(r.Context(), w, requestID, op, metrics.SourceUpload, start, configMap, configBytes, options)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// calculate validates the document against the input schema, loads it as a
// configuration and runs the engine. configDoc and configBytes describe the
// same document.
func (h *handler) calculate(ctx context.Context, w http.ResponseWriter, requestID, op, source string, start time.Time, configDoc map[string]interface{}, configBytes []byte, opts calculateOptions) {
	_, span := h.tracer.Start(ctx, "calculate", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.String("calculation.source", source),
		attribute.Bool("calculation.sensitivity", opts.Sensitivity),
		attribute.Bool("calculation.amortization", opts.Amortization),
	)

	rep, err := h.buildReport(requestID, source, configDoc, configBytes, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.fail(w, requestID, op, err)
		return
	}

	csvData, err := output.CsvString(rep)
	if err != nil {
		h.fail(w, requestID, op, err)
		return
	}
	markdown, err := output.MarkdownString(rep)
	if err != nil {
		h.fail(w, requestID, op, err)
		return
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Float64("calculation.irr", rep.Result.IRR),
		attribute.Int("calculation.years", len(rep.Result.Years)),
	)

	h.logger.Info("calculation completed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("years", len(rep.Result.Years)),
		zap.Bool("sensitivity", rep.Sensitivity != nil),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		RequestID:  requestID,
		Report:     rep,
		CSV:        csvData,
		Markdown:   markdown,
		Duration:   elapsed.String(),
		ConfigYAML: string(configBytes),
	})
}

func (h *handler) buildReport(requestID, source string, configDoc map[string]interface{}, configBytes []byte, opts calculateOptions) (output.Report, error) {
	violations, err := validation.ValidateDocument(configDoc)
	if err != nil {
		return output.Report{}, badRequest("failed to validate configuration: %v", err)
	}
	if len(violations) > 0 {
		return output.Report{}, &requestError{
			status:     http.StatusBadRequest,
			msg:        "configuration failed schema validation",
			violations: violations,
		}
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		return output.Report{}, badRequest("%v", err)
	}

	return report.Build(h.logger.With(zap.String("requestId", requestID)), cfg, report.Options{
		Sensitivity:  opts.Sensitivity,
		Amortization: opts.Amortization,
		Source:       source,
	})
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

// requestID returns the caller's request ID or a new one and echoes it in the response.
func (h *handler) requestID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	return id
}

// fail maps err to a status code, records the failure and writes the error body.
// Precondition violations and schema errors are client errors.
func (h *handler) fail(w http.ResponseWriter, requestID, op string, err error) {
	resp := errorResponse{RequestID: requestID, Error: err.Error()}
	status := http.StatusInternalServerError

	var reqErr *requestError
	var precondition *investment.PreconditionError
	switch {
	case errors.As(err, &reqErr):
		status = reqErr.status
		resp.Violations = reqErr.violations
	case errors.As(err, &precondition):
		status = http.StatusBadRequest
		resp.Field = precondition.Field
	}

	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.Error(err),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
