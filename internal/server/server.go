// Package server exposes the simulation engine and the scenario store over a
// JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/iwvelando/invoice-roi/internal/report"
	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/internal/store"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"go.uber.org/zap"
)

// Options tunes the handler returned by NewHandler.
type Options struct {
	MaxBodySize int64
	Version     string
	// CORSOrigins lists the browser origins allowed to call the API. Empty
	// allows any origin.
	CORSOrigins []string
	// RateLimitRequests caps write requests per client within RateLimitWindow.
	// Zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CurrencySymbol    string
}

type handler struct {
	logger      *zap.Logger
	store       store.Store
	engine      *simulation.Engine
	renderer    *report.Renderer
	limiter     *RateLimiter
	maxBodySize int64
	version     string
	corsOrigins map[string]struct{}
}

// NewHandler constructs the HTTP handler that serves the simulation and
// scenario API.
func NewHandler(logger *zap.Logger, st store.Store, engine *simulation.Engine, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = simulation.NewDefaultEngine()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = constants.DefaultVersion
	}

	h := &handler{
		logger:      logger,
		store:       st,
		engine:      engine,
		renderer:    report.NewRenderer(opts.CurrencySymbol, engine.Constants()),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}
	if len(opts.CORSOrigins) > 0 {
		h.corsOrigins = make(map[string]struct{}, len(opts.CORSOrigins))
		for _, origin := range opts.CORSOrigins {
			h.corsOrigins[strings.TrimRight(strings.TrimSpace(origin), "/")] = struct{}{}
		}
	}
	if opts.RateLimitRequests > 0 {
		window := opts.RateLimitWindow
		if window <= 0 {
			window = constants.DefaultRateLimitWindow
		}
		h.limiter = NewRateLimiter(opts.RateLimitRequests, window)
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.handleMethodNotAllowed)

	r.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	// Computation and writes are rate limited per client.
	r.Handle("/api/simulate", h.limit(h.handleSimulate)).Methods(http.MethodPost)
	r.Handle("/api/report", h.limit(h.handleReport)).Methods(http.MethodPost)
	r.Handle("/api/scenarios", h.limit(h.handleSaveScenario)).Methods(http.MethodPost)
	r.Handle("/api/scenarios/{id}", h.limit(h.handleDeleteScenario)).Methods(http.MethodDelete)

	r.HandleFunc("/api/scenarios", h.handleListScenarios).Methods(http.MethodGet)
	r.HandleFunc("/api/scenarios/{id}", h.handleGetScenario).Methods(http.MethodGet)
	r.HandleFunc("/api/scenarios/{id}/export", h.handleExportScenario).Methods(http.MethodGet)
	r.HandleFunc("/api/scenarios/{id}/report", h.handleScenarioReport).Methods(http.MethodGet)

	return h.cors(r)
}

func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Invoice ROI API is running",
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("scenario store unavailable",
			zap.String("op", "server.handleHealth"),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusNotFound, "Not found.", r.URL.Path, "server.handleNotFound")
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusMethodNotAllowed, "Method not allowed.",
		fmt.Sprintf("%s is not supported on %s", r.Method, r.URL.Path), "server.handleMethodNotAllowed")
}

type simulateResponse struct {
	Success bool              `json:"success"`
	Results simulation.Result `json:"results"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"

	input, ok := h.decodeInput(w, r, op)
	if !ok {
		return
	}

	result, err := h.engine.Run(input)
	if err != nil {
		h.respondRunError(w, err, "Error running simulation.", op)
		return
	}

	h.logger.Debug("simulation computed",
		zap.String("op", op),
		zap.Float64("monthly_savings", result.MonthlySavings),
	)
	h.writeJSON(w, http.StatusOK, simulateResponse{Success: true, Results: result})
}

// decodeInput reads the request body as a JSON object and converts it to an
// Input, writing the error response itself when it cannot.
func (h *handler) decodeInput(w http.ResponseWriter, r *http.Request, op string) (simulation.Input, bool) {
	var payload map[string]interface{}
	if !h.decodeBody(w, r, &payload, true, op) {
		return simulation.Input{}, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	input, err := simulation.DecodeInput(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "Invalid simulation input.", err.Error(), op)
		return simulation.Input{}, false
	}
	return input, true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, useNumber bool, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	if useNumber {
		decoder.UseNumber()
	}
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge, "Request body too large.",
				fmt.Sprintf("body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, "Malformed request body.",
			fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondRunError(w http.ResponseWriter, err error, msg string, op string) {
	if errors.Is(err, simulation.ErrInvalidInput) {
		h.respondErrorWithOp(w, http.StatusBadRequest, "Invalid simulation input.", err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, msg, err.Error(), op)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, detail string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", detail),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, fields...)
	} else {
		h.logger.Info(msg, fields...)
	}

	h.writeJSON(w, status, errorResponse{Success: false, Message: msg, Error: detail})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
