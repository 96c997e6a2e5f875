package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
	"github.com/iwvelando/invoice-roi/internal/report"
	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/internal/store"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type saveResponse struct {
	Success bool                `json:"success"`
	Data    simulation.Scenario `json:"data"`
}

type loadResponse struct {
	Success bool                `json:"success"`
	Inputs  simulation.Input    `json:"inputs"`
	Results simulation.Result   `json:"results"`
	Data    simulation.Scenario `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveScenario"

	input, ok := h.decodeInput(w, r, op)
	if !ok {
		return
	}
	if input.ScenarioName == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "Scenario name is required.",
			simulation.FieldScenarioName+" must not be empty", op)
		return
	}

	result, err := h.engine.Run(input)
	if err != nil {
		h.respondRunError(w, err, "Error saving scenario.", op)
		return
	}

	saved, err := h.store.Insert(r.Context(), simulation.NewScenario(input, result))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Error saving scenario.", err.Error(), op)
		return
	}

	h.logger.Info("scenario saved",
		zap.String("op", op),
		zap.String("id", saved.ID),
		zap.String("scenario_name", saved.ScenarioName),
	)
	h.writeJSON(w, http.StatusCreated, saveResponse{Success: true, Data: saved})
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListScenarios"

	scenarios, err := h.store.List(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to retrieve scenarios.", err.Error(), op)
		return
	}
	if scenarios == nil {
		scenarios = []simulation.Scenario{}
	}

	h.writeJSON(w, http.StatusOK, scenarios)
}

func (h *handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	scenario, ok := h.lookupScenario(w, r, "server.handleGetScenario")
	if !ok {
		return
	}

	inputs, results := scenario.Split()
	h.writeJSON(w, http.StatusOK, loadResponse{
		Success: true,
		Inputs:  inputs,
		Results: results,
		Data:    scenario,
	})
}

func (h *handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteScenario"

	id := mux.Vars(r)["id"]
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to delete scenario.", err.Error(), op)
		return
	}

	h.logger.Info("scenario deleted", zap.String("op", op), zap.String("id", id))
	h.writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Scenario deleted successfully."})
}

func (h *handler) handleExportScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportScenario"

	scenario, ok := h.lookupScenario(w, r, op)
	if !ok {
		return
	}

	inputs, _ := scenario.Split()
	data, err := yaml.Marshal(inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to export scenario.", err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(exportFilename(scenario)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write export", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleScenarioReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarioReport"

	scenario, ok := h.lookupScenario(w, r, op)
	if !ok {
		return
	}

	inputs, results := scenario.Split()
	h.writeReport(w, report.Report{
		ScenarioName: inputs.ScenarioName,
		Result:       results,
		Input:        &inputs,
	}, op)
}

type reportRequest struct {
	ScenarioName string             `json:"scenario_name"`
	Email        string             `json:"email"`
	Results      *simulation.Result `json:"results"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"

	var req reportRequest
	if !h.decodeBody(w, r, &req, false, op) {
		return
	}
	if req.Results == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "Results are required.", "results must be provided", op)
		return
	}

	h.logger.Info("report requested",
		zap.String("op", op),
		zap.String("scenario_name", req.ScenarioName),
		zap.String("email", strings.TrimSpace(req.Email)),
	)
	h.writeReport(w, report.Report{ScenarioName: req.ScenarioName, Result: *req.Results}, op)
}

func (h *handler) writeReport(w http.ResponseWriter, rep report.Report, op string) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, rep); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to generate report.", err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", attachment(report.Filename(rep.ScenarioName)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("failed to write report", zap.String("op", op), zap.Error(err))
	}
}

// lookupScenario fetches the scenario named by the {id} route variable,
// writing the error response itself when it cannot.
func (h *handler) lookupScenario(w http.ResponseWriter, r *http.Request, op string) (simulation.Scenario, bool) {
	id := mux.Vars(r)["id"]
	scenario, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, "Scenario not found.", fmt.Sprintf("no scenario with id %q", id), op)
		return simulation.Scenario{}, false
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, "Failed to retrieve scenario.", err.Error(), op)
		return simulation.Scenario{}, false
	}
	return scenario, true
}

func exportFilename(s simulation.Scenario) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(s.ScenarioName), "_")
	if name == "" || strings.Trim(name, "_") == "" {
		name = s.ID
	}
	return name + ".yaml"
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
