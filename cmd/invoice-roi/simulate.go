package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadInput reads scenario inputs from a YAML file, such as one downloaded
// from the export endpoint.
func loadInput(path string) (simulation.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("failed to read input file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return simulation.Input{}, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	if raw == nil {
		raw = make(map[string]interface{})
	}
	return simulation.DecodeInput(raw)
}

func runSimulate(w io.Writer, logger *zap.Logger, inputPath, outputFormat, currencySymbol string) error {
	input, err := loadInput(inputPath)
	if err != nil {
		return err
	}

	result, err := simulation.NewDefaultEngine().Run(input)
	if err != nil {
		return err
	}
	logger.Debug("simulation computed",
		zap.String("op", "main.runSimulate"),
		zap.String("scenario_name", input.ScenarioName),
	)

	switch outputFormat {
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, input, result)
	default:
		return output.PrettyFormat(w, input, result, currencySymbol)
	}
}
