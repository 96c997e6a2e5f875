// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/invoice-roi/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatJSON {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatJSON, format)
	}
	return nil
}

// ValidateStorageDriver checks if the storage driver is one of the supported back ends.
func ValidateStorageDriver(driver string) error {
	switch driver {
	case constants.StorageDriverMemory, constants.StorageDriverSQLite, constants.StorageDriverRedis:
		return nil
	}
	return fmt.Errorf("expected storage driver of %s, %s or %s, got %q",
		constants.StorageDriverMemory, constants.StorageDriverSQLite, constants.StorageDriverRedis, driver)
}
