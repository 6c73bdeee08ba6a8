package validation

import (
	"fmt"

	"github.com/paydownlabs/paydown/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format %s; expected %s or %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}
