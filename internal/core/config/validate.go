package config

import (
	"fmt"
	"slices"

	"github.com/hay-kot/criterio"

	"github.com/scramble-dev/scramble/internal/core/charset"
	"github.com/scramble-dev/scramble/internal/core/compose"
)

var (
	confirmModes = []string{ConfirmNone, ConfirmBatch, ConfirmEach, ConfirmTUI}
	errorModes   = []string{ErrorsIgnore, ErrorsWarn, ErrorsHalt}
	caseModes    = []string{"", "lower", "upper", "mixed"}
)

// Validate checks that the configuration is valid, collecting every problem
// as a criterio field error.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if !slices.Contains(charset.Selections, c.Rename.CharSet) {
		errs = errs.Append("rename.char_set", fmt.Errorf("unknown character set %q", c.Rename.CharSet))
	}
	if c.Rename.CharSet == charset.SelCustom && c.Rename.CustomChars == "" {
		errs = errs.Append("rename.custom_chars", fmt.Errorf("required when char_set is custom"))
	}
	if !slices.Contains(caseModes, c.Rename.Case) {
		errs = errs.Append("rename.case", fmt.Errorf("must be one of lower, upper, mixed"))
	}
	if c.Rename.Length < 1 {
		errs = errs.Append("rename.length", fmt.Errorf("must be at least 1, got %d", c.Rename.Length))
	}
	if !slices.Contains(compose.ExtModes, c.Rename.ExtMode) {
		errs = errs.Append("rename.ext_mode", fmt.Errorf("unknown extension mode %q", c.Rename.ExtMode))
	}
	if !slices.Contains(confirmModes, c.Rename.Confirm) {
		errs = errs.Append("rename.confirm", fmt.Errorf("unknown confirm mode %q", c.Rename.Confirm))
	}
	if c.Rename.BatchSize != nil && *c.Rename.BatchSize < 0 {
		errs = errs.Append("rename.batch_size", fmt.Errorf("must not be negative, got %d", *c.Rename.BatchSize))
	}
	if !slices.Contains(errorModes, c.Rename.Errors) {
		errs = errs.Append("rename.errors", fmt.Errorf("unknown error handling mode %q", c.Rename.Errors))
	}

	if c.Engine.StrategyThreshold <= 0 || c.Engine.StrategyThreshold > 1 {
		errs = errs.Append("engine.strategy_threshold", fmt.Errorf("must be in (0, 1], got %g", c.Engine.StrategyThreshold))
	}

	return errs.ToError()
}
