package config

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"matchwatch/internal/errorwrapper"
)

// ValidateConfig validates the loaded configuration against the struct tags.
// The first failing field is reported as a typed validation error so callers
// can log which knob is wrong.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errorwrapper.NewError("config is nil")
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errorwrapper.NewValidationError(fe.Namespace(), fe.Value(), "failed on the '"+fe.Tag()+"' rule")
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}
	return nil
}
