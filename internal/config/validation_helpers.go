package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// ValidateSettings checks settings against their struct tags.
func ValidateSettings(settings *Settings) error {
	if settings == nil {
		return apperrors.NewValidationError("settings", "settings are required", nil)
	}
	return convertValidationError(validatorInstance().Struct(settings))
}

// convertValidationError normalizes validator errors into ValidationErrors
// naming the offending YAML key.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return apperrors.NewValidationError(fe.Field(), describeFieldError(fe), err)
	}

	return apperrors.NewValidationError("settings", err.Error(), err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s, got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "glob":
		return fmt.Sprintf("is not a valid file pattern: %q", fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
}
