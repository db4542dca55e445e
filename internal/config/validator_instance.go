package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report YAML keys rather than Go field names.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
			pattern := fl.Field().String()
			if pattern == "" || strings.ContainsRune(pattern, filepath.Separator) {
				return false
			}
			_, err := filepath.Match(pattern, "")
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}
