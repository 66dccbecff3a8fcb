package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	validationErrors := c.validateSettings()
	if c.General == nil {
		return validationErrors
	}

	if len(c.Sources) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "source",
			Message:   "configuration must contain at least one source",
		})
	} else {
		validationErrors = append(validationErrors, c.validateSources()...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// ValidateSettings validates every section except the sources, for commands
// that take their input from elsewhere.
func (c *Config) ValidateSettings() error {
	if validationErrors := c.validateSettings(); len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func (c *Config) validateSettings() ValidationErrors {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	if c.Filter != nil {
		if err := validate.Struct(c.Filter); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "filter", "")...)
		}
	}

	if c.Upload != nil {
		if err := validate.Struct(c.Upload); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "upload", "")...)
		}
		if c.Upload.Token != "" && c.Upload.URL == "" {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: "upload.token",
				Message:   "token is set but url is empty",
			})
		}
	}

	if c.API != nil {
		if err := validate.Struct(c.API); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "api", "")...)
		}
	}

	return validationErrors
}

func (c *Config) validateSources() ValidationErrors {
	var validationErrors ValidationErrors
	seenNames := make(map[string]bool)

	for i, src := range c.Sources {
		itemName := src.Name
		if itemName == "" {
			itemName = fmt.Sprintf("source[%d]", i)
		}

		if err := validate.Struct(src); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("source.%d", i), itemName)...)
		}

		if seenNames[src.Name] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "name",
				Message:   fmt.Sprintf("duplicate source name: %s", src.Name),
			})
		}
		seenNames[src.Name] = true

		// Validate that exactly one source is specified
		isURL := src.URL != ""
		isFile := src.File != ""
		isHosts := len(src.Hosts) > 0

		if !isURL && !isFile && !isHosts {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "source",
				Message:   "must specify one of: url, file, or hosts",
			})
		}

		if (isURL && (isFile || isHosts)) || (isFile && isHosts) {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "source",
				Message:   "can only specify one of: url, file, or hosts",
			})
		}

		if isFile {
			path, _ := src.GetAbsolutePath(c)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				validationErrors = append(validationErrors, ValidationError{
					ItemName:  itemName,
					FieldPath: "file",
					Message:   fmt.Sprintf("file does not exist: %s", path),
				})
			}
		}
	}

	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
