// Package validation provides input validation for httpflow
// configuration.
//
// It supports both struct tag validation (using the validator library)
// and programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL        string `validate:"omitempty,url"`
//	    MaxConcurrency int    `validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("base_url", cfg.BaseURL)
//	err := v.Error()
package validation
