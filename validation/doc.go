// Package validation validates seqkit settings.
//
// Struct tag validation (go-playground/validator) covers single-field rules;
// the programmatic Validator covers cross-field rules. Both report an
// errors.AppError with code INVALID_INPUT whose "fields" detail lists every
// failing field.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	}
//	err := validation.Validate(s)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.RequiredIf(cfg.Tracing, "observability.endpoint", cfg.Endpoint)
//	err := v.Validate()
package validation
