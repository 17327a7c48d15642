// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the decoded configuration against its field tags and
// reports every violation in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// formatFieldError names the offending key the way it appears in the
// config file, e.g. "board.max_groups".
func formatFieldError(fe validator.FieldError) string {
	key := configKey(fe.StructNamespace())
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", key, fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	default:
		return key + " is invalid"
	}
}

// configKey turns "Config.Dispatch.HTTPConfig.Timeout" into
// "dispatch.timeout".
func configKey(ns string) string {
	parts := strings.Split(ns, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		if p == "HTTPConfig" {
			continue
		}
		out = append(out, snake(p))
	}
	return strings.Join(out, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
