package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structure of the configuration and every rule
// setting of every profile, active or not.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return structError(err)
	}
	return c.validateProfiles()
}

func (c *Config) validateProfiles() error {
	profiles := c.AllProfiles()
	for _, name := range slices.Sorted(maps.Keys(profiles)) {
		if err := lint.ValidateProfile(profiles[name]); err != nil {
			return err
		}
	}
	return nil
}

func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.NewConfigError("validate", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fieldPath(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return core.NewConfigError("validate", errors.New(strings.Join(msgs, "; ")))
}

// fieldPath turns "Config.Output.Formats[0]" into "Output.Formats[0]".
func fieldPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return rest
}
