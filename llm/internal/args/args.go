// Package args decodes the free-form argument map of a catalog entry into a
// provider's typed settings.
package args

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Error reports arguments a provider could not accept.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: invalid provider arguments: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Decode copies in into out, which must be a pointer to a struct tagged with
// `mapstructure`. Unknown keys are rejected. Durations are written as
// strings ("30s").
func Decode(provider string, in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return &Error{Provider: provider, Err: err}
	}
	if err := dec.Decode(in); err != nil {
		return &Error{Provider: provider, Err: err}
	}
	return nil
}

// Require returns an error naming key when value is empty.
func Require(provider, key, value string) error {
	if value == "" {
		return &Error{Provider: provider, Err: fmt.Errorf("missing required argument '%s'", key)}
	}
	return nil
}
