package llm

import (
	"fmt"

	"github.com/vybdev/modelcat/llm/internal/args"
)

// UnsupportedProviderError is returned when no registered provider can build
// the requested kind of handle.
type UnsupportedProviderError struct {
	Provider string
	Kind     Kind
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported %s provider: %s", e.Kind, e.Provider)
}

// ProviderUnavailableError wraps a failure of the provider's constructor.
// It is never retried.
type ProviderUnavailableError struct {
	Provider string
	Kind     Kind
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("provider '%s' could not build a %s model: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// ArgsError reports catalog arguments a provider rejected. It is returned
// as the cause of a ProviderUnavailableError.
type ArgsError = args.Error
