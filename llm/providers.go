package llm

// SupportedProviders returns the identifiers of the built-in providers. The
// slice is a copy, callers may modify it.
func SupportedProviders() []string {
	return DefaultRegistry().Names()
}
