package catalog

import (
	"fmt"
	"strings"
)

// Load-time errors. Any of them aborts the whole load.

// SourceNotFoundError is returned when the catalog document does not exist.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("catalog document not found: %s", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// MissingNameError is returned when an item in Section has no name.
type MissingNameError struct {
	Section string
	Index   int
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("%s item #%d must have a 'name' field", e.Section, e.Index)
}

// MalformedEntryError reports a structural problem with one entry. Section
// is empty when the document as a whole could not be parsed.
type MalformedEntryError struct {
	Section string
	Name    string
	Err     error
}

func (e *MalformedEntryError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("malformed catalog document: %v", e.Err)
	}
	if e.Name == "" {
		return fmt.Sprintf("malformed %s section: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("error in %s item '%s': %v", e.Section, e.Name, e.Err)
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }

// NameConflictError lists every name declared more than once across models
// and groups.
type NameConflictError struct {
	Names []string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("model and group names must be unique, conflicts found: %s", strings.Join(e.Names, ", "))
}

// CircularGroupReferenceError reports a group target chain that revisits a
// name. Path starts at the offending group.
type CircularGroupReferenceError struct {
	Path []string
}

func (e *CircularGroupReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected in group target chain: %s", strings.Join(e.Path, " -> "))
}

// UnknownTargetError is returned when a group chain ends at a name that is
// not a model.
type UnknownTargetError struct {
	Group  string
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("group '%s' refers to non-existent target '%s'", e.Group, e.Target)
}

// TypeMismatchError is returned both at load time (a group whose type differs
// from its terminal model) and at resolution time (a caller expecting a
// different type). Target is only set for the load-time form.
type TypeMismatchError struct {
	Name      string
	Target    string
	Requested ModelType
	Actual    ModelType
}

func (e *TypeMismatchError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("group '%s' type (%s) does not match final target '%s' type (%s)", e.Name, e.Requested, e.Target, e.Actual)
	}
	return fmt.Sprintf("type mismatch: '%s' is '%s', but '%s' was requested", e.Name, e.Actual, e.Requested)
}

// UnknownFallbackError is returned when a fallback names nothing in the
// catalog.
type UnknownFallbackError struct {
	Owner    string
	Fallback string
}

func (e *UnknownFallbackError) Error() string {
	return fmt.Sprintf("'%s' has fallback to non-existent model/group '%s'", e.Owner, e.Fallback)
}

// FallbackTypeMismatchError is returned when a fallback's declared type
// differs from its owner's type.
type FallbackTypeMismatchError struct {
	Owner        string
	OwnerType    ModelType
	Fallback     string
	FallbackType ModelType
}

func (e *FallbackTypeMismatchError) Error() string {
	return fmt.Sprintf("'%s' fallback '%s' type (%s) does not match owner type (%s)", e.Owner, e.Fallback, e.FallbackType, e.OwnerType)
}

// SelfFallbackError is returned when an entry lists itself as a fallback.
type SelfFallbackError struct {
	Name string
}

func (e *SelfFallbackError) Error() string {
	return fmt.Sprintf("'%s' cannot have itself as a fallback", e.Name)
}

// Resolution-time errors. They never affect the loaded set.

// UnknownModelError is returned when a name does not resolve to a model.
type UnknownModelError struct {
	Name string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model '%s' not found in catalog", e.Name)
}

// UnknownModelOrGroupError is returned when a name is neither a model nor a
// group.
type UnknownModelOrGroupError struct {
	Name string
}

func (e *UnknownModelOrGroupError) Error() string {
	return fmt.Sprintf("model or group '%s' not found in catalog", e.Name)
}
