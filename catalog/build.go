package catalog

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

const (
	sectionCatalog = "catalog"
	sectionGroups  = "groups"
)

// Build constructs the typed entries of doc. The returned Set has not been
// validated yet; callers normally go through Load instead.
func Build(doc map[string]any) (*Set, error) {
	set := &Set{
		models: map[string]*ModelEntry{},
		groups: map[string]*GroupEntry{},
	}

	items, err := section(doc, sectionCatalog)
	if err != nil {
		return nil, err
	}
	for i, raw := range items {
		name, err := itemName(sectionCatalog, i, raw)
		if err != nil {
			return nil, err
		}
		var m ModelEntry
		if err := decodeEntry(raw, &m); err != nil {
			return nil, &MalformedEntryError{Section: sectionCatalog, Name: name, Err: err}
		}
		if err := m.check(); err != nil {
			return nil, &MalformedEntryError{Section: sectionCatalog, Name: name, Err: err}
		}
		if _, dup := set.models[name]; dup {
			set.dupes = append(set.dupes, name)
			continue
		}
		set.models[name] = &m
		set.modelOrder = append(set.modelOrder, name)
	}

	items, err = section(doc, sectionGroups)
	if err != nil {
		return nil, err
	}
	for i, raw := range items {
		name, err := itemName(sectionGroups, i, raw)
		if err != nil {
			return nil, err
		}
		var g GroupEntry
		if err := decodeEntry(raw, &g); err != nil {
			return nil, &MalformedEntryError{Section: sectionGroups, Name: name, Err: err}
		}
		if err := g.check(); err != nil {
			return nil, &MalformedEntryError{Section: sectionGroups, Name: name, Err: err}
		}
		if _, dup := set.groups[name]; dup {
			set.dupes = append(set.dupes, name)
			continue
		}
		set.groups[name] = &g
		set.groupOrder = append(set.groupOrder, name)
	}

	return set, nil
}

// section returns the list stored under key. A missing or null section is
// empty.
func section(doc map[string]any, key string) ([]any, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &MalformedEntryError{Section: key, Err: fmt.Errorf("expected a list, got %T", v)}
	}
	return items, nil
}

func itemName(sec string, idx int, raw any) (string, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", &MalformedEntryError{Section: sec, Err: fmt.Errorf("item #%d: expected a mapping, got %T", idx, raw)}
	}
	v, ok := m["name"]
	if !ok || v == nil {
		return "", &MissingNameError{Section: sec, Index: idx}
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", &MalformedEntryError{Section: sec, Err: fmt.Errorf("item #%d: 'name' must be a non-empty string, got %v", idx, v)}
	}
	return name, nil
}

func decodeEntry(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func (m *ModelEntry) check() error {
	var errs []error
	if m.Type == "" {
		errs = append(errs, errors.New("missing required field 'type'"))
	}
	if m.Provider == "" {
		errs = append(errs, errors.New("missing required field 'provider'"))
	}
	if m.Args == nil {
		m.Args = map[string]any{}
	}
	return errors.Join(errs...)
}

func (g *GroupEntry) check() error {
	var errs []error
	if g.Type == "" {
		errs = append(errs, errors.New("missing required field 'type'"))
	}
	if g.Target == "" {
		errs = append(errs, errors.New("missing required field 'target'"))
	}
	return errors.Join(errs...)
}
