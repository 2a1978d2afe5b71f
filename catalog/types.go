package catalog

import "fmt"

// ModelType is the capability a catalog entry provides. It is the key used
// for every type-compatibility check in the catalog.
//
// NOTE: keep the string literals lowercase, they are written verbatim in
// catalog documents and accepted by the --type CLI flag.
type ModelType string

const (
	ModelTypeLLM       ModelType = "llm"
	ModelTypeEmbedding ModelType = "text-embedding"
	ModelTypeSTT       ModelType = "stt"
	ModelTypeTTS       ModelType = "tts"
	ModelTypeImageGen  ModelType = "image-generation"
)

// ModelTypes returns every known ModelType in declaration order.
func ModelTypes() []ModelType {
	return []ModelType{ModelTypeLLM, ModelTypeEmbedding, ModelTypeSTT, ModelTypeTTS, ModelTypeImageGen}
}

func (t ModelType) String() string { return string(t) }

// Valid reports whether t is one of the declared constants.
func (t ModelType) Valid() bool {
	switch t {
	case ModelTypeLLM, ModelTypeEmbedding, ModelTypeSTT, ModelTypeTTS, ModelTypeImageGen:
		return true
	}
	return false
}

// ParseModelType converts s to a ModelType, rejecting unknown values.
func ParseModelType(s string) (ModelType, error) {
	t := ModelType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown model type %q (want one of %v)", s, ModelTypes())
	}
	return t, nil
}

// UnmarshalText lets the document decoder reject unknown enum values.
func (t *ModelType) UnmarshalText(b []byte) error {
	parsed, err := ParseModelType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ModelEntry is a directly constructible model. Entries are immutable once
// a Set has been built; Args must be copied before being handed to anything
// that may modify it.
type ModelEntry struct {
	Name      string         `mapstructure:"name"`
	Type      ModelType      `mapstructure:"type"`
	Provider  string         `mapstructure:"provider"`
	Help      string         `mapstructure:"help"`
	Args      map[string]any `mapstructure:"args"`
	Fallbacks []string       `mapstructure:"fallbacks"`
}

// GroupEntry is a named indirection that always resolves, possibly through
// other groups, to exactly one ModelEntry. Its fallbacks are independent of
// its target's.
type GroupEntry struct {
	Name      string    `mapstructure:"name"`
	Type      ModelType `mapstructure:"type"`
	Target    string    `mapstructure:"target"`
	Help      string    `mapstructure:"help"`
	Fallbacks []string  `mapstructure:"fallbacks"`
}

// Kind distinguishes models from groups in listings.
type Kind string

const (
	KindModel Kind = "model"
	KindGroup Kind = "group"
)

// groupProvider is reported as the provider of every group in listings.
const groupProvider = "group"

// Item is the listing view of a model or group.
type Item struct {
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	Type        ModelType `json:"type"`
	Provider    string    `json:"provider"`
	Description string    `json:"description,omitempty"`
}

func (m *ModelEntry) item() Item {
	return Item{
		Name:        m.Name,
		Kind:        KindModel,
		Type:        m.Type,
		Provider:    m.Provider,
		Description: m.Help,
	}
}

func (g *GroupEntry) item() Item {
	desc := g.Help
	if desc == "" {
		desc = "Model group"
	}
	return Item{
		Name:        g.Name,
		Kind:        KindGroup,
		Type:        g.Type,
		Provider:    groupProvider,
		Description: fmt.Sprintf("%s (Target: %s)", desc, g.Target),
	}
}

// ArgsCopy returns a shallow copy of the entry's provider arguments.
func (m *ModelEntry) ArgsCopy() map[string]any {
	out := make(map[string]any, len(m.Args))
	for k, v := range m.Args {
		out[k] = v
	}
	return out
}

// Set is a loaded, validated catalog. It is read-only for its lifetime and
// safe for concurrent use.
type Set struct {
	models     map[string]*ModelEntry
	groups     map[string]*GroupEntry
	modelOrder []string
	groupOrder []string
	// dupes holds names declared twice within the same section.
	dupes []string

	// Revision identifies one successful load of the catalog.
	Revision string
	// Source names the document the set was read from.
	Source string
}

// Model returns the model named name, if any.
func (s *Set) Model(name string) (*ModelEntry, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Group returns the group named name, if any.
func (s *Set) Group(name string) (*GroupEntry, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Len returns the number of models and groups.
func (s *Set) Len() (models, groups int) {
	return len(s.models), len(s.groups)
}
