package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate_CircularGroups(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		path []string
	}{
		{
			name: "two groups",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai}
groups:
  - {name: A, type: llm, target: B}
  - {name: B, type: llm, target: A}
`,
			path: []string{"A", "B", "A"},
		},
		{
			name: "self target",
			doc: `
groups:
  - {name: A, type: llm, target: A}
`,
			path: []string{"A", "A"},
		},
		{
			name: "entering a cycle",
			doc: `
groups:
  - {name: C, type: llm, target: A}
  - {name: A, type: llm, target: B}
  - {name: B, type: llm, target: A}
`,
			path: []string{"C", "A", "B", "A"},
		},
	}
	for _, c := range cases {
		_, err := loadString(t, "catalog.yaml", c.doc)
		var ce *CircularGroupReferenceError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected CircularGroupReferenceError, got %v", c.name, err)
		}
		if diff := cmp.Diff(c.path, ce.Path); diff != "" {
			t.Fatalf("%s: path mismatch (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestValidate_UnknownTarget(t *testing.T) {
	t.Parallel()

	_, err := loadString(t, "catalog.yaml", `
groups:
  - {name: g, type: llm, target: h}
  - {name: h, type: llm, target: nowhere}
`)
	var ue *UnknownTargetError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnknownTargetError, got %v", err)
	}
	if ue.Group != "g" || ue.Target != "nowhere" {
		t.Fatalf("got group=%q target=%q, want g/nowhere", ue.Group, ue.Target)
	}
}

func TestValidate_GroupTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := loadString(t, "catalog.yaml", `
catalog:
  - {name: embed, type: text-embedding, provider: openai}
groups:
  - {name: chat, type: llm, target: embed}
`)
	var te *TypeMismatchError
	if !errors.As(err, &te) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	want := &TypeMismatchError{Name: "chat", Target: "embed", Requested: ModelTypeLLM, Actual: ModelTypeEmbedding}
	if diff := cmp.Diff(want, te); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Fallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		doc   string
		check func(error) bool
	}{
		{
			name: "unknown fallback on group",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai}
groups:
  - {name: g, type: llm, target: m, fallbacks: [ghost]}
`,
			check: func(err error) bool {
				var e *UnknownFallbackError
				return errors.As(err, &e) && e.Owner == "g" && e.Fallback == "ghost"
			},
		},
		{
			name: "unknown fallback on model",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai, fallbacks: [ghost]}
`,
			check: func(err error) bool {
				var e *UnknownFallbackError
				return errors.As(err, &e) && e.Owner == "m"
			},
		},
		{
			name: "self fallback on group",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai}
groups:
  - {name: g, type: llm, target: m, fallbacks: [g]}
`,
			check: func(err error) bool {
				var e *SelfFallbackError
				return errors.As(err, &e) && e.Name == "g"
			},
		},
		{
			name: "self fallback on model",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai, fallbacks: [m]}
`,
			check: func(err error) bool {
				var e *SelfFallbackError
				return errors.As(err, &e) && e.Name == "m"
			},
		},
		{
			name: "fallback model of another type",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai, fallbacks: [e]}
  - {name: e, type: text-embedding, provider: openai}
`,
			check: func(err error) bool {
				var e *FallbackTypeMismatchError
				return errors.As(err, &e) && e.Fallback == "e" && e.FallbackType == ModelTypeEmbedding && e.OwnerType == ModelTypeLLM
			},
		},
		{
			name: "fallback group of another declared type",
			doc: `
catalog:
  - {name: m, type: llm, provider: openai}
  - {name: e, type: text-embedding, provider: openai}
groups:
  - {name: embeddings, type: text-embedding, target: e}
  - {name: g, type: llm, target: m, fallbacks: [embeddings]}
`,
			check: func(err error) bool {
				var e *FallbackTypeMismatchError
				return errors.As(err, &e) && e.Owner == "g" && e.Fallback == "embeddings"
			},
		},
	}
	for _, c := range cases {
		_, err := loadString(t, "catalog.yaml", c.doc)
		if err == nil || !c.check(err) {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
	}
}

// A group used as a fallback is checked against its declared type. Since the
// group's own target check enforces that this equals its terminal model's
// type, a catalog where both agree must load.
func TestValidate_GroupFallbackDeclaredTypeMatchesTerminal(t *testing.T) {
	t.Parallel()

	set := mustLoad(t, `
catalog:
  - {name: primary, type: llm, provider: openai, fallbacks: [backup]}
  - {name: terminal, type: llm, provider: google}
groups:
  - {name: backup, type: llm, target: inner}
  - {name: inner, type: llm, target: terminal}
`)
	g, _ := set.Group("backup")
	m, err := set.Resolve("backup", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Type != m.Type {
		t.Fatalf("declared type %s differs from terminal type %s", g.Type, m.Type)
	}

	// The same group pointing at a model of another type never gets as far
	// as the fallback check.
	_, err = loadString(t, "catalog.yaml", `
catalog:
  - {name: primary, type: llm, provider: openai, fallbacks: [backup]}
  - {name: terminal, type: tts, provider: openai}
groups:
  - {name: backup, type: llm, target: terminal}
`)
	var te *TypeMismatchError
	if !errors.As(err, &te) || te.Name != "backup" {
		t.Fatalf("expected TypeMismatchError for backup, got %v", err)
	}
}

func TestValidate_NameConflicts(t *testing.T) {
	t.Parallel()

	_, err := loadString(t, "catalog.yaml", `
catalog:
  - {name: b, type: llm, provider: openai}
  - {name: a, type: llm, provider: openai}
  - {name: dup, type: llm, provider: openai}
  - {name: dup, type: llm, provider: openai}
groups:
  - {name: b, type: llm, target: a}
  - {name: a, type: llm, target: b}
`)
	var ne *NameConflictError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NameConflictError, got %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "dup"}, ne.Names); diff != "" {
		t.Fatalf("conflicts mismatch (-want +got):\n%s", diff)
	}
}
