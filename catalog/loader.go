package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Source locates a catalog document inside a file system. Using fs.FS keeps
// the loader testable with fstest.MapFS.
type Source struct {
	FS   fs.FS
	Path string
}

// FileSource returns a Source for a document on the local disk.
func FileSource(p string) (Source, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Source{}, fmt.Errorf("failed to resolve catalog path %s: %w", p, err)
	}
	return Source{FS: os.DirFS(filepath.Dir(abs)), Path: filepath.Base(abs)}, nil
}

func (s Source) String() string { return s.Path }

var placeholder = regexp.MustCompile(`\$\{(\w+)}`)

// Interpolate substitutes every ${VAR} token in text with lookup(VAR). Tokens
// whose variable is not found are left untouched.
func Interpolate(text string, lookup func(string) (string, bool)) string {
	return placeholder.ReplaceAllStringFunc(text, func(tok string) string {
		name := placeholder.FindStringSubmatch(tok)[1]
		if v, ok := lookup(name); ok {
			return v
		}
		return tok
	})
}

// ReadDocument reads the document behind src, interpolates environment
// variables and parses it into a generic mapping. Documents ending in .json
// are parsed as JSON, everything else as YAML.
func ReadDocument(src Source) (map[string]any, error) {
	if src.FS == nil || src.Path == "" {
		return nil, errors.New("catalog source must have a file system and a path")
	}
	data, err := fs.ReadFile(src.FS, src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: src.Path, Err: err}
		}
		return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
	}

	text := Interpolate(string(data), os.LookupEnv)

	doc := map[string]any{}
	if strings.EqualFold(path.Ext(src.Path), ".json") {
		if err := sonic.UnmarshalString(text, &doc); err != nil {
			return nil, &MalformedEntryError{Err: fmt.Errorf("failed to unmarshal %s: %w", src.Path, err)}
		}
	} else {
		if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
			return nil, &MalformedEntryError{Err: fmt.Errorf("failed to unmarshal %s: %w", src.Path, err)}
		}
	}
	return doc, nil
}

// Load reads, builds and validates the catalog behind src. No Set is
// returned unless every invariant holds.
func Load(src Source) (*Set, error) {
	doc, err := ReadDocument(src)
	if err != nil {
		return nil, err
	}
	set, err := Build(doc)
	if err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	set.Source = src.Path
	set.Revision = uuid.NewString()
	return set, nil
}
