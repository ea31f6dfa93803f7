package editors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/datasource"
	"github.com/goliatone/go-datalist/pkg/listeditor"
)

// Editor is anything registered under a configuration key. Data sources and
// list editors share the key namespace per kind.
type Editor interface {
	Key() string
}

// Registry resolves configuration editor keys to data sources and list
// editors. Keys are matched case-insensitively. A Registry is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]datasource.DataSource
	editors map[string]listeditor.ListEditor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]datasource.DataSource),
		editors: make(map[string]listeditor.ListEditor),
	}
}

// NewDefault creates a registry holding the built-in data sources and list
// editors. The content sources resolve against store.
func NewDefault(store content.Store, builder content.APIContentBuilder) *Registry {
	reg := NewRegistry()
	reg.MustRegister(datasource.UserDefined{})
	reg.MustRegister(datasource.Numbers{})
	reg.MustRegister(datasource.NewContent(store, builder))
	reg.MustRegister(datasource.NewContentTypes(store))
	for _, editor := range listeditor.Builtins() {
		reg.MustRegister(editor)
	}
	return reg
}

// Register adds a data source or list editor. A value implementing both is
// registered as both. Duplicate keys return an error.
func (r *Registry) Register(editor Editor) error {
	if editor == nil {
		return fmt.Errorf("editors: editor is required")
	}
	key := normalizeKey(editor.Key())
	if key == "" {
		return fmt.Errorf("editors: editor key is required")
	}
	source, isSource := editor.(datasource.DataSource)
	list, isList := editor.(listeditor.ListEditor)
	if !isSource && !isList {
		return fmt.Errorf("editors: %q is neither a data source nor a list editor", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if isSource {
		if _, exists := r.sources[key]; exists {
			return fmt.Errorf("editors: data source %q already registered", key)
		}
	}
	if isList {
		if _, exists := r.editors[key]; exists {
			return fmt.Errorf("editors: list editor %q already registered", key)
		}
	}
	if isSource {
		r.sources[key] = source
	}
	if isList {
		r.editors[key] = list
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(editor Editor) {
	if err := r.Register(editor); err != nil {
		panic(err)
	}
}

// DataSource returns the data source registered under key.
func (r *Registry) DataSource(key string) (datasource.DataSource, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[normalizeKey(key)]
	return source, ok
}

// ListEditor returns the list editor registered under key.
func (r *Registry) ListEditor(key string) (listeditor.ListEditor, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	editor, ok := r.editors[normalizeKey(key)]
	return editor, ok
}

// DataSourceKeys returns the sorted, normalised data source keys.
func (r *Registry) DataSourceKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.sources)
}

// ListEditorKeys returns the sorted, normalised list editor keys.
func (r *Registry) ListEditorKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.editors)
}

// Has reports whether key resolves to a data source or a list editor.
func (r *Registry) Has(key string) bool {
	_, source := r.DataSource(key)
	_, editor := r.ListEditor(key)
	return source || editor
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
