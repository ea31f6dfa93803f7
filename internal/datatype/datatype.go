// Package datatype loads data type definition files used by the CLI. A
// definition carries one property type and optional content fixtures the
// content data sources resolve against.
package datatype

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/property"
)

// ContentTypeSeed is a content type fixture.
type ContentTypeSeed struct {
	Key   string `yaml:"key"`
	Alias string `yaml:"alias"`
	Name  string `yaml:"name"`
}

// ContentSeed is a content item fixture. ContentType refers to an alias.
type ContentSeed struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Parent      string   `yaml:"parent"`
	ContentType string   `yaml:"contentType"`
	Path        []string `yaml:"path"`
}

// Definition is a decoded data type file.
type Definition struct {
	Property     property.Type     `yaml:",inline"`
	ContentTypes []ContentTypeSeed `yaml:"contentTypes"`
	Content      []ContentSeed     `yaml:"content"`
}

// Seeder receives fixtures.
type Seeder interface {
	PutContentType(ctx context.Context, ct content.Type) error
	PutContent(ctx context.Context, node *content.Node) error
}

// Load reads and decodes a definition file.
func Load(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("datatype: read %s: %w", path, err)
	}
	return Decode(raw)
}

// Decode parses a YAML or JSON definition.
func Decode(raw []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("datatype: decode: %w", err)
	}
	if strings.TrimSpace(def.Property.Alias) == "" {
		return nil, fmt.Errorf("datatype: alias is required")
	}
	return &def, nil
}

// Seed writes the fixtures into s. Content types are written first so items
// can refer to them by alias.
func (d *Definition) Seed(ctx context.Context, s Seeder) error {
	types := make(map[string]content.Type, len(d.ContentTypes))
	for idx, seed := range d.ContentTypes {
		key, err := parseKey(seed.Key)
		if err != nil {
			return fmt.Errorf("datatype: contentTypes[%d]: %w", idx, err)
		}
		ct := content.Type{TypeKey: key, TypeAlias: strings.TrimSpace(seed.Alias), TypeName: seed.Name}
		if err := s.PutContentType(ctx, ct); err != nil {
			return fmt.Errorf("datatype: contentTypes[%d]: %w", idx, err)
		}
		types[strings.ToLower(ct.TypeAlias)] = ct
	}

	for idx, seed := range d.Content {
		key, err := parseKey(seed.Key)
		if err != nil {
			return fmt.Errorf("datatype: content[%d]: %w", idx, err)
		}
		node := &content.Node{NodeKey: key, NodeName: seed.Name, Segments: seed.Path}
		if strings.TrimSpace(seed.Parent) != "" {
			ref, err := content.ParseReference(seed.Parent)
			if err != nil {
				return fmt.Errorf("datatype: content[%d].parent: %w", idx, err)
			}
			node.Parent = ref.Key
		}
		if alias := strings.ToLower(strings.TrimSpace(seed.ContentType)); alias != "" {
			ct, ok := types[alias]
			if !ok {
				return fmt.Errorf("datatype: content[%d]: unknown content type %q", idx, seed.ContentType)
			}
			node.Type = ct
		}
		if err := s.PutContent(ctx, node); err != nil {
			return fmt.Errorf("datatype: content[%d]: %w", idx, err)
		}
	}
	return nil
}

func parseKey(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, fmt.Errorf("key is required")
	}
	ref, err := content.ParseReference(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return ref.Key, nil
}

// MemorySeeder adapts a content.MemoryStore to Seeder.
type MemorySeeder struct {
	Store *content.MemoryStore
}

func (m MemorySeeder) PutContentType(_ context.Context, ct content.Type) error {
	m.Store.PutContentType(ct)
	return nil
}

func (m MemorySeeder) PutContent(_ context.Context, node *content.Node) error {
	m.Store.PutContent(node)
	return nil
}
