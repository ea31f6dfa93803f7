package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when no item matches the lookup.
var ErrNotFound = errors.New("content: not found")

// Content is a published content item.
type Content interface {
	Key() uuid.UUID
	Name() string
	ContentType() ContentType
	// Path returns the URL segments from the root to this item.
	Path() []string
}

// ContentType describes the document type of a content item.
type ContentType interface {
	Key() uuid.UUID
	Alias() string
	Name() string
}

// Store resolves published content and content types.
type Store interface {
	ContentByKey(ctx context.Context, key uuid.UUID) (Content, error)
	Children(ctx context.Context, parent uuid.UUID) ([]Content, error)
	ContentTypeByKey(ctx context.Context, key uuid.UUID) (ContentType, error)
	ContentTypeByAlias(ctx context.Context, alias string) (ContentType, error)
	ContentTypes(ctx context.Context) ([]ContentType, error)
}

// Type is a plain ContentType value.
type Type struct {
	TypeKey   uuid.UUID `json:"key" yaml:"key"`
	TypeAlias string    `json:"alias" yaml:"alias"`
	TypeName  string    `json:"name" yaml:"name"`
}

var _ ContentType = Type{}

func (t Type) Key() uuid.UUID { return t.TypeKey }
func (t Type) Alias() string  { return t.TypeAlias }
func (t Type) Name() string   { return t.TypeName }

// Node is a plain Content value.
type Node struct {
	NodeKey  uuid.UUID
	NodeName string
	Parent   uuid.UUID
	Type     ContentType
	Segments []string
}

var _ Content = (*Node)(nil)

func (n *Node) Key() uuid.UUID           { return n.NodeKey }
func (n *Node) Name() string             { return n.NodeName }
func (n *Node) ContentType() ContentType { return n.Type }

func (n *Node) Path() []string {
	return append([]string(nil), n.Segments...)
}
