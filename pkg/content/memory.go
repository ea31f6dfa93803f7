package content

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps published content in memory. It is safe for concurrent
// use.
type MemoryStore struct {
	mu       sync.RWMutex
	nodes    map[uuid.UUID]*Node
	order    []uuid.UUID
	types    map[uuid.UUID]Type
	aliases  map[string]uuid.UUID
	typeList []uuid.UUID
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:   make(map[uuid.UUID]*Node),
		types:   make(map[uuid.UUID]Type),
		aliases: make(map[string]uuid.UUID),
	}
}

// PutContentType adds or replaces a content type.
func (s *MemoryStore) PutContentType(ct Type) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.types[ct.TypeKey]; ok {
		delete(s.aliases, strings.ToLower(prev.TypeAlias))
	} else {
		s.typeList = append(s.typeList, ct.TypeKey)
	}
	s.types[ct.TypeKey] = ct
	s.aliases[strings.ToLower(ct.TypeAlias)] = ct.TypeKey
}

// PutContent adds or replaces a content item.
func (s *MemoryStore) PutContent(node *Node) {
	if node == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[node.NodeKey]; !ok {
		s.order = append(s.order, node.NodeKey)
	}
	s.nodes[node.NodeKey] = node
}

func (s *MemoryStore) ContentByKey(ctx context.Context, key uuid.UUID) (Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[key]
	if !ok {
		return nil, ErrNotFound
	}
	return node, nil
}

func (s *MemoryStore) Children(ctx context.Context, parent uuid.UUID) ([]Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Content
	for _, key := range s.order {
		node := s.nodes[key]
		if node.Parent == parent {
			out = append(out, node)
		}
	}
	return out, nil
}

func (s *MemoryStore) ContentTypeByKey(ctx context.Context, key uuid.UUID) (ContentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ct, ok := s.types[key]
	if !ok {
		return nil, ErrNotFound
	}
	return ct, nil
}

func (s *MemoryStore) ContentTypeByAlias(ctx context.Context, alias string) (ContentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.aliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return nil, ErrNotFound
	}
	return s.types[key], nil
}

// ContentTypes returns all content types sorted by alias.
func (s *MemoryStore) ContentTypes(ctx context.Context) ([]ContentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	list := make([]Type, 0, len(s.typeList))
	for _, key := range s.typeList {
		list = append(list, s.types[key])
	}
	s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].TypeAlias) < strings.ToLower(list[j].TypeAlias)
	})
	out := make([]ContentType, len(list))
	for i, ct := range list {
		out[i] = ct
	}
	return out, nil
}
