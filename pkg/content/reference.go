package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const udiScheme = "umb://"

// Entity types used in references.
const (
	EntityDocument     = "document"
	EntityDocumentType = "document-type"
)

// Reference identifies an entity by type and key. The string form is either a
// UDI (umb://document/<32 hex digits>) or a bare UUID.
type Reference struct {
	Entity string
	Key    uuid.UUID
}

// ParseReference parses a UDI or bare UUID. A bare UUID carries no entity
// type.
func ParseReference(raw string) (Reference, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Reference{}, fmt.Errorf("content: reference is empty")
	}
	if !strings.HasPrefix(strings.ToLower(value), udiScheme) {
		key, err := uuid.Parse(value)
		if err != nil {
			return Reference{}, fmt.Errorf("content: parse reference %q: %w", raw, err)
		}
		return Reference{Key: key}, nil
	}

	rest := value[len(udiScheme):]
	entity, id, ok := strings.Cut(rest, "/")
	if !ok || entity == "" || id == "" {
		return Reference{}, fmt.Errorf("content: reference %q is not a valid udi", raw)
	}
	key, err := uuid.Parse(id)
	if err != nil {
		return Reference{}, fmt.Errorf("content: parse reference %q: %w", raw, err)
	}
	return Reference{Entity: strings.ToLower(entity), Key: key}, nil
}

// Matches reports whether the reference can point at the given entity type.
// References without an entity type match any.
func (r Reference) Matches(entity string) bool {
	return r.Entity == "" || strings.EqualFold(r.Entity, entity)
}

// String renders the UDI form, or the bare key when no entity is set.
func (r Reference) String() string {
	if r.Entity == "" {
		return r.Key.String()
	}
	return udiScheme + r.Entity + "/" + strings.ReplaceAll(r.Key.String(), "-", "")
}
