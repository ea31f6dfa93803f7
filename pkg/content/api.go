package content

import (
	"strings"

	"github.com/google/uuid"
)

// APIRoute is the routing information of an APIContent summary.
type APIRoute struct {
	Path string `json:"path"`
}

// APIContent is the lightweight content summary exposed by the delivery API.
type APIContent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Route       APIRoute  `json:"route"`
}

// APIContentBuilder projects content items into delivery API summaries.
type APIContentBuilder interface {
	Build(item Content) *APIContent
}

// BuilderFunc adapts a function to APIContentBuilder.
type BuilderFunc func(item Content) *APIContent

func (f BuilderFunc) Build(item Content) *APIContent { return f(item) }

// DefaultBuilder builds summaries with slash-terminated routes.
type DefaultBuilder struct{}

var _ APIContentBuilder = DefaultBuilder{}

// Build returns nil for a nil item.
func (DefaultBuilder) Build(item Content) *APIContent {
	if item == nil {
		return nil
	}
	out := &APIContent{
		ID:    item.Key(),
		Name:  item.Name(),
		Route: APIRoute{Path: routePath(item.Path())},
	}
	if ct := item.ContentType(); ct != nil {
		out.ContentType = ct.Alias()
	}
	return out
}

func routePath(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmed := strings.Trim(strings.TrimSpace(segment), "/")
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/") + "/"
}
