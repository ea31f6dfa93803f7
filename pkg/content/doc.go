// Package content defines the published content collaborators consumed by
// data-list conversion: content items, content types, references in UDI form,
// a Store to resolve them and the APIContent summary returned by the delivery
// API. MemoryStore is a ready-made Store for tests and small tools.
package content
