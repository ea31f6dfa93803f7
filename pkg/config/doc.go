// Package config decodes data-list property configuration into typed entries.
// A configuration carries two ordered collections, the data source and the
// list editor, each persisted as a list whose first element is the active
// editor. Decoding validates the entry shapes once so that conversion code can
// rely on the typed structure and only deals with absent entries.
package config
