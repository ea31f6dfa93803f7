// Package editors holds the configuration editor registry used to resolve the
// keys stored in a data-list configuration into data sources and list
// editors.
package editors
