// Package property carries the host side of the property value pipeline: the
// property Type handed to converters, the ValueConverter contracts for the
// rendering and delivery API outputs, and the ordered converter Collection
// with the Replace helper used to swap a registered converter in place.
package property
