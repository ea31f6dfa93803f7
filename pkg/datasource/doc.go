// Package datasource defines data sources: providers of selectable values
// for data-list properties. Every source declares its value type and how a
// stored string becomes a value. Sources whose delivery API output differs
// implement DeliveryDataSource; sources that can enumerate options implement
// Lister.
package datasource
