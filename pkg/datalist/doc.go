// Package datalist implements the property value converter for data-list
// properties.
//
// A data-list configuration names a data source and a list editor.
// Converter.Resolve turns that pair into a Resolved view on every call: the
// list editor decides whether the property holds many values, the data source
// decides the value type and how each stored string becomes a value. On the
// delivery API path data sources implementing datasource.DeliveryDataSource
// supply their own type and conversion, which is how content references
// become content.APIContent summaries and content type references become
// aliases.
//
// Conversion never fails. Incomplete configuration yields single string
// values, unconvertible items in a multi-valued property are dropped and the
// fallbacks are reported at debug level on the configured slog.Logger.
package datalist
