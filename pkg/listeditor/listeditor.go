// Package listeditor defines list editors: descriptors of how a data-list
// property is edited, and in particular whether it holds one value or many.
package listeditor

import "github.com/goliatone/go-datalist/pkg/config"

// Built-in list editor keys.
const (
	KeyDropdownList    = "dropdownList"
	KeyRadioButtonList = "radioButtonList"
	KeyCheckboxList    = "checkboxList"
	KeyTags            = "tags"
	KeyButtons         = "buttons"
	KeyItemPicker      = "itemPicker"
)

// ListEditor reports the multiplicity of a configured property.
type ListEditor interface {
	Key() string
	HasMultipleValues(cfg map[string]any) bool
}

// Fixed is a list editor whose multiplicity does not depend on configuration.
type Fixed struct {
	EditorKey string
	Multiple  bool
}

func (f Fixed) Key() string                           { return f.EditorKey }
func (f Fixed) HasMultipleValues(map[string]any) bool { return f.Multiple }

// Toggle is a list editor whose multiplicity is a boolean configuration flag.
type Toggle struct {
	EditorKey string
	Flag      string
}

func (t Toggle) Key() string { return t.EditorKey }

func (t Toggle) HasMultipleValues(cfg map[string]any) bool {
	return config.Bool(cfg, t.Flag)
}

// ItemPicker holds many values unless "maxItems" is exactly one. A missing or
// zero limit means unlimited.
type ItemPicker struct{}

func (ItemPicker) Key() string { return KeyItemPicker }

func (ItemPicker) HasMultipleValues(cfg map[string]any) bool {
	return config.Int(cfg, "maxItems", 0) != 1
}

// Builtins returns the built-in list editors.
func Builtins() []ListEditor {
	return []ListEditor{
		Toggle{EditorKey: KeyDropdownList, Flag: "allowMultiple"},
		Fixed{EditorKey: KeyRadioButtonList},
		Fixed{EditorKey: KeyCheckboxList, Multiple: true},
		Fixed{EditorKey: KeyTags, Multiple: true},
		Toggle{EditorKey: KeyButtons, Flag: "enableMultiple"},
		ItemPicker{},
	}
}
