package page

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/popup-combobox/internal/control"
)

// ErrNoFields is returned for definitions without any field.
var ErrNoFields = errors.New("page defines no fields")

// Definition describes a page of selection controls.
type Definition struct {
	Title  string  `yaml:"title"`
	Fields []Field `yaml:"fields"`
}

// Field describes one selection control.
type Field struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Label       string        `yaml:"label"`
	Placeholder string        `yaml:"placeholder"`
	Value       string        `yaml:"value"`
	Disabled    bool          `yaml:"disabled"`
	Options     []FieldOption `yaml:"options"`
}

// FieldOption is one option of a Field.
type FieldOption struct {
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	Disabled bool   `yaml:"disabled"`
}

// Load reads and validates a definition file.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read page definition %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a YAML definition. source names the input in
// error messages.
func Parse(data []byte, source string) (Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return def, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	if len(def.Fields) == 0 {
		return def, fmt.Errorf("invalid page in %q: %w", source, ErrNoFields)
	}
	if errs := def.Validate(); len(errs) > 0 {
		return def, fmt.Errorf("invalid page in %q: %s", source, strings.Join(errs, "; "))
	}
	return def, nil
}

// Validate reports every problem found in the definition.
func (d Definition) Validate() []string {
	var errs []string
	seen := map[string]struct{}{}
	for i, f := range d.Fields {
		id := strings.TrimSpace(f.ID)
		if id == "" {
			errs = append(errs, fmt.Sprintf("fields[%d].id is required", i))
		} else {
			if _, ok := seen[id]; ok {
				errs = append(errs, fmt.Sprintf("fields[%d] duplicate id %q", i, id))
			}
			seen[id] = struct{}{}
			if strings.ContainsAny(id, " \t") {
				errs = append(errs, fmt.Sprintf("fields[%d].id %q must not contain whitespace", i, id))
			}
		}
		if len(f.Options) == 0 {
			errs = append(errs, fmt.Sprintf("fields[%d].options must not be empty", i))
		}
		if f.Value != "" && !f.hasValue(f.Value) {
			errs = append(errs, fmt.Sprintf("fields[%d].value %q matches no option", i, f.Value))
		}
	}
	return errs
}

func (f Field) hasValue(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Control builds the selection control described by f.
func (f Field) Control() *control.Select {
	choices := make([]control.Choice, len(f.Options))
	for i, opt := range f.Options {
		label := opt.Label
		if strings.TrimSpace(label) == "" {
			label = opt.Value
		}
		choices[i] = control.Choice{Value: opt.Value, Label: label, Disabled: opt.Disabled}
	}
	sel := control.NewSelect(strings.TrimSpace(f.ID), choices, f.Value)
	sel.Name = f.Name
	if sel.Name == "" {
		sel.Name = sel.ID
	}
	sel.Label = f.Label
	sel.Placeholder = f.Placeholder
	sel.Disabled = f.Disabled
	return sel
}
