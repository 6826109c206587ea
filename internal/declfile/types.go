package declfile

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"optic-generator/internal/common"
)

// File is the root of a declaration file.
type File struct {
	Version string    `yaml:"version" json:"version"`
	Package string    `yaml:"package" json:"package"`
	Imports []string  `yaml:"imports,omitempty" json:"imports,omitempty"`
	Types   []TypeDef `yaml:"types" json:"types"`
}

// TypeDef declares one type and its shape.
type TypeDef struct {
	Name     string        `yaml:"name" json:"name"`
	Generics []ParamDef    `yaml:"generics,omitempty" json:"generics,omitempty"`
	Where    []WhereDef    `yaml:"where,omitempty" json:"where,omitempty"`
	Derive   StringOrArray `yaml:"derive,omitempty" json:"derive,omitempty"`
	Imports  []string      `yaml:"imports,omitempty" json:"imports,omitempty"`

	// Exactly one of the following is set.
	Struct []FieldDef   `yaml:"struct,omitempty" json:"struct,omitempty"`
	Tuple  []ElemDef    `yaml:"tuple,omitempty" json:"tuple,omitempty"`
	Enum   []VariantDef `yaml:"enum,omitempty" json:"enum,omitempty"`
	Union  []FieldDef   `yaml:"union,omitempty" json:"union,omitempty"`
}

// ParamDef is a type parameter.
type ParamDef struct {
	Name       string `yaml:"name" json:"name"`
	Constraint string `yaml:"constraint,omitempty" json:"constraint,omitempty"`
}

// WhereDef constrains a declared type parameter further.
type WhereDef struct {
	Param      string `yaml:"param" json:"param"`
	Constraint string `yaml:"constraint" json:"constraint"`
}

// FieldDef is a named struct field.
type FieldDef struct {
	Name  string  `yaml:"name" json:"name"`
	Type  string  `yaml:"type" json:"type"`
	Optic *string `yaml:"optic,omitempty" json:"optic,omitempty"`
}

// ElemDef is one positional element.
type ElemDef struct {
	Type  string  `yaml:"type" json:"type"`
	Optic *string `yaml:"optic,omitempty" json:"optic,omitempty"`
}

// VariantDef is one enum variant.
type VariantDef struct {
	Name   string     `yaml:"name" json:"name"`
	Fields []FieldDef `yaml:"fields,omitempty" json:"fields,omitempty"`
	Optic  *string    `yaml:"optic,omitempty" json:"optic,omitempty"`
}

// shapeKeys returns the shape keys set on t.
func (t *TypeDef) shapeKeys() []string {
	var keys []string

	if t.Struct != nil {
		keys = append(keys, "struct")
	}

	if t.Tuple != nil {
		keys = append(keys, "tuple")
	}

	if t.Enum != nil {
		keys = append(keys, "enum")
	}

	if t.Union != nil {
		keys = append(keys, "union")
	}

	return keys
}

// StringOrArray is a list that may be written as a single comma separated
// string.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		*s = splitList(str)

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// UnmarshalJSON accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = splitList(str)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}

	*s = arr

	return nil
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

func splitList(s string) StringOrArray {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
}
