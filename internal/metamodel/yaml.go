package metamodel

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"designstore/internal/value"
)

// traitDoc and objectTypeDoc follow the same pattern as
// internal/config.Config: YAML-tagged Go structs decoded straight off
// disk, applied here to declarative trait/object-type definitions a host
// application can check into a repository alongside its Go code instead
// of building Trait/ObjectType values by hand.
type traitDoc struct {
	Name       string         `yaml:"name"`
	Attributes []attributeDoc `yaml:"attributes"`
}

type attributeDoc struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Default interface{} `yaml:"default,omitempty"`
	Doc     string      `yaml:"doc,omitempty"`
}

type objectTypeDoc struct {
	Name           string   `yaml:"name"`
	StructuralKind string   `yaml:"structural_kind"`
	Traits         []string `yaml:"traits"`
}

type traitsFile struct {
	Traits []traitDoc `yaml:"traits"`
}

type objectTypesFile struct {
	Types []objectTypeDoc `yaml:"types"`
}

func kindFromString(s string) (value.Kind, error) {
	switch s {
	case "int":
		return value.KindInt, nil
	case "double":
		return value.KindDouble, nil
	case "bool":
		return value.KindBool, nil
	case "string":
		return value.KindString, nil
	case "point":
		return value.KindPoint, nil
	case "int[]":
		return value.KindIntArray, nil
	case "double[]":
		return value.KindDoubleArray, nil
	case "bool[]":
		return value.KindBoolArray, nil
	case "string[]":
		return value.KindStringArray, nil
	case "point[]":
		return value.KindPointArray, nil
	default:
		return 0, fmt.Errorf("metamodel: unknown value kind %q", s)
	}
}

func structuralKindFromString(s string) (StructuralKind, error) {
	switch s {
	case "unstructured", "":
		return Unstructured, nil
	case "node":
		return Node, nil
	case "edge":
		return Edge, nil
	default:
		return 0, fmt.Errorf("metamodel: unknown structural kind %q", s)
	}
}

func defaultFromYAML(kind value.Kind, raw interface{}) (*value.Variant, error) {
	if raw == nil {
		return nil, nil
	}
	var v value.Variant
	switch kind {
	case value.KindInt:
		n, ok := toInt(raw)
		if !ok {
			return nil, fmt.Errorf("metamodel: default %v is not an int", raw)
		}
		v = value.Int(n)
	case value.KindDouble:
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("metamodel: default %v is not a double", raw)
		}
		v = value.Double(f)
	case value.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("metamodel: default %v is not a bool", raw)
		}
		v = value.Bool(b)
	case value.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("metamodel: default %v is not a string", raw)
		}
		v = value.String(s)
	default:
		return nil, fmt.Errorf("metamodel: defaults are not supported for kind %s in YAML definitions", kind)
	}
	return &v, nil
}

func toInt(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// LoadTraitsYAML decodes a YAML document of the shape:
//
//	traits:
//	  - name: Named
//	    attributes:
//	      - { name: name, kind: string, default: "" }
//
// into Trait values, ready to pass to Metamodel.AddTrait.
func LoadTraitsYAML(data []byte) ([]Trait, error) {
	var doc traitsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("metamodel: parsing traits YAML: %w", err)
	}
	out := make([]Trait, 0, len(doc.Traits))
	for _, td := range doc.Traits {
		trait := Trait{Name: td.Name}
		for _, ad := range td.Attributes {
			kind, err := kindFromString(ad.Kind)
			if err != nil {
				return nil, fmt.Errorf("metamodel: trait %q attribute %q: %w", td.Name, ad.Name, err)
			}
			def, err := defaultFromYAML(kind, ad.Default)
			if err != nil {
				return nil, fmt.Errorf("metamodel: trait %q attribute %q: %w", td.Name, ad.Name, err)
			}
			trait.Attributes = append(trait.Attributes, AttributeDescriptor{
				Name:    ad.Name,
				Kind:    kind,
				Default: def,
				Doc:     ad.Doc,
			})
		}
		out = append(out, trait)
	}
	return out, nil
}

// LoadObjectTypesYAML decodes a YAML document of the shape:
//
//	types:
//	  - name: Stock
//	    structural_kind: node
//	    traits: [Named, Positioned]
//
// into ObjectType values. Trait references are resolved against
// knownTraits (typically the result of a prior LoadTraitsYAML call plus
// any traits already registered on the target Metamodel); an unresolved
// trait name is an error rather than being silently dropped.
func LoadObjectTypesYAML(data []byte, knownTraits []Trait) ([]ObjectType, error) {
	var doc objectTypesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("metamodel: parsing object types YAML: %w", err)
	}
	byName := make(map[string]Trait, len(knownTraits))
	for _, t := range knownTraits {
		byName[t.Name] = t
	}
	out := make([]ObjectType, 0, len(doc.Types))
	for _, otd := range doc.Types {
		sk, err := structuralKindFromString(otd.StructuralKind)
		if err != nil {
			return nil, fmt.Errorf("metamodel: type %q: %w", otd.Name, err)
		}
		ot := ObjectType{Name: otd.Name, StructuralKind: sk}
		for _, tn := range otd.Traits {
			trait, ok := byName[tn]
			if !ok {
				return nil, fmt.Errorf("metamodel: type %q references unknown trait %q", otd.Name, tn)
			}
			ot.Traits = append(ot.Traits, trait)
		}
		out = append(out, ot)
	}
	return out, nil
}
