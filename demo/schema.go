package demo

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/schema"
)

// yamlSchema is a small, declarative subset of JSON Schema: the shapes this
// demo table actually needs (object, array, string, integer, boolean, plus
// the date-time format leaf the coercion layer recognizes). It also accepts
// the bare scalar "void" in place of a mapping, for procedures with no
// input or output.
type yamlSchema struct {
	void       bool
	Type       string                 `yaml:"type"`
	Format     string                 `yaml:"format"`
	Properties map[string]*yamlSchema `yaml:"properties"`
	Required   []string               `yaml:"required"`
	Items      *yamlSchema            `yaml:"items"`
}

// UnmarshalYAML lets a procedure declare "input: void" / "output: void"
// instead of a schema mapping.
func (s *yamlSchema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var tag string
		if err := node.Decode(&tag); err != nil {
			return err
		}
		if tag != "void" {
			return fmt.Errorf("demo: unrecognized scalar schema %q, want %q", tag, "void")
		}
		s.void = true
		return nil
	}

	type plain yamlSchema
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = yamlSchema(p)
	return nil
}

// toModelSchema converts y into the model.Schema the router registers,
// grounded on how internal/definition/loader.go's DomainDefinition carries
// a raw decoded YAML shape forward for the rest of the system to interpret.
func toModelSchema(y *yamlSchema) (model.Schema, error) {
	if y == nil || y.void {
		return model.Void, nil
	}
	oa, err := toOpenAPISchema(y)
	if err != nil {
		return nil, err
	}
	return schema.New(oa), nil
}

func toOpenAPISchema(y *yamlSchema) (*openapi3.Schema, error) {
	switch y.Type {
	case "object":
		s := openapi3.NewObjectSchema()
		for name, prop := range y.Properties {
			propSchema, err := toOpenAPISchema(prop)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			s = s.WithProperty(name, propSchema)
		}
		s.Required = y.Required
		return s, nil
	case "array":
		if y.Items == nil {
			return nil, fmt.Errorf("array schema missing items")
		}
		itemSchema, err := toOpenAPISchema(y.Items)
		if err != nil {
			return nil, err
		}
		return openapi3.NewArraySchema().WithItems(itemSchema), nil
	case "string":
		s := openapi3.NewStringSchema()
		if y.Format != "" {
			s = s.WithFormat(y.Format)
		}
		return s, nil
	case "integer":
		return openapi3.NewIntegerSchema(), nil
	case "number":
		return openapi3.NewFloat64Schema(), nil
	case "boolean":
		return openapi3.NewBoolSchema(), nil
	default:
		return nil, fmt.Errorf("unsupported schema type %q", y.Type)
	}
}
