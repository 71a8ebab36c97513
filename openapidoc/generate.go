// Package openapidoc renders a model.Router's bound procedures as an
// openapi3.T document — the OpenAPI document generation collaborator
// SPEC_FULL.md names as out of scope for the adapter itself but in scope
// for a demo binary that wants to publish the contract it serves.
//
// Grounded on internal/openapi/index.go's use of openapi3 to resolve
// operations from a spec, inverted here: instead of loading a document and
// indexing its operations, this package builds the document from the
// procedures a model.Router already holds.
package openapidoc

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/openapi-rpc/httpadapter/config"
	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/pathtemplate"
)

// openAPISchema is implemented by schema.Validator. Procedures whose
// Schema doesn't implement it (model.Void, or a caller-supplied Schema not
// backed by openapi3) are rendered without a body/response schema.
type openAPISchema interface {
	OpenAPISchema() *openapi3.Schema
}

// Generate builds an openapi3.T document describing every procedure in
// router, under the given document metadata.
func Generate(router model.Router, cfg config.OpenAPIConfig) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.Title,
			Version: cfg.Version,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, p := range router.Procedures() {
		matcher, err := pathtemplate.Compile(p.PathTemplate)
		if err != nil {
			return nil, fmt.Errorf("openapidoc: procedure %q: %w", p.ID, err)
		}

		op := &openapi3.Operation{
			OperationID: p.ID,
			Tags:        []string{string(p.Kind)},
			Responses:   openapi3.NewResponses(),
		}

		for _, name := range matcher.ParamNames() {
			op.AddParameter(&openapi3.Parameter{
				Name:     name,
				In:       "path",
				Required: true,
				Schema:   openapi3.NewStringSchema().NewRef(),
			})
		}

		if schemaOf(p.InputSchema) != nil && p.Method != model.MethodGet {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithJSONSchema(schemaOf(p.InputSchema)),
			}
		}

		okResponse := openapi3.NewResponse().WithDescription("successful response")
		if out := schemaOf(p.OutputSchema); out != nil {
			okResponse = okResponse.WithContent(openapi3.NewContentWithJSONSchema(out))
		}
		op.Responses.Set("200", &openapi3.ResponseRef{Value: okResponse})
		op.Responses.Set("default", &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("error response"),
		})

		pathItem := doc.Paths.Find(matcher.Template())
		if pathItem == nil {
			pathItem = &openapi3.PathItem{}
			doc.Paths.Set(matcher.Template(), pathItem)
		}
		pathItem.SetOperation(string(p.Method), op)
	}

	return doc, nil
}

func schemaOf(s model.Schema) *openapi3.Schema {
	if s == nil || s.IsVoid() {
		return nil
	}
	if oa, ok := s.(openAPISchema); ok {
		return oa.OpenAPISchema()
	}
	return nil
}
