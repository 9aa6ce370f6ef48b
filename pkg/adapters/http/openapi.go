package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/blinks"
	"github.com/aretw0/blinks/pkg/catalog"
	"github.com/aretw0/blinks/pkg/schema"
)

// BuildSpec generates and validates the OpenAPI document of the gateway.
// Every action gets its own invoke and url operations.
func BuildSpec(ctx context.Context, actions []catalog.Action) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "blinks",
			Description: "Builds DeFi transactions through Dialect Blinks.",
			Version:     blinks.Version,
		},
		Paths: openapi3.NewPaths(),
	}

	envelope := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("result", openapi3.NewObjectSchema()).
		WithProperty("error", openapi3.NewStringSchema())
	envelope.Required = []string{"success"}

	errorBody := openapi3.NewObjectSchema().WithProperty("error", openapi3.NewStringSchema())

	doc.Paths.Set("/health", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "health",
			Summary:     "Liveness probe",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, response("Service is up", openapi3.NewObjectSchema())),
			),
		},
	})
	doc.Paths.Set("/actions", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "list_actions",
			Summary:     "List registered actions",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, response("Registered actions", openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()))),
			),
		},
	})

	for _, a := range actions {
		params := paramsSchema(a)

		body := openapi3.NewObjectSchema().
			WithProperty("account", openapi3.NewStringSchema().WithMinLength(1)).
			WithProperty("params", params)
		body.Required = []string{"account"}

		doc.Paths.Set("/actions/"+a.Name, &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: a.Name,
				Summary:     a.Description,
				Tags:        []string{a.Protocol},
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
				},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(http.StatusOK, response("Transaction built", envelope)),
					openapi3.WithStatus(http.StatusNotFound, response("Unknown action", envelope)),
					openapi3.WithStatus(http.StatusUnprocessableEntity, response("Invalid parameters or account", envelope)),
					openapi3.WithStatus(http.StatusBadGateway, response("Remote service failure", envelope)),
					openapi3.WithStatus(http.StatusServiceUnavailable, response("Missing client key", envelope)),
					openapi3.WithStatus(http.StatusInternalServerError, response("Unexpected failure", envelope)),
				),
			},
		})

		urlBody := openapi3.NewObjectSchema().WithProperty("params", params)
		doc.Paths.Set("/actions/"+a.Name+"/url", &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: a.Name + "_url",
				Summary:     "Preview the URL " + a.Name + " would call",
				Tags:        []string{a.Protocol},
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(urlBody),
				},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(http.StatusOK, response("Resolved URL",
						openapi3.NewObjectSchema().WithProperty("url", openapi3.NewStringSchema()))),
					openapi3.WithStatus(http.StatusUnprocessableEntity, response("Invalid parameters", errorBody)),
				),
			},
		})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

func response(description string, s *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(s),
	}
}

func paramsSchema(a catalog.Action) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, p := range a.Params {
		s.WithProperty(p.Name, paramSchema(p))
		s.Required = append(s.Required, p.Name)
	}
	return s
}

func paramSchema(p catalog.Param) *openapi3.Schema {
	var s *openapi3.Schema
	switch t := p.Type.(type) {
	case *schema.EnumType:
		values := make([]any, 0, len(t.Values()))
		for _, v := range t.Values() {
			values = append(values, v)
		}
		s = openapi3.NewStringSchema().WithEnum(values...)
		s.Description = p.Description
	case *schema.NumberType:
		s = openapi3.NewFloat64Schema()
		s.Description = p.Description
		if lo, exclusive, ok := t.Min(); ok {
			if exclusive {
				s.Description = fmt.Sprintf("%s (greater than %s)", p.Description, lo)
			} else {
				f, _ := lo.Float64()
				s.WithMin(f)
			}
		}
		if hi, ok := t.Max(); ok {
			f, _ := hi.Float64()
			s.WithMax(f)
		}
	default:
		s = openapi3.NewStringSchema().WithMinLength(1)
		s.Description = p.Description
	}
	return s
}
