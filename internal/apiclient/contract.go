package apiclient

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed upstream.yml
var upstreamSpec []byte

// UpstreamSpec returns the raw OpenAPI document describing the REST API this client consumes.
func UpstreamSpec() []byte {
	return upstreamSpec
}

// Contract validates upstream responses against the embedded OpenAPI document.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(upstreamSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid upstream spec: %w", err)
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build contract router: %w", err)
	}

	return &Contract{doc: doc, router: router}, nil
}

// ValidateResponse checks a response for method+path (relative to the API base) against the
// documented schema. Paths missing from the document are reported as errors.
func (c *Contract) ValidateResponse(ctx context.Context, method, path string, query url.Values, status int, header http.Header, body []byte) error {
	probe, err := http.NewRequestWithContext(ctx, method, path, nil)
	if err != nil {
		return fmt.Errorf("contract: bad path %q: %w", path, err)
	}
	probe.URL.RawQuery = query.Encode()

	route, pathParams, err := c.router.FindRoute(probe)
	if err != nil {
		return fmt.Errorf("contract: %s %s is not documented: %w", method, path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    probe,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
	}
	input.SetBodyBytes(body)

	return openapi3filter.ValidateResponse(ctx, input)
}
