package apiclient

import (
	"context"
	"net/http"
)

const (
	pathGenerateSuggestions = "/prompts/generate-suggestions"
	pathReviseSuggestion    = "/prompts/revise-suggestion"
	pathEvaluateCustom      = "/prompts/evaluate-custom"
	pathReviseCustom        = "/prompts/revise-custom"
)

func (c *Client) GenerateSuggestions(ctx context.Context, req SuggestionRequest) (*Envelope[[]Suggestion], error) {
	return call[[]Suggestion](ctx, c, http.MethodPost, pathGenerateSuggestions, req)
}

func (c *Client) ReviseSuggestion(ctx context.Context, req ReviseRequest) (*Envelope[Suggestion], error) {
	return call[Suggestion](ctx, c, http.MethodPost, pathReviseSuggestion, req)
}

func (c *Client) EvaluateCustom(ctx context.Context, req EvaluateRequest) (*Envelope[Evaluation], error) {
	return call[Evaluation](ctx, c, http.MethodPost, pathEvaluateCustom, req)
}

func (c *Client) ReviseCustom(ctx context.Context, req ReviseRequest) (*Envelope[Suggestion], error) {
	return call[Suggestion](ctx, c, http.MethodPost, pathReviseCustom, req)
}

// ForwardAI posts an opaque payload to one of the AI endpoints and hands the
// response back untouched.
func (c *Client) ForwardAI(ctx context.Context, path string, payload Raw) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, payload)
}
