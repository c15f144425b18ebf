package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) SavePrompt(ctx context.Context, category, responseText string, promptType PromptType) (*Envelope[Prompt], error) {
	if promptType == "" {
		promptType = PromptTypeGenerated
	}
	return call[Prompt](ctx, c, http.MethodPost, "/prompts/generate", SavePromptRequest{
		Category:     category,
		ResponseText: responseText,
		PromptType:   promptType,
	})
}

// GetUserPrompts lists the caller's active prompts, newest first.
func (c *Client) GetUserPrompts(ctx context.Context) (*Envelope[[]Prompt], error) {
	return call[[]Prompt](ctx, c, http.MethodGet, "/prompts/user", nil)
}

func (c *Client) UpdatePrompt(ctx context.Context, id, responseText string) (*Envelope[Prompt], error) {
	return call[Prompt](ctx, c, http.MethodPut, "/prompts/"+url.PathEscape(id), UpdatePromptRequest{
		ResponseText: responseText,
	})
}

func (c *Client) RecordPromptUsage(ctx context.Context, promptID string) (*Envelope[UsageRecord], error) {
	return call[UsageRecord](ctx, c, http.MethodPost, "/prompts/usage_record", UsageRecordRequest{
		PromptID: promptID,
	})
}
